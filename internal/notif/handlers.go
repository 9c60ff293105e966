package notif

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "planetpal/api/v1/notification"
	"planetpal/internal/common"
	"planetpal/internal/dbmysql"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Inbox is what the gRPC handler reads notifications through.
type Inbox interface {
	UserNotifications(ctx context.Context, userID string, limit, offset int) ([]*common.NotificationResponse, int64, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) error
}

type Handler struct {
	inbox Inbox
}

var _ pb.NotificationServiceServer = (*Handler)(nil)

func NewHandler(inbox Inbox) *Handler {
	return &Handler{inbox: inbox}
}

func (h *Handler) List(ctx context.Context, req *pb.ListRequest) (*pb.ListResponse, error) {
	sess, ok := common.SessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	notifications, unread, err := h.inbox.UserNotifications(ctx, sess.AccountID, limit, offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list notifications", "account", sess.AccountID, "error", err)
		return nil, status.Error(codes.Internal, "failed to get notifications")
	}

	resp := &pb.ListResponse{
		Notifications: make([]pb.Notification, len(notifications)),
		Unread:        unread,
	}
	for i, n := range notifications {
		resp.Notifications[i] = pb.Notification{
			ID:        n.ID,
			Type:      n.Type,
			Header:    n.Header,
			Content:   n.Content,
			Status:    n.Status,
			Priority:  n.Priority,
			Metadata:  n.Metadata,
			CreatedAt: n.CreatedAt,
			ReadAt:    n.ReadAt,
		}
	}
	return resp, nil
}

func (h *Handler) MarkRead(ctx context.Context, req *pb.MarkReadRequest) (*pb.Empty, error) {
	sess, ok := common.SessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	err := h.inbox.MarkAsRead(ctx, req.ID, sess.AccountID)
	if errors.Is(err, dbmysql.ErrNotificationNotFound) {
		return nil, status.Error(codes.NotFound, "notification not found")
	}
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to mark as read")
	}
	return &pb.Empty{}, nil
}
