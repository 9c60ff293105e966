package notif

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "planetpal/api/v1/notification"
	"planetpal/internal/common"
	"planetpal/internal/dbmysql"
)

type MockInbox struct {
	mock.Mock
}

func (m *MockInbox) UserNotifications(ctx context.Context, userID string, limit, offset int) ([]*common.NotificationResponse, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*common.NotificationResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockInbox) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func sessionCtx(accountID string) context.Context {
	return common.WithSession(context.Background(), common.Session{AccountID: accountID})
}

func TestHandler_List(t *testing.T) {
	readAt := time.Now()

	tests := []struct {
		name      string
		ctx       context.Context
		req       *pb.ListRequest
		wantLimit int
		setup     func(*MockInbox, int)
		wantCode  codes.Code
	}{
		{
			name:      "default limit",
			ctx:       sessionCtx("u2"),
			req:       &pb.ListRequest{},
			wantLimit: defaultListLimit,
			setup: func(m *MockInbox, limit int) {
				m.On("UserNotifications", mock.Anything, "u2", limit, 0).Return([]*common.NotificationResponse{
					{ID: "n1", Type: "friend_request", Header: "New Friend Request", Status: "read", ReadAt: &readAt},
				}, int64(0), nil)
			},
			wantCode: codes.OK,
		},
		{
			name:      "limit capped",
			ctx:       sessionCtx("u2"),
			req:       &pb.ListRequest{Limit: 1000, Offset: 5},
			wantLimit: maxListLimit,
			setup: func(m *MockInbox, limit int) {
				m.On("UserNotifications", mock.Anything, "u2", limit, 5).Return([]*common.NotificationResponse{}, int64(3), nil)
			},
			wantCode: codes.OK,
		},
		{
			name:     "unauthenticated",
			ctx:      context.Background(),
			req:      &pb.ListRequest{},
			setup:    func(*MockInbox, int) {},
			wantCode: codes.Unauthenticated,
		},
		{
			name:      "service error",
			ctx:       sessionCtx("u2"),
			req:       &pb.ListRequest{},
			wantLimit: defaultListLimit,
			setup: func(m *MockInbox, limit int) {
				m.On("UserNotifications", mock.Anything, "u2", limit, 0).Return(nil, int64(0), errors.New("db down"))
			},
			wantCode: codes.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inbox := new(MockInbox)
			tt.setup(inbox, tt.wantLimit)
			h := NewHandler(inbox)

			resp, err := h.List(tt.ctx, tt.req)
			if tt.wantCode != codes.OK {
				assert.Equal(t, tt.wantCode, status.Code(err))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, resp.Notifications)
			inbox.AssertExpectations(t)
		})
	}
}

func TestHandler_MarkRead(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		id       string
		err      error
		call     bool
		wantCode codes.Code
	}{
		{name: "success", ctx: sessionCtx("u2"), id: "n1", call: true, wantCode: codes.OK},
		{name: "unauthenticated", ctx: context.Background(), id: "n1", wantCode: codes.Unauthenticated},
		{name: "missing id", ctx: sessionCtx("u2"), wantCode: codes.InvalidArgument},
		{name: "not found", ctx: sessionCtx("u2"), id: "n9", call: true,
			err: fmt.Errorf("%w: n9", dbmysql.ErrNotificationNotFound), wantCode: codes.NotFound},
		{name: "internal", ctx: sessionCtx("u2"), id: "n1", call: true, err: errors.New("db down"), wantCode: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inbox := new(MockInbox)
			if tt.call {
				inbox.On("MarkAsRead", mock.Anything, tt.id, "u2").Return(tt.err).Once()
			}
			h := NewHandler(inbox)

			_, err := h.MarkRead(tt.ctx, &pb.MarkReadRequest{ID: tt.id})
			assert.Equal(t, tt.wantCode, status.Code(err))
			inbox.AssertExpectations(t)
		})
	}
}
