package tasks

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "planetpal/api/v1/tasks"
	"planetpal/internal/common"
	"planetpal/internal/dbmongo"
)

type Handler struct {
	service *Service
}

var _ pb.TaskServiceServer = (*Handler)(nil)

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Today(ctx context.Context, _ *pb.TodayRequest) (*pb.DailyTasks, error) {
	sess, ok := common.SessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}

	day, err := h.service.Today(ctx, sess.AccountID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load daily tasks", "account", sess.AccountID, "error", err)
		return nil, status.Error(codes.Internal, "failed to get daily tasks")
	}
	resp := toDailyTasks(day)
	return &resp, nil
}

func (h *Handler) SetTask(ctx context.Context, req *pb.SetTaskRequest) (*pb.DailyTasks, error) {
	sess, ok := common.SessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}

	day, err := h.service.SetTask(ctx, sess.AccountID, req.Task, req.State)
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownTask), errors.Is(err, ErrInvalidState):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	default:
		slog.ErrorContext(ctx, "failed to update daily task", "account", sess.AccountID, "task", req.Task, "error", err)
		return nil, status.Error(codes.Internal, "failed to update daily task")
	}
	resp := toDailyTasks(day)
	return &resp, nil
}

func (h *Handler) History(ctx context.Context, req *pb.HistoryRequest) (*pb.HistoryResponse, error) {
	sess, ok := common.SessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}

	days, err := h.service.History(ctx, sess.AccountID, req.Days)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load task history", "account", sess.AccountID, "error", err)
		return nil, status.Error(codes.Internal, "failed to get task history")
	}

	resp := &pb.HistoryResponse{Days: make([]pb.DailyTasks, len(days))}
	for i, d := range days {
		resp.Days[i] = toDailyTasks(d)
	}
	return resp, nil
}

func toDailyTasks(day *dbmongo.DailyTasks) pb.DailyTasks {
	out := pb.DailyTasks{
		Date: day.Date,
		Tasks: pb.TaskStates{
			Water:    day.Tasks.Water,
			Meals:    day.Tasks.Meals,
			Exercise: day.Tasks.Exercise,
			Sleep:    day.Tasks.Sleep,
		},
		CompletedCount:    day.CompletedCount,
		CompletionPercent: day.CompletedCount * 100 / len(dbmongo.DailyTaskNames),
	}
	if !day.LastUpdated.IsZero() {
		at := day.LastUpdated
		out.LastUpdated = &at
	}
	return out
}
