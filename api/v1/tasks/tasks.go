package tasks

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"planetpal/api/v1/codec"
)

const ServiceName = "planetpal.v1.TaskService"

const (
	TodayMethod   = "/" + ServiceName + "/Today"
	SetTaskMethod = "/" + ServiceName + "/SetTask"
	HistoryMethod = "/" + ServiceName + "/History"
)

// TaskStates holds one day's answers. A nil entry is unanswered.
type TaskStates struct {
	Water    *bool `json:"water"`
	Meals    *bool `json:"meals"`
	Exercise *bool `json:"exercise"`
	Sleep    *bool `json:"sleep"`
}

type DailyTasks struct {
	Date              string     `json:"date"`
	Tasks             TaskStates `json:"tasks"`
	CompletedCount    int        `json:"completed_count"`
	CompletionPercent int        `json:"completion_percent"`
	LastUpdated       *time.Time `json:"last_updated,omitempty"`
}

type TodayRequest struct{}

type SetTaskRequest struct {
	Task  string `json:"task"`
	State string `json:"state"`
}

type HistoryRequest struct {
	Days int `json:"days"`
}

type HistoryResponse struct {
	Days []DailyTasks `json:"days"`
}

type TaskServiceServer interface {
	Today(context.Context, *TodayRequest) (*DailyTasks, error)
	SetTask(context.Context, *SetTaskRequest) (*DailyTasks, error)
	History(context.Context, *HistoryRequest) (*HistoryResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Today", Handler: codec.Unary(TodayMethod, TaskServiceServer.Today)},
		{MethodName: "SetTask", Handler: codec.Unary(SetTaskMethod, TaskServiceServer.SetTask)},
		{MethodName: "History", Handler: codec.Unary(HistoryMethod, TaskServiceServer.History)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "planetpal/v1/tasks.proto",
}

func RegisterTaskServiceServer(s grpc.ServiceRegistrar, srv TaskServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Today(ctx context.Context, in *TodayRequest, opts ...grpc.CallOption) (*DailyTasks, error) {
	return codec.Invoke[DailyTasks](ctx, c.cc, TodayMethod, in, opts...)
}

func (c *Client) SetTask(ctx context.Context, in *SetTaskRequest, opts ...grpc.CallOption) (*DailyTasks, error) {
	return codec.Invoke[DailyTasks](ctx, c.cc, SetTaskMethod, in, opts...)
}

func (c *Client) History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryResponse, error) {
	return codec.Invoke[HistoryResponse](ctx, c.cc, HistoryMethod, in, opts...)
}
