package notification

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"planetpal/api/v1/codec"
)

const ServiceName = "planetpal.v1.NotificationService"

const (
	ListMethod     = "/" + ServiceName + "/List"
	MarkReadMethod = "/" + ServiceName + "/MarkRead"
)

type Notification struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Header    string                 `json:"header"`
	Content   string                 `json:"content"`
	Status    string                 `json:"status"`
	Priority  int                    `json:"priority"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
}

type ListRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ListResponse struct {
	Notifications []Notification `json:"notifications"`
	Unread        int64          `json:"unread"`
}

type MarkReadRequest struct {
	ID string `json:"id"`
}

type Empty struct{}

type NotificationServiceServer interface {
	List(context.Context, *ListRequest) (*ListResponse, error)
	MarkRead(context.Context, *MarkReadRequest) (*Empty, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NotificationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: codec.Unary(ListMethod, NotificationServiceServer.List)},
		{MethodName: "MarkRead", Handler: codec.Unary(MarkReadMethod, NotificationServiceServer.MarkRead)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "planetpal/v1/notification.proto",
}

func RegisterNotificationServiceServer(s grpc.ServiceRegistrar, srv NotificationServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	return codec.Invoke[ListResponse](ctx, c.cc, ListMethod, in, opts...)
}

func (c *Client) MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*Empty, error) {
	return codec.Invoke[Empty](ctx, c.cc, MarkReadMethod, in, opts...)
}
