package relationship

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"planetpal/api/v1/codec"
)

const ServiceName = "planetpal.v1.RelationshipService"

const (
	SearchMethod        = "/" + ServiceName + "/Search"
	StatusMethod        = "/" + ServiceName + "/Status"
	SnapshotMethod      = "/" + ServiceName + "/Snapshot"
	SendRequestMethod   = "/" + ServiceName + "/SendRequest"
	AcceptRequestMethod = "/" + ServiceName + "/AcceptRequest"
	RejectRequestMethod = "/" + ServiceName + "/RejectRequest"
	CancelRequestMethod = "/" + ServiceName + "/CancelRequest"
	ListFriendsMethod   = "/" + ServiceName + "/ListFriends"
	FriendPlanetMethod  = "/" + ServiceName + "/FriendPlanet"
	WatchMethod         = "/" + ServiceName + "/Watch"
)

type Account struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	PlanetName  string `json:"planet_name"`
	FriendCount int64  `json:"friend_count"`
}

type Request struct {
	ID        string    `json:"id"`
	FromID    string    `json:"from_id"`
	ToID      string    `json:"to_id"`
	FromName  string    `json:"from_name"`
	ToName    string    `json:"to_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Friend struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	PlanetName  string    `json:"planet_name"`
	Since       time.Time `json:"since"`
}

type Friendship struct {
	ID          string    `json:"id"`
	Users       []string  `json:"users"`
	RequestedBy string    `json:"requested_by"`
	Status      string    `json:"status"`
	AcceptedAt  time.Time `json:"accepted_at"`
}

type Snapshot struct {
	Friends  []Friend  `json:"friends"`
	Sent     []Request `json:"sent"`
	Received []Request `json:"received"`
}

type Planet struct {
	AccountID    string  `json:"account_id"`
	DisplayName  string  `json:"display_name"`
	PlanetName   string  `json:"planet_name"`
	PlanetHealth float64 `json:"planet_health"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Accounts []Account `json:"accounts"`
}

type StatusRequest struct {
	OtherID string `json:"other_id"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type SnapshotRequest struct{}

type SendRequestRequest struct {
	ToID string `json:"to_id"`
}

type SendRequestResponse struct {
	Request Request `json:"request"`
}

// RequestRef names an existing friend request by its id.
type RequestRef struct {
	RequestID string `json:"request_id"`
}

type AcceptRequestResponse struct {
	Friendship Friendship `json:"friendship"`
}

type Empty struct{}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []Friend `json:"friends"`
}

type FriendPlanetRequest struct {
	FriendID string `json:"friend_id"`
}

type WatchRequest struct{}

type WatchEvent struct {
	// Kind is "initial", "received", "sent" or "friends".
	Kind     string   `json:"kind"`
	Snapshot Snapshot `json:"snapshot"`
}

type RelationshipServiceServer interface {
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
	Snapshot(context.Context, *SnapshotRequest) (*Snapshot, error)
	SendRequest(context.Context, *SendRequestRequest) (*SendRequestResponse, error)
	AcceptRequest(context.Context, *RequestRef) (*AcceptRequestResponse, error)
	RejectRequest(context.Context, *RequestRef) (*Empty, error)
	CancelRequest(context.Context, *RequestRef) (*Empty, error)
	ListFriends(context.Context, *ListFriendsRequest) (*ListFriendsResponse, error)
	FriendPlanet(context.Context, *FriendPlanetRequest) (*Planet, error)
	Watch(*WatchRequest, codec.Sender[WatchEvent]) error
}

var watchStreamDesc = grpc.StreamDesc{
	StreamName:    "Watch",
	Handler:       codec.ServerStream(RelationshipServiceServer.Watch),
	ServerStreams: true,
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RelationshipServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: codec.Unary(SearchMethod, RelationshipServiceServer.Search)},
		{MethodName: "Status", Handler: codec.Unary(StatusMethod, RelationshipServiceServer.Status)},
		{MethodName: "Snapshot", Handler: codec.Unary(SnapshotMethod, RelationshipServiceServer.Snapshot)},
		{MethodName: "SendRequest", Handler: codec.Unary(SendRequestMethod, RelationshipServiceServer.SendRequest)},
		{MethodName: "AcceptRequest", Handler: codec.Unary(AcceptRequestMethod, RelationshipServiceServer.AcceptRequest)},
		{MethodName: "RejectRequest", Handler: codec.Unary(RejectRequestMethod, RelationshipServiceServer.RejectRequest)},
		{MethodName: "CancelRequest", Handler: codec.Unary(CancelRequestMethod, RelationshipServiceServer.CancelRequest)},
		{MethodName: "ListFriends", Handler: codec.Unary(ListFriendsMethod, RelationshipServiceServer.ListFriends)},
		{MethodName: "FriendPlanet", Handler: codec.Unary(FriendPlanetMethod, RelationshipServiceServer.FriendPlanet)},
	},
	Streams:  []grpc.StreamDesc{watchStreamDesc},
	Metadata: "planetpal/v1/relationship.proto",
}

func RegisterRelationshipServiceServer(s grpc.ServiceRegistrar, srv RelationshipServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error) {
	return codec.Invoke[SearchResponse](ctx, c.cc, SearchMethod, in, opts...)
}

func (c *Client) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return codec.Invoke[StatusResponse](ctx, c.cc, StatusMethod, in, opts...)
}

func (c *Client) Snapshot(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*Snapshot, error) {
	return codec.Invoke[Snapshot](ctx, c.cc, SnapshotMethod, in, opts...)
}

func (c *Client) SendRequest(ctx context.Context, in *SendRequestRequest, opts ...grpc.CallOption) (*SendRequestResponse, error) {
	return codec.Invoke[SendRequestResponse](ctx, c.cc, SendRequestMethod, in, opts...)
}

func (c *Client) AcceptRequest(ctx context.Context, in *RequestRef, opts ...grpc.CallOption) (*AcceptRequestResponse, error) {
	return codec.Invoke[AcceptRequestResponse](ctx, c.cc, AcceptRequestMethod, in, opts...)
}

func (c *Client) RejectRequest(ctx context.Context, in *RequestRef, opts ...grpc.CallOption) (*Empty, error) {
	return codec.Invoke[Empty](ctx, c.cc, RejectRequestMethod, in, opts...)
}

func (c *Client) CancelRequest(ctx context.Context, in *RequestRef, opts ...grpc.CallOption) (*Empty, error) {
	return codec.Invoke[Empty](ctx, c.cc, CancelRequestMethod, in, opts...)
}

func (c *Client) ListFriends(ctx context.Context, in *ListFriendsRequest, opts ...grpc.CallOption) (*ListFriendsResponse, error) {
	return codec.Invoke[ListFriendsResponse](ctx, c.cc, ListFriendsMethod, in, opts...)
}

func (c *Client) FriendPlanet(ctx context.Context, in *FriendPlanetRequest, opts ...grpc.CallOption) (*Planet, error) {
	return codec.Invoke[Planet](ctx, c.cc, FriendPlanetMethod, in, opts...)
}

func (c *Client) Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (*codec.Receiver[WatchEvent], error) {
	return codec.OpenServerStream[WatchEvent](ctx, c.cc, &watchStreamDesc, WatchMethod, in, opts...)
}
