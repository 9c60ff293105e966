package user

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"planetpal/api/v1/codec"
)

const ServiceName = "planetpal.v1.UserService"

const (
	SignupMethod  = "/" + ServiceName + "/Signup"
	LoginMethod   = "/" + ServiceName + "/Login"
	ProfileMethod = "/" + ServiceName + "/Profile"
)

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	PlanetName  string `json:"planet_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

type ProfileRequest struct{}

type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PlanetName   string    `json:"planet_name"`
	FriendCount  int64     `json:"friend_count"`
	PlanetHealth float64   `json:"planet_health"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserServiceServer interface {
	Signup(context.Context, *SignupRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	Profile(context.Context, *ProfileRequest) (*Profile, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Signup", Handler: codec.Unary(SignupMethod, UserServiceServer.Signup)},
		{MethodName: "Login", Handler: codec.Unary(LoginMethod, UserServiceServer.Login)},
		{MethodName: "Profile", Handler: codec.Unary(ProfileMethod, UserServiceServer.Profile)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "planetpal/v1/user.proto",
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return codec.Invoke[AuthResponse](ctx, c.cc, SignupMethod, in, opts...)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return codec.Invoke[AuthResponse](ctx, c.cc, LoginMethod, in, opts...)
}

func (c *Client) Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return codec.Invoke[Profile](ctx, c.cc, ProfileMethod, in, opts...)
}
