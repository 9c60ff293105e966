package codec

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

type echoRequest struct {
	Text  string `json:"text"`
	Times int    `json:"times"`
}

type echoReply struct {
	Text string `json:"text"`
}

type echoServer interface {
	Echo(context.Context, *echoRequest) (*echoReply, error)
	Repeat(*echoRequest, Sender[echoReply]) error
}

type echoImpl struct{}

func (echoImpl) Echo(_ context.Context, in *echoRequest) (*echoReply, error) {
	return &echoReply{Text: in.Text}, nil
}

func (echoImpl) Repeat(in *echoRequest, s Sender[echoReply]) error {
	for i := 0; i < in.Times; i++ {
		if err := s.Send(&echoReply{Text: in.Text}); err != nil {
			return err
		}
	}
	return nil
}

var repeatDesc = grpc.StreamDesc{
	StreamName:    "Repeat",
	Handler:       ServerStream(echoServer.Repeat),
	ServerStreams: true,
}

var echoDesc = grpc.ServiceDesc{
	ServiceName: "test.Echo",
	HandlerType: (*echoServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Echo", Handler: Unary("/test.Echo/Echo", echoServer.Echo)},
	},
	Streams: []grpc.StreamDesc{repeatDesc},
}

func dialEcho(t *testing.T, opts ...grpc.ServerOption) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(opts...)
	srv.RegisterService(&echoDesc, echoImpl{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestUnary_RoundTrip(t *testing.T) {
	var intercepted string
	conn := dialEcho(t, grpc.UnaryInterceptor(func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		intercepted = info.FullMethod
		return handler(ctx, req)
	}))

	out, err := Invoke[echoReply](context.Background(), conn, "/test.Echo/Echo", &echoRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Text)
	assert.Equal(t, "/test.Echo/Echo", intercepted)
}

func TestServerStream_RoundTrip(t *testing.T) {
	conn := dialEcho(t)

	recv, err := OpenServerStream[echoReply](context.Background(), conn, &repeatDesc, "/test.Echo/Repeat", &echoRequest{Text: "ping", Times: 3})
	require.NoError(t, err)

	var got []string
	for {
		msg, err := recv.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, msg.Text)
	}
	assert.Equal(t, []string{"ping", "ping", "ping"}, got)
}
