// Package codec carries planetpal messages over gRPC as JSON
// (content-type application/grpc+json) and provides the small generic
// helpers the hand-written service descriptors are built from.
package codec

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// Name is the gRPC content-subtype the codec is registered under.
const Name = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOption selects the JSON codec on a client call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(Name)
}

// Unary adapts a typed service method to a grpc method handler.
func Unary[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Sender is the server side of a server-streaming call.
type Sender[T any] interface {
	Send(*T) error
	Context() context.Context
}

type serverSender[T any] struct {
	grpc.ServerStream
}

func (s *serverSender[T]) Send(m *T) error {
	return s.ServerStream.SendMsg(m)
}

// ServerStream adapts a typed server-streaming method to a grpc.StreamHandler.
func ServerStream[S any, Req any, Resp any](call func(S, *Req, Sender[Resp]) error) grpc.StreamHandler {
	return func(srv interface{}, stream grpc.ServerStream) error {
		in := new(Req)
		if err := stream.RecvMsg(in); err != nil {
			return err
		}
		return call(srv.(S), in, &serverSender[Resp]{ServerStream: stream})
	}
}

// Invoke performs a unary call with the JSON codec.
func Invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Receiver is the client side of a server-streaming call.
type Receiver[T any] struct {
	stream grpc.ClientStream
}

func (r *Receiver[T]) Recv() (*T, error) {
	m := new(T)
	if err := r.stream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Receiver[T]) Context() context.Context {
	return r.stream.Context()
}

// OpenServerStream starts a server-streaming call and sends its single request.
func OpenServerStream[Resp any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, method string, in interface{}, opts ...grpc.CallOption) (*Receiver[Resp], error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	stream, err := cc.NewStream(ctx, desc, method, opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &Receiver[Resp]{stream: stream}, nil
}
