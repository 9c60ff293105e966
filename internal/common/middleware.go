package common

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var publicMethods = map[string]bool{
	"/planetpal.v1.UserService/Signup": true,
	"/planetpal.v1.UserService/Login":  true,
}

// AuthInterceptor checks the bearer token of every non-public unary call
// and puts the resulting Session into the handler's context.
func AuthInterceptor(tm *TokenManager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		sess, err := authenticate(ctx, tm)
		if err != nil {
			return nil, err
		}
		return handler(WithSession(ctx, sess), req)
	}
}

func StreamAuthInterceptor(tm *TokenManager) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if publicMethods[info.FullMethod] {
			return handler(srv, ss)
		}

		sess, err := authenticate(ss.Context(), tm)
		if err != nil {
			return err
		}
		return handler(srv, &sessionStream{ServerStream: ss, ctx: WithSession(ss.Context(), sess)})
	}
}

func authenticate(ctx context.Context, tm *TokenManager) (Session, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return Session{}, status.Error(codes.Unauthenticated, "missing metadata")
	}
	vals := md["authorization"]
	if len(vals) == 0 {
		return Session{}, status.Error(codes.Unauthenticated, "authorization required")
	}

	// vals[0] = Bearer <token>
	parts := strings.Fields(vals[0])
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return Session{}, status.Error(codes.Unauthenticated, "invalid auth header")
	}

	claims, err := tm.Validate(parts[1])
	if err != nil {
		return Session{}, status.Error(codes.Unauthenticated, "invalid or expired token")
	}
	return Session{AccountID: claims.AccountID, Email: claims.Email}, nil
}

type sessionStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *sessionStream) Context() context.Context {
	return s.ctx
}

func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logCall(logger, info.FullMethod, start, err)
		return resp, err
	}
}

func StreamLoggingInterceptor(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		logger.Info("stream opened", "method", info.FullMethod)
		err := handler(srv, ss)
		logCall(logger, info.FullMethod, start, err)
		return err
	}
}

func logCall(logger *slog.Logger, method string, start time.Time, err error) {
	code := status.Code(err)
	attrs := []any{"method", method, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK, codes.Canceled:
		logger.Info("rpc", attrs...)
	case codes.Internal, codes.Unavailable, codes.Unknown:
		logger.Error("rpc", append(attrs, "error", err)...)
	default:
		logger.Warn("rpc", append(attrs, "error", err)...)
	}
}
