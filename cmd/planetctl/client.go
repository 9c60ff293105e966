package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const callTimeout = 10 * time.Second

var errNoToken = errors.New("no session token: run `planetctl login` and pass --token or set PLANETPAL_TOKEN")

func dial(addr string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return conn, nil
}

// withToken attaches the bearer token the server's auth interceptor reads.
func withToken(ctx context.Context, token string) (context.Context, error) {
	if token == "" {
		return nil, errNoToken
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token), nil
}

// withConn runs fn with a connection and, when authenticated is set, a
// context carrying the session token. Streaming commands pass timeout 0.
func withConn(parent context.Context, authenticated bool, timeout time.Duration, fn func(context.Context, *grpc.ClientConn) error) error {
	ctx := parent
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, timeout)
		defer cancel()
	}
	if authenticated {
		var err error
		if ctx, err = withToken(ctx, authToken); err != nil {
			return err
		}
	}

	conn, err := dial(serverAddr)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(ctx, conn)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
