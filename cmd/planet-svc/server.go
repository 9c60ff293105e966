package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	notifpb "planetpal/api/v1/notification"
	relpb "planetpal/api/v1/relationship"
	taskpb "planetpal/api/v1/tasks"
	userpb "planetpal/api/v1/user"
	"planetpal/internal/common"
	"planetpal/internal/wire"
)

func newGRPCServer(app *wire.Application) *grpc.Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			common.LoggingInterceptor(app.Logger),
			common.AuthInterceptor(app.Tokens),
		),
		grpc.ChainStreamInterceptor(
			common.StreamLoggingInterceptor(app.Logger),
			common.StreamAuthInterceptor(app.Tokens),
		),
	)

	userpb.RegisterUserServiceServer(server, app.Users)
	relpb.RegisterRelationshipServiceServer(server, app.Relationships)
	notifpb.RegisterNotificationServiceServer(server, app.Notifications)
	taskpb.RegisterTaskServiceServer(server, app.Tasks)
	reflection.Register(server)

	return server
}

func newRouter(service string) http.Handler {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	router.HandleFunc("/healthz", healthCheckHandler(service)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func healthCheckHandler(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": service,
		})
	}
}

// stopGRPC drains in-flight calls but gives up after timeout, since Watch
// streams only end when their clients leave.
func stopGRPC(server *grpc.Server, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		slog.Warn("graceful stop timed out, closing remaining streams")
		server.Stop()
		<-done
	}
}
