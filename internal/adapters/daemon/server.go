package daemon

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"

	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server answers queries over gRPC.
type Server struct {
	queries    ports.Queries
	lifecycle  *Lifecycle
	logger     ports.Logger
	grpcServer *grpc.Server
}

// NewServer creates a Server backed by queries.
func NewServer(queries ports.Queries, lifecycle *Lifecycle, logger ports.Logger) *Server {
	s := &Server{
		queries:    queries,
		lifecycle:  lifecycle,
		logger:     logger,
		grpcServer: grpc.NewServer(grpc.UnaryInterceptor(lifecycle.Interceptor())),
	}
	s.grpcServer.RegisterService(&serviceDesc, s)
	return s
}

// Listen opens the listener described by cfg. For unix sockets a stale socket
// file is removed first and the new one is restricted to the owner.
func Listen(cfg domain.ServerConfig) (net.Listener, error) {
	if cfg.Network != "unix" {
		lis, err := net.Listen(cfg.Network, cfg.Address)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to listen"), "address", cfg.Address)
		}
		return lis, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Address), domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create daemon directory")
	}
	if err := os.Remove(cfg.Address); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, zerr.Wrap(err, "failed to remove stale socket")
	}
	lis, err := net.Listen("unix", cfg.Address)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to listen on socket"), "address", cfg.Address)
	}
	if err := os.Chmod(cfg.Address, domain.SocketPerm); err != nil {
		_ = lis.Close()
		return nil, zerr.Wrap(err, "failed to set socket permissions")
	}
	return lis, nil
}

// Serve answers requests on lis until ctx is done, the lifecycle shuts down
// or the listener fails.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.logger.Info("serving " + ServiceName + " on " + lis.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.grpcServer.GracefulStop()
		return ctx.Err()
	case <-s.lifecycle.Done():
		s.logger.Info("idle timeout reached, shutting down")
		s.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) tickets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var q domain.TicketQuery
	if err := fromMessage(req, &q); err != nil {
		return envelope(nil, domain.Annotate(domain.ErrInvalidQuery, "cause", err.Error()))
	}
	trains, err := s.queries.Tickets(ctx, q)
	return s.respond(MethodTickets, trains, err)
}

func (s *Server) schedule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var q domain.ScheduleQuery
	if err := fromMessage(req, &q); err != nil {
		return envelope(nil, domain.Annotate(domain.ErrInvalidQuery, "cause", err.Error()))
	}
	schedule, err := s.queries.Schedule(ctx, q)
	return s.respond(MethodSchedule, schedule, err)
}

func (s *Server) fare(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var q domain.FareQuery
	if err := fromMessage(req, &q); err != nil {
		return envelope(nil, domain.Annotate(domain.ErrInvalidQuery, "cause", err.Error()))
	}
	result, err := s.queries.Fare(ctx, q)
	return s.respond(MethodFare, result, err)
}

// stationsRequest is the body of a Stations call.
type stationsRequest struct {
	Keyword string `json:"keyword"`
	Exact   bool   `json:"exact,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

func (s *Server) stations(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var q stationsRequest
	if err := fromMessage(req, &q); err != nil {
		return envelope(nil, domain.Annotate(domain.ErrInvalidQuery, "cause", err.Error()))
	}
	found, err := s.queries.Stations(ctx, q.Keyword, q.Exact, q.Limit)
	return s.respond(MethodStations, found, err)
}

// Status is the body of a Ping response.
type Status struct {
	PID                  int   `json:"pid"`
	UptimeSeconds        int64 `json:"uptime_seconds"`
	IdleRemainingSeconds int64 `json:"idle_remaining_seconds"`
}

func (s *Server) ping(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return envelope(Status{
		PID:                  os.Getpid(),
		UptimeSeconds:        int64(s.lifecycle.Uptime().Seconds()),
		IdleRemainingSeconds: int64(s.lifecycle.IdleRemaining().Seconds()),
	}, nil)
}

func (s *Server) respond(method string, data any, err error) (*structpb.Struct, error) {
	if err != nil {
		s.logger.Warn(method + ": " + err.Error())
	}
	return envelope(data, err)
}
