// Package grpcx: служебный gRPC-листенер: health и reflection.
package grpcx

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName: имя в health-ответах; "" означает весь сервер.
const ServiceName = "ama.v1.AMAService"

// Pinger: зависимость, от которой зависит готовность (пул Postgres).
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	pinger Pinger
	every  time.Duration
	log    *slog.Logger
}

func NewServer(pinger Pinger, every time.Duration, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if every <= 0 {
		every = 15 * time.Second
	}
	gs := grpc.NewServer(
		grpc.ChainUnaryInterceptor(UnaryServerInterceptor(log)),
		grpc.ChainStreamInterceptor(StreamServerInterceptor(log)),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)

	return &Server{grpc: gs, health: hs, pinger: pinger, every: every, log: log}
}

func (s *Server) GRPC() *grpc.Server { return s.grpc }

// Check один раз пингует зависимость и выставляет статус.
func (s *Server) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if s.pinger != nil {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := s.pinger.Ping(pctx); err != nil {
			s.log.Warn("grpc health: dependency down", slog.Any("err", err))
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
	return st
}

func (s *Server) watch(ctx context.Context) {
	t := time.NewTicker(s.every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Check(ctx)
		}
	}
}

// Serve обслуживает lis до отмены ctx, затем GracefulStop.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.Check(ctx)
	go s.watch(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- s.grpc.Serve(lis) }()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpc.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Run слушает addr (":5001").
func (s *Server) Run(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.log.Info("gRPC listening", slog.String("addr", addr))
	return s.Serve(ctx, lis)
}
