package grpcx_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/uniconnect/ama-service/internal/domain"
	grpcx "github.com/uniconnect/ama-service/internal/transport/grpc"
)

type flakyPinger struct{ down atomic.Bool }

func (p *flakyPinger) Ping(context.Context) error {
	if p.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func startServer(t *testing.T, p grpcx.Pinger) (*grpcx.Server, healthpb.HealthClient) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpcx.NewServer(p, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return srv, healthpb.NewHealthClient(conn)
}

func TestHealth(t *testing.T) {
	p := &flakyPinger{}
	srv, client := startServer(t, p)

	require.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: grpcx.ServiceName})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 3*time.Second, 20*time.Millisecond)

	p.down.Store(true)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, srv.Check(context.Background()))

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestUnaryInterceptor(t *testing.T) {
	icpt := grpcx.UnaryServerInterceptor(slog.New(slog.NewTextHandler(io.Discard, nil)))
	info := &grpc.UnaryServerInfo{FullMethod: "/ama.v1.AMAService/Test"}

	_, err := icpt(context.Background(), nil, info, func(ctx context.Context, _ any) (any, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "deadline guard")
		return nil, status.Error(codes.NotFound, "no such service")
	})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "no such service", status.Convert(err).Message())

	_, err = icpt(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, errors.New("pool exhausted")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "internal server error", status.Convert(err).Message())

	_, err = icpt(context.Background(), nil, info, func(context.Context, any) (any, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestToStatus(t *testing.T) {
	assert.NoError(t, grpcx.ToStatus(nil))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(grpcx.ToStatus(context.DeadlineExceeded)))
	assert.Equal(t, codes.Canceled, status.Code(grpcx.ToStatus(fmt.Errorf("ping: %w", context.Canceled))))

	// доменные ошибки наружу не просачиваются
	internal := grpcx.ToStatus(domain.ErrSessionFull)
	assert.Equal(t, codes.Internal, status.Code(internal))
	assert.Equal(t, "internal server error", status.Convert(internal).Message())

	already := status.Error(codes.Aborted, "x")
	assert.Equal(t, already, grpcx.ToStatus(already))
}
