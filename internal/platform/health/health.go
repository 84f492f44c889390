package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName は gRPC ヘルスチェックで公開するサービス名です。
const ServiceName = "crudgraph.GraphQL"

const defaultInterval = 15 * time.Second

// Checker はデータベースなど依存先の疎通を確認します。
type Checker func(ctx context.Context) error

// Monitor は Checker を定期的に実行し、その結果を gRPC ヘルスサービスへ反映します。
type Monitor struct {
	check    Checker
	interval time.Duration
	logger   *zap.Logger
	health   *grpchealth.Server
}

// NewMonitor は Monitor を生成します。interval が 0 以下の場合は 15 秒を使用します。
func NewMonitor(check Checker, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hs := grpchealth.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Monitor{check: check, interval: interval, logger: logger, health: hs}
}

// HealthServer は登録対象の gRPC ヘルスサービスを返します。
func (m *Monitor) HealthServer() healthpb.HealthServer {
	return m.health
}

// Probe は Checker を 1 回実行し、ステータスを更新します。
func (m *Monitor) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := m.check(ctx); err != nil {
		m.logger.Warn("health check failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.health.SetServingStatus("", status)
	m.health.SetServingStatus(ServiceName, status)
	return status
}

// Watch はコンテキストがキャンセルされるまで定期的に Probe を実行します。
func (m *Monitor) Watch(ctx context.Context) {
	m.Probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.health.Shutdown()
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// Serve は listenAddr で gRPC ヘルスサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (m *Monitor) Serve(ctx context.Context, listenAddr string) error {
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddr, err)
	}
	return m.serve(ctx, lis)
}

func (m *Monitor) serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, m.health)

	go m.Watch(ctx)
	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC health: %w", err)
	}
	return nil
}
