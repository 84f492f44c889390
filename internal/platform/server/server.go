package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/ogurasousui/codex-graphql-crud/internal/platform/metrics"
	"go.uber.org/zap"
)

// ReadinessCheck は /healthz で実行される疎通確認です。
type ReadinessCheck func(ctx context.Context) error

// Options は HTTP サーバーの設定です。
type Options struct {
	ListenAddr      string
	GraphQLPath     string
	ShutdownTimeout time.Duration
}

// Server は GraphQL エンドポイントを公開する HTTP サーバーのライフサイクルを管理します。
type Server struct {
	opts       Options
	httpServer *http.Server
	logger     *zap.Logger
}

// New は GraphQL・メトリクス・ヘルスチェックのルートを持つ HTTP サーバーを構築します。
func New(opts Options, schema *graphqlgo.Schema, ready ReadinessCheck, m *metrics.Metrics, logger *zap.Logger) *Server {
	if opts.GraphQLPath == "" {
		opts.GraphQLPath = "/graphql"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.Handle(opts.GraphQLPath, m.Instrument("graphql", &relay.Handler{Schema: schema}))
	mux.Handle("/healthz", m.Instrument("healthz", healthzHandler(ready, logger)))
	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}

	return &Server{
		opts:   opts,
		logger: logger,
		httpServer: &http.Server{
			Addr:              opts.ListenAddr,
			Handler:           withRequestLogging(logger, mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler はルーティング済みのハンドラーを返します。
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.opts.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.ListenAddr, err)
	}
	return s.serve(ctx, lis)
}

func (s *Server) serve(ctx context.Context, lis net.Listener) error {
	s.logger.Info("GraphQL server running",
		zap.String("url", fmt.Sprintf("http://%s%s", lis.Addr().String(), s.opts.GraphQLPath)))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}
	return nil
}

func healthzHandler(ready ReadinessCheck, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if ready != nil {
			if err := ready(r.Context()); err != nil {
				logger.Warn("readiness check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = io.WriteString(w, "unavailable\n")
				return
			}
		}
		_, _ = io.WriteString(w, "ok\n")
	})
}
