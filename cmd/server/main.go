package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gqladapter "github.com/ogurasousui/codex-graphql-crud/internal/adapters/graphql"
	"github.com/ogurasousui/codex-graphql-crud/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/book"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/branch"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/company"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/employee"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/order"
	"github.com/ogurasousui/codex-graphql-crud/internal/platform/config"
	pg "github.com/ogurasousui/codex-graphql-crud/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-graphql-crud/internal/platform/health"
	"github.com/ogurasousui/codex-graphql-crud/internal/platform/logging"
	"github.com/ogurasousui/codex-graphql-crud/internal/platform/metrics"
	"github.com/ogurasousui/codex-graphql-crud/internal/platform/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server stopped with error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database pool: %w", err)
	}
	defer dbPool.Close()

	codec, err := order.CodecFor(cfg.Order.ItemsEncoding)
	if err != nil {
		return err
	}

	catalog, err := book.LoadFile(cfg.Books.Path)
	if err != nil {
		return fmt.Errorf("load books: %w", err)
	}

	txManager := pg.NewTransactionManager(dbPool)
	orderRepo := order.NewTranscodingRepository(postgres.NewOrderStore(dbPool), codec)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	resolver := gqladapter.NewResolver(gqladapter.Dependencies{
		Books:     catalog,
		Companies: company.NewService(postgres.NewCompanyRepository(dbPool), nil, txManager),
		Branches:  branch.NewService(postgres.NewBranchRepository(dbPool), txManager),
		Employees: employee.NewService(postgres.NewEmployeeRepository(dbPool), txManager),
		Orders:    order.NewService(orderRepo, nil, txManager),
	}, logger, m)

	schema, err := gqladapter.NewSchema(resolver, gqladapter.SchemaOptions{MaxDepth: cfg.Server.MaxQueryDepth})
	if err != nil {
		return err
	}

	ping := func(ctx context.Context) error { return pg.Ping(ctx, dbPool) }
	httpServer := server.New(server.Options{
		ListenAddr:      cfg.Server.ListenAddr,
		GraphQLPath:     cfg.Server.GraphQLPath,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, schema, ping, m, logger)

	logger.Info("starting",
		zap.String("items_encoding", cfg.Order.ItemsEncoding),
		zap.Int("books", catalog.Len()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(gctx) })
	if cfg.Server.HealthListenAddr != "" {
		monitor := health.NewMonitor(ping, 0, logger)
		g.Go(func() error { return monitor.Serve(gctx, cfg.Server.HealthListenAddr) })
		logger.Info("gRPC health server listening", zap.String("addr", cfg.Server.HealthListenAddr))
	}

	return g.Wait()
}
