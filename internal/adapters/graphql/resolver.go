package graphql

import (
	"context"
	_ "embed"
	"fmt"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/book"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/branch"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/company"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/employee"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/order"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// ErrorObserver はリゾルバーで発生したエラーをフィールド名単位で記録します。
type ErrorObserver interface {
	ObserveResolverError(field string)
}

// Dependencies はリゾルバーが利用するユースケース群です。
type Dependencies struct {
	Books     book.Lister
	Companies company.UseCase
	Branches  branch.UseCase
	Employees employee.UseCase
	Orders    order.UseCase
}

// Resolver は Query と Mutation のルートリゾルバーです。
type Resolver struct {
	deps     Dependencies
	logger   *zap.Logger
	observer ErrorObserver
}

// NewResolver は Resolver を生成します。logger と observer は nil でも構いません。
func NewResolver(deps Dependencies, logger *zap.Logger, observer ErrorObserver) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{deps: deps, logger: logger, observer: observer}
}

// SchemaOptions はスキーマ生成時の設定です。
type SchemaOptions struct {
	MaxDepth int
}

// NewSchema は組み込みの SDL をパースし、リゾルバーを結び付けたスキーマを返します。
func NewSchema(r *Resolver, opts SchemaOptions) (*graphqlgo.Schema, error) {
	schemaOpts := []graphqlgo.SchemaOpt{
		graphqlgo.UseStringDescriptions(),
		graphqlgo.Logger(panicLogger{logger: r.logger}),
	}
	if opts.MaxDepth > 0 {
		schemaOpts = append(schemaOpts, graphqlgo.MaxDepth(opts.MaxDepth))
	}

	schema, err := graphqlgo.ParseSchema(schemaSDL, r, schemaOpts...)
	if err != nil {
		return nil, fmt.Errorf("graphql: parse schema: %w", err)
	}
	return schema, nil
}

// fail はエラーをログとメトリクスに記録したうえでそのまま返します。
func (r *Resolver) fail(field string, err error) error {
	if r.observer != nil {
		r.observer.ObserveResolverError(field)
	}
	r.logger.Warn("resolver failed", zap.String("field", field), zap.Error(err))
	return err
}

type panicLogger struct {
	logger *zap.Logger
}

func (l panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.logger.Error("graphql resolver panic", zap.Any("panic", value), zap.Stack("stack"))
}
