//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	gqladapter "github.com/ogurasousui/codex-graphql-crud/internal/adapters/graphql"
	repo "github.com/ogurasousui/codex-graphql-crud/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/book"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/branch"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/company"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/employee"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/order"
	"github.com/ogurasousui/codex-graphql-crud/internal/platform/config"
	pg "github.com/ogurasousui/codex-graphql-crud/internal/platform/db/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	migrationsDir = "../assets/migrations"
	seedsDir      = "../assets/seeds"
)

func TestOrderGraphQLIntegration(t *testing.T) {
	cfg, err := config.Load(configPathFromEnv())
	require.NoError(t, err)

	require.NoError(t, resetMigrations(cfg.Database.DSN(), migrationsDir))

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, applySeeds(ctx, pool, seedsDir))

	catalog, err := book.LoadDefault()
	require.NoError(t, err)

	tx := pg.NewTransactionManager(pool)
	resolver := gqladapter.NewResolver(gqladapter.Dependencies{
		Books:     catalog,
		Companies: company.NewService(repo.NewCompanyRepository(pool), nil, tx),
		Branches:  branch.NewService(repo.NewBranchRepository(pool), tx),
		Employees: employee.NewService(repo.NewEmployeeRepository(pool), tx),
		Orders:    order.NewService(order.NewTranscodingRepository(repo.NewOrderStore(pool), order.CommaCodec{}), nil, tx),
	}, nil, nil)
	schema, err := gqladapter.NewSchema(resolver, gqladapter.SchemaOptions{MaxDepth: 10})
	require.NoError(t, err)

	exec := func(query string) string {
		t.Helper()
		result := schema.Exec(ctx, query, "", nil)
		require.Empty(t, result.Errors, "query %s", query)
		return string(result.Data)
	}

	created := exec(`mutation { createOrder(deliveryAddress: "2-2 Kita, Osaka", items: ["pen", "notebook"], total: 8.0, status: PENDING) { id items } }`)
	var payload struct {
		CreateOrder struct {
			ID    int32    `json:"id"`
			Items []string `json:"items"`
		} `json:"createOrder"`
	}
	require.NoError(t, json.Unmarshal([]byte(created), &payload))
	assert.Equal(t, []string{"pen", "notebook"}, payload.CreateOrder.Items)

	var stored string
	require.NoError(t, pool.QueryRow(ctx, `SELECT items FROM orders WHERE id = $1`, payload.CreateOrder.ID).Scan(&stored))
	assert.Equal(t, "pen,notebook", stored)

	assert.JSONEq(t, `{"order":{"status":"DELIVERED"}}`,
		exec(`mutation { order: updateOrderStatus(id: 1, status: DELIVERED) { status } }`))
	assert.JSONEq(t, `{"order":null}`, exec(`{ order(id: 999) { id } }`))
	assert.JSONEq(t, `{"company":{"name":"Acme","branches":[{"title":"Head Office"},{"title":"West"}]}}`,
		exec(`{ company(id: 1) { name branches { title } } }`))
}

func resetMigrations(dsn, dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func applySeeds(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	for _, file := range files {
		body, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return err
		}
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "../assets/local.yaml"
}
