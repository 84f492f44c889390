package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/order"
	pgdb "github.com/ogurasousui/codex-graphql-crud/internal/platform/db/postgres"
)

const (
	orderColumns       = `id, delivery_address, items, total, discount_code, comment, status, created_at, updated_at`
	checkViolationCode = "23514"
)

// OrderStore は注文を保存形式 (items は 1 つの文字列) のまま読み書きする PostgreSQL 実装です。
// API 形式への変換は order.TranscodingRepository が担います。
type OrderStore struct {
	pool pgdb.Queryer
}

var _ order.Store = (*OrderStore)(nil)

// NewOrderStore は OrderStore を生成します。
func NewOrderStore(pool pgdb.Queryer) *OrderStore {
	return &OrderStore{pool: pool}
}

// Create は注文を新規作成します。
func (s *OrderStore) Create(ctx context.Context, o *order.StoredOrder) (*order.StoredOrder, error) {
	exec := pgdb.QueryerFromContext(ctx, s.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO orders (delivery_address, items, total, discount_code, comment, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING `+orderColumns+`
    `,
		o.DeliveryAddress,
		o.Items,
		o.Total,
		nullableString(o.DiscountCode),
		nullableString(o.Comment),
		string(o.Status),
		o.CreatedAt,
		o.UpdatedAt,
	)

	created, err := scanStoredOrder(row)
	if err != nil {
		return nil, translateOrderPgError(err)
	}
	return created, nil
}

// FindByID は ID で注文を取得します。
func (s *OrderStore) FindByID(ctx context.Context, id int64) (*order.StoredOrder, error) {
	exec := pgdb.QueryerFromContext(ctx, s.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+orderColumns+`
          FROM orders
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanStoredOrder(row)
	if err != nil {
		return nil, translateOrderPgError(err)
	}
	return found, nil
}

// List は全注文を ID 順で取得します。
func (s *OrderStore) List(ctx context.Context) ([]*order.StoredOrder, error) {
	exec := pgdb.QueryerFromContext(ctx, s.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+orderColumns+`
          FROM orders
         ORDER BY id
    `)
	if err != nil {
		return nil, translateOrderPgError(err)
	}
	defer rows.Close()

	orders := make([]*order.StoredOrder, 0)
	for rows.Next() {
		o, err := scanStoredOrder(rows)
		if err != nil {
			return nil, translateOrderPgError(err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, translateOrderPgError(err)
	}
	return orders, nil
}

// UpdateStatus はステータスを無条件に上書きします。
func (s *OrderStore) UpdateStatus(ctx context.Context, id int64, status order.Status) (*order.StoredOrder, error) {
	exec := pgdb.QueryerFromContext(ctx, s.pool)
	row := exec.QueryRow(ctx, `
        UPDATE orders
           SET status = $1,
               updated_at = now()
         WHERE id = $2
        RETURNING `+orderColumns+`
    `, string(status), id)

	updated, err := scanStoredOrder(row)
	if err != nil {
		return nil, translateOrderPgError(err)
	}
	return updated, nil
}

func scanStoredOrder(row pgx.Row) (*order.StoredOrder, error) {
	var (
		id                    int64
		deliveryAddress       string
		items                 string
		total                 float64
		discountCode, comment sql.NullString
		status                string
		createdAt, updatedAt  time.Time
	)

	if err := row.Scan(&id, &deliveryAddress, &items, &total, &discountCode, &comment, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}

	return &order.StoredOrder{
		ID:              id,
		DeliveryAddress: deliveryAddress,
		Items:           items,
		Total:           total,
		DiscountCode:    stringPtr(discountCode),
		Comment:         stringPtr(comment),
		Status:          order.Status(status),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func translateOrderPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == checkViolationCode && pgErr.ConstraintName == "orders_status_check" {
			return order.ErrInvalidStatus
		}
	}
	return err
}
