package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/order"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var orderRowColumns = []string{"id", "delivery_address", "items", "total", "discount_code", "comment", "status", "created_at", "updated_at"}

func TestOrderStore_CreateWritesJoinedItems(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	comment := "leave at door"

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs("1 Main St", "pen,notebook", 12.5, nil, comment, "PENDING", now, now).
		WillReturnRows(pgxmock.NewRows(orderRowColumns).
			AddRow(int64(1), "1 Main St", "pen,notebook", 12.5, nil, comment, "PENDING", now, now))

	repo := order.NewTranscodingRepository(NewOrderStore(mock), order.CommaCodec{})
	created, err := repo.Create(context.Background(), &order.Order{
		DeliveryAddress: "1 Main St",
		Items:           []string{"pen", "notebook"},
		Total:           12.5,
		Comment:         &comment,
		Status:          order.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if len(created.Items) != 2 || created.Items[0] != "pen" || created.Items[1] != "notebook" {
		t.Fatalf("expected split items, got %#v", created.Items)
	}

	if created.DiscountCode != nil {
		t.Fatalf("expected nil discount code, got %v", *created.DiscountCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderStore_ListKeepsStorageForm(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders`)).
		WillReturnRows(pgxmock.NewRows(orderRowColumns).
			AddRow(int64(1), "a", "a,b", 1.0, nil, nil, "PAID", now, now).
			AddRow(int64(2), "c", "c", 2.0, "SALE", nil, "PENDING", now, now))

	stored, err := NewOrderStore(mock).List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(stored) != 2 || stored[0].Items != "a,b" || stored[1].Items != "c" {
		t.Fatalf("unexpected stored orders: %+v", stored)
	}

	if stored[1].DiscountCode == nil || *stored[1].DiscountCode != "SALE" {
		t.Fatalf("expected discount code SALE, got %+v", stored[1].DiscountCode)
	}
}

func TestOrderStore_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
		WithArgs(int64(999)).
		WillReturnRows(pgxmock.NewRows(orderRowColumns))

	if _, err := NewOrderStore(mock).FindByID(context.Background(), 999); !errors.Is(err, order.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStore_UpdateStatus(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE orders`)).
		WithArgs("DELIVERED", int64(1)).
		WillReturnRows(pgxmock.NewRows(orderRowColumns).
			AddRow(int64(1), "a", "pen", 3.0, nil, nil, "DELIVERED", now, now))

	updated, err := NewOrderStore(mock).UpdateStatus(context.Background(), 1, order.StatusDelivered)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if updated.Status != order.StatusDelivered {
		t.Fatalf("expected DELIVERED, got %s", updated.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslateOrderPgError(t *testing.T) {
	t.Parallel()

	checkErr := &pgconn.PgError{Code: checkViolationCode, ConstraintName: "orders_status_check"}
	if !errors.Is(translateOrderPgError(checkErr), order.ErrInvalidStatus) {
		t.Fatalf("expected status check violation to map to ErrInvalidStatus")
	}

	other := &pgconn.PgError{Code: "23505"}
	if translateOrderPgError(other) != error(other) {
		t.Fatalf("unexpected translation for unrelated pg error")
	}
}
