package order

import (
	"context"
	"fmt"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は注文ユースケースの公開インターフェースです。
type UseCase interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, in GetOrderInput) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, in UpdateOrderStatusInput) (*Order, error)
}

// Service は注文に関するユースケースをまとめます。各操作は Repository を 1 回だけ呼び出します。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateOrderInput は注文作成時の入力です。
type CreateOrderInput struct {
	DeliveryAddress string
	Items           []string
	Total           float64
	DiscountCode    *string
	Comment         *string
	Status          Status
}

// GetOrderInput は注文取得時の入力です。
type GetOrderInput struct {
	ID int64
}

// UpdateOrderStatusInput はステータス更新時の入力です。
type UpdateOrderStatusInput struct {
	ID     int64
	Status Status
}

// CreateOrder は新しい注文を作成します。配送先は受け取った値のまま保存します。
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	items := make([]string, len(in.Items))
	copy(items, in.Items)

	now := s.clock.Now()
	o := &Order{
		DeliveryAddress: in.DeliveryAddress,
		Items:           items,
		Total:           in.Total,
		DiscountCode:    in.DiscountCode,
		Comment:         in.Comment,
		Status:          in.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var created *Order
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, o)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetOrder は ID で注文を取得します。
func (s *Service) GetOrder(ctx context.Context, in GetOrderInput) (*Order, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Order
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// ListOrders は全注文を取得します。
func (s *Service) ListOrders(ctx context.Context) ([]*Order, error) {
	var orders []*Order
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		orders = result
		return nil
	}); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateOrderStatus は現在のステータスに関係なく、指定されたステータスをそのまま保存します。
func (s *Service) UpdateOrderStatus(ctx context.Context, in UpdateOrderStatusInput) (*Order, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	var updated *Order
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.UpdateStatus(txCtx, in.ID, in.Status)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}
