package order

import "context"

// Store は保存形式 (StoredOrder) のまま注文を永続化するインターフェースです。
type Store interface {
	Create(ctx context.Context, order *StoredOrder) (*StoredOrder, error)
	FindByID(ctx context.Context, id int64) (*StoredOrder, error)
	List(ctx context.Context) ([]*StoredOrder, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*StoredOrder, error)
}

// Repository は API 形式 (Order) で注文を扱う永続化インターフェースです。
type Repository interface {
	Create(ctx context.Context, order *Order) (*Order, error)
	FindByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error)
}
