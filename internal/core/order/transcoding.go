package order

import (
	"context"
	"fmt"
)

// TranscodingRepository は Store をラップし、Items を保存形式と API 形式の間で変換します。
// 読み出し時は取得直後に 1 度だけ分割し、書き込み時は永続化の直前に連結します。Items 以外のフィールドには触れません。
type TranscodingRepository struct {
	store Store
	codec ItemCodec
}

var _ Repository = (*TranscodingRepository)(nil)

// NewTranscodingRepository は TranscodingRepository を生成します。codec が nil の場合は CommaCodec を使用します。
func NewTranscodingRepository(store Store, codec ItemCodec) *TranscodingRepository {
	if codec == nil {
		codec = CommaCodec{}
	}
	return &TranscodingRepository{store: store, codec: codec}
}

// Create は Items を連結してから注文を保存し、保存結果を API 形式で返します。
func (r *TranscodingRepository) Create(ctx context.Context, o *Order) (*Order, error) {
	stored, err := r.encode(o)
	if err != nil {
		return nil, err
	}

	created, err := r.store.Create(ctx, stored)
	if err != nil {
		return nil, err
	}

	return r.decode(created, "create")
}

// FindByID は保存された注文を取得し、Items を分割して返します。
func (r *TranscodingRepository) FindByID(ctx context.Context, id int64) (*Order, error) {
	found, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.decode(found, "find")
}

// List は全注文を取得し、順序と件数を保ったまま各 Items を分割します。
func (r *TranscodingRepository) List(ctx context.Context) ([]*Order, error) {
	stored, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]*Order, 0, len(stored))
	for _, s := range stored {
		o, err := r.decode(s, "list")
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// UpdateStatus はステータスを更新し、更新後の注文を API 形式で返します。
func (r *TranscodingRepository) UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	updated, err := r.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	return r.decode(updated, "update")
}

func (r *TranscodingRepository) encode(o *Order) (*StoredOrder, error) {
	items, err := r.codec.Join(o.Items)
	if err != nil {
		return nil, err
	}

	return &StoredOrder{
		ID:              o.ID,
		DeliveryAddress: o.DeliveryAddress,
		Items:           items,
		Total:           o.Total,
		DiscountCode:    o.DiscountCode,
		Comment:         o.Comment,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}, nil
}

func (r *TranscodingRepository) decode(s *StoredOrder, op string) (*Order, error) {
	if s == nil {
		return nil, nil
	}

	items, err := r.codec.Split(s.Items)
	if err != nil {
		return nil, fmt.Errorf("order: %s id=%d: %w", op, s.ID, err)
	}

	return &Order{
		ID:              s.ID,
		DeliveryAddress: s.DeliveryAddress,
		Items:           items,
		Total:           s.Total,
		DiscountCode:    s.DiscountCode,
		Comment:         s.Comment,
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}, nil
}
