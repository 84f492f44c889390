package graphql

import (
	"context"

	"github.com/ogurasousui/codex-graphql-crud/internal/core/company"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/order"
)

type branchesInput struct {
	Title   string
	City    *string
	Country *string
}

type createCompanyArgs struct {
	Name        string
	Branches    *[]*branchesInput
	Description *string
}

type createOrderArgs struct {
	DeliveryAddress string
	Items           []*string
	Total           float64
	DiscountCode    *string
	Comment         *string
	Status          string
}

type updateOrderStatusArgs struct {
	ID     int32
	Status string
}

// CreateCompany は会社を作成します。branches は受け付けますが保存しません。
func (r *Resolver) CreateCompany(ctx context.Context, args createCompanyArgs) (*companyResolver, error) {
	var drafts []company.BranchDraft
	if args.Branches != nil {
		for _, b := range *args.Branches {
			if b == nil {
				continue
			}
			drafts = append(drafts, company.BranchDraft{Title: b.Title, City: b.City, Country: b.Country})
		}
	}

	created, err := r.deps.Companies.CreateCompany(ctx, company.CreateCompanyInput{
		Name:        args.Name,
		Description: args.Description,
		Branches:    drafts,
	})
	if err != nil {
		return nil, r.fail("createCompany", err)
	}
	return &companyResolver{root: r, company: created}, nil
}

// CreateOrder は注文を作成します。null の要素は空文字列として扱います。
func (r *Resolver) CreateOrder(ctx context.Context, args createOrderArgs) (*orderResolver, error) {
	status, err := order.ParseStatus(args.Status)
	if err != nil {
		return nil, r.fail("createOrder", err)
	}

	items := make([]string, len(args.Items))
	for i, item := range args.Items {
		if item != nil {
			items[i] = *item
		}
	}

	created, err := r.deps.Orders.CreateOrder(ctx, order.CreateOrderInput{
		DeliveryAddress: args.DeliveryAddress,
		Items:           items,
		Total:           args.Total,
		DiscountCode:    args.DiscountCode,
		Comment:         args.Comment,
		Status:          status,
	})
	if err != nil {
		return nil, r.fail("createOrder", err)
	}
	return &orderResolver{order: created}, nil
}

// UpdateOrderStatus は注文のステータスを無条件に置き換えます。注文が存在しない場合はエラーを返します。
func (r *Resolver) UpdateOrderStatus(ctx context.Context, args updateOrderStatusArgs) (*orderResolver, error) {
	status, err := order.ParseStatus(args.Status)
	if err != nil {
		return nil, r.fail("updateOrderStatus", err)
	}

	updated, err := r.deps.Orders.UpdateOrderStatus(ctx, order.UpdateOrderStatusInput{
		ID:     int64(args.ID),
		Status: status,
	})
	if err != nil {
		return nil, r.fail("updateOrderStatus", err)
	}
	return &orderResolver{order: updated}, nil
}
