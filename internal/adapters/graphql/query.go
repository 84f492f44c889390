package graphql

import (
	"context"
	"errors"

	"github.com/ogurasousui/codex-graphql-crud/internal/core/company"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/order"
)

// Books は静的な書籍一覧を返します。
func (r *Resolver) Books(ctx context.Context) (*[]*bookResolver, error) {
	books, err := r.deps.Books.ListBooks(ctx)
	if err != nil {
		return nil, r.fail("books", err)
	}

	out := make([]*bookResolver, 0, len(books))
	for _, b := range books {
		out = append(out, &bookResolver{book: b})
	}
	return &out, nil
}

// Companies は全会社を返します。
func (r *Resolver) Companies(ctx context.Context) (*[]*companyResolver, error) {
	companies, err := r.deps.Companies.ListCompanies(ctx)
	if err != nil {
		return nil, r.fail("companies", err)
	}
	return r.companyList(companies), nil
}

// Company は ID で会社を返します。存在しない場合は null です。
func (r *Resolver) Company(ctx context.Context, args struct{ ID int32 }) (*companyResolver, error) {
	found, err := r.deps.Companies.GetCompany(ctx, company.GetCompanyInput{ID: int64(args.ID)})
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) || errors.Is(err, company.ErrInvalidID) {
			return nil, nil
		}
		return nil, r.fail("company", err)
	}
	return &companyResolver{root: r, company: found}, nil
}

// Branches は全支社を返します。
func (r *Resolver) Branches(ctx context.Context) (*[]*branchResolver, error) {
	branches, err := r.deps.Branches.ListBranches(ctx)
	if err != nil {
		return nil, r.fail("branches", err)
	}
	return r.branchList(branches), nil
}

// Employees は全社員を返します。
func (r *Resolver) Employees(ctx context.Context) (*[]*employeeResolver, error) {
	employees, err := r.deps.Employees.ListEmployees(ctx)
	if err != nil {
		return nil, r.fail("employees", err)
	}
	return r.employeeList(employees), nil
}

// Orders は全注文を返します。
func (r *Resolver) Orders(ctx context.Context) (*[]*orderResolver, error) {
	orders, err := r.deps.Orders.ListOrders(ctx)
	if err != nil {
		return nil, r.fail("orders", err)
	}

	out := make([]*orderResolver, 0, len(orders))
	for _, o := range orders {
		out = append(out, &orderResolver{order: o})
	}
	return &out, nil
}

// Order は ID で注文を返します。存在しない場合は null です。
func (r *Resolver) Order(ctx context.Context, args struct{ ID int32 }) (*orderResolver, error) {
	found, err := r.deps.Orders.GetOrder(ctx, order.GetOrderInput{ID: int64(args.ID)})
	if err != nil {
		if isMissingOrder(err) {
			return nil, nil
		}
		return nil, r.fail("order", err)
	}
	return &orderResolver{order: found}, nil
}

// isMissingOrder は ID に該当する注文が存在しないことを表すエラーかどうかを返します。
func isMissingOrder(err error) bool {
	return errors.Is(err, order.ErrOrderNotFound) || errors.Is(err, order.ErrInvalidID)
}
