package graphql

import (
	"context"
	"fmt"
	"math"

	"github.com/ogurasousui/codex-graphql-crud/internal/core/book"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/branch"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/company"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/employee"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/order"
)

type bookResolver struct {
	book book.Book
}

func (b *bookResolver) Title() *string  { return &b.book.Title }
func (b *bookResolver) Author() *string { return &b.book.Author }

type companyResolver struct {
	root    *Resolver
	company *company.Company
}

func (c *companyResolver) ID() (int32, error)   { return toGraphQLInt(c.company.ID) }
func (c *companyResolver) Name() string         { return c.company.Name }
func (c *companyResolver) Description() *string { return c.company.Description }

// Branches は会社に属する支社を 1 回の呼び出しで取得します。
func (c *companyResolver) Branches(ctx context.Context) (*[]*branchResolver, error) {
	branches, err := c.root.deps.Branches.ListBranchesByCompany(ctx, c.company.ID)
	if err != nil {
		return nil, c.root.fail("Company.branches", err)
	}
	return c.root.branchList(branches), nil
}

type branchResolver struct {
	root   *Resolver
	branch *branch.Branch
}

func (b *branchResolver) ID() (int32, error) { return toGraphQLInt(b.branch.ID) }
func (b *branchResolver) Title() string      { return b.branch.Title }
func (b *branchResolver) City() *string      { return b.branch.City }
func (b *branchResolver) Country() *string   { return b.branch.Country }

// Company は支社が属する会社を返します。
func (b *branchResolver) Company(ctx context.Context) (*companyResolver, error) {
	found, err := b.root.deps.Companies.GetCompany(ctx, company.GetCompanyInput{ID: b.branch.CompanyID})
	if err != nil {
		return nil, b.root.fail("Branch.company", err)
	}
	return &companyResolver{root: b.root, company: found}, nil
}

// Employees は支社に所属する社員を返します。
func (b *branchResolver) Employees(ctx context.Context) (*[]*employeeResolver, error) {
	employees, err := b.root.deps.Employees.ListEmployeesByBranch(ctx, b.branch.ID)
	if err != nil {
		return nil, b.root.fail("Branch.employees", err)
	}
	return b.root.employeeList(employees), nil
}

type employeeResolver struct {
	root     *Resolver
	employee *employee.Employee
}

func (e *employeeResolver) ID() (int32, error) { return toGraphQLInt(e.employee.ID) }
func (e *employeeResolver) FirstName() string  { return e.employee.FirstName }
func (e *employeeResolver) LastName() string   { return e.employee.LastName }
func (e *employeeResolver) Role() *string      { return e.employee.Role }

func (e *employeeResolver) Branch(ctx context.Context) (*branchResolver, error) {
	found, err := e.root.deps.Branches.GetBranch(ctx, e.employee.BranchID)
	if err != nil {
		return nil, e.root.fail("Employee.branch", err)
	}
	return &branchResolver{root: e.root, branch: found}, nil
}

func (e *employeeResolver) Company(ctx context.Context) (*companyResolver, error) {
	found, err := e.root.deps.Companies.GetCompany(ctx, company.GetCompanyInput{ID: e.employee.CompanyID})
	if err != nil {
		return nil, e.root.fail("Employee.company", err)
	}
	return &companyResolver{root: e.root, company: found}, nil
}

type orderResolver struct {
	order *order.Order
}

func (o *orderResolver) ID() (int32, error)      { return toGraphQLInt(o.order.ID) }
func (o *orderResolver) DeliveryAddress() string { return o.order.DeliveryAddress }
func (o *orderResolver) Total() float64          { return o.order.Total }
func (o *orderResolver) DiscountCode() *string   { return o.order.DiscountCode }
func (o *orderResolver) Comment() *string        { return o.order.Comment }
func (o *orderResolver) Status() string          { return string(o.order.Status) }

func (o *orderResolver) Items() []*string {
	out := make([]*string, len(o.order.Items))
	for i := range o.order.Items {
		out[i] = &o.order.Items[i]
	}
	return out
}

func (r *Resolver) companyList(companies []*company.Company) *[]*companyResolver {
	out := make([]*companyResolver, 0, len(companies))
	for _, c := range companies {
		out = append(out, &companyResolver{root: r, company: c})
	}
	return &out
}

func (r *Resolver) branchList(branches []*branch.Branch) *[]*branchResolver {
	out := make([]*branchResolver, 0, len(branches))
	for _, b := range branches {
		out = append(out, &branchResolver{root: r, branch: b})
	}
	return &out
}

func (r *Resolver) employeeList(employees []*employee.Employee) *[]*employeeResolver {
	out := make([]*employeeResolver, 0, len(employees))
	for _, e := range employees {
		out = append(out, &employeeResolver{root: r, employee: e})
	}
	return &out
}

// toGraphQLInt は ID を GraphQL の Int (32 ビット符号付き整数) に変換します。範囲外の値は切り詰めずにエラーとします。
func toGraphQLInt(id int64) (int32, error) {
	if id < math.MinInt32 || id > math.MaxInt32 {
		return 0, fmt.Errorf("id %d exceeds GraphQL Int range", id)
	}
	return int32(id), nil
}
