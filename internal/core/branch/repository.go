package branch

import "context"

// Repository は支社永続化の抽象です。
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Branch, error)
	List(ctx context.Context) ([]*Branch, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*Branch, error)
}
