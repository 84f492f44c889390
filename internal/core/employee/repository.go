package employee

import "context"

// Repository は社員永続化の抽象です。
type Repository interface {
	List(ctx context.Context) ([]*Employee, error)
	ListByBranch(ctx context.Context, branchID int64) ([]*Employee, error)
}
