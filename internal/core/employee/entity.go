package employee

import "time"

// Employee は支社に所属する社員エンティティです。
type Employee struct {
	ID        int64
	BranchID  int64
	CompanyID int64
	FirstName string
	LastName  string
	Role      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
