package company

import "time"

// Company は会社エンティティです。
type Company struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BranchDraft は会社作成時に併せて渡される支社の入力です。
type BranchDraft struct {
	Title   string
	City    *string
	Country *string
}
