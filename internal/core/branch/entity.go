package branch

import "time"

// Branch は会社に属する支社エンティティです。
type Branch struct {
	ID        int64
	CompanyID int64
	Title     string
	City      *string
	Country   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
