package order

import "time"

// Status は注文の状態を表します。遷移の順序は強制しません。
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusPaid       Status = "PAID"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInDelivery Status = "IN_DELIVERY"
	StatusDelivered  Status = "DELIVERED"
)

// Statuses は定義順の全ステータスです。
var Statuses = []Status{StatusPending, StatusPaid, StatusInProgress, StatusInDelivery, StatusDelivered}

// ParseStatus は文字列をステータスに変換します。
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Valid は定義済みのステータスかどうかを返します。
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusInProgress, StatusInDelivery, StatusDelivered:
		return true
	default:
		return false
	}
}

// Order は API に公開される形の注文エンティティです。Items は明細のリストです。
type Order struct {
	ID              int64
	DeliveryAddress string
	Items           []string
	Total           float64
	DiscountCode    *string
	Comment         *string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StoredOrder は永続化される形の注文です。Items は ItemCodec で符号化された 1 つの文字列です。
type StoredOrder struct {
	ID              int64
	DeliveryAddress string
	Items           string
	Total           float64
	DiscountCode    *string
	Comment         *string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
