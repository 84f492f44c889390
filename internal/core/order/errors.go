package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order: not found")
	ErrInvalidID     = errors.New("order: invalid id")
	ErrInvalidStatus = errors.New("order: invalid status")
	ErrItemsDecode   = errors.New("order: stored items cannot be decoded")
)
