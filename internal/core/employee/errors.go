package employee

import "errors"

var (
	ErrInvalidBranchID = errors.New("employee: invalid branch id")
)
