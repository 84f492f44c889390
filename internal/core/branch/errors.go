package branch

import "errors"

var (
	ErrBranchNotFound   = errors.New("branch: not found")
	ErrInvalidID        = errors.New("branch: invalid id")
	ErrInvalidCompanyID = errors.New("branch: invalid company id")
)
