package payments

import "errors"

var (
	ErrAdminRequired = errors.New("Admin access required")
)
