package scenario

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid scenario configuration")
	ErrIndexMismatch = errors.New("engine agent index does not match goal index")
)
