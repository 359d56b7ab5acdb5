package diff

import "errors"

var (
	ErrInvalidDifference = errors.New("invalid difference")
)
