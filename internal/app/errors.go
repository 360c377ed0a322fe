package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrStart      = errors.New("service start failed")
	ErrEmptyQuery = errors.New("query must contain at least one term")
)
