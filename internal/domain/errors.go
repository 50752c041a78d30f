package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrCacheMiss      = errors.New("cache miss")
	ErrInvalidAddress = errors.New("invalid contract address")
	ErrBadUpstream    = errors.New("malformed upstream response")
)
