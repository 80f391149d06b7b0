package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies.
	MaxRequestBody = 1 << 20
	// RequestTimeout bounds the store work done per request.
	RequestTimeout = 5 * time.Second
	// DefaultPageSize applies when limit is missing or invalid.
	DefaultPageSize = 20
)
