package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies.
	MaxRequestBody = 64 << 10
	// StoreTimeout bounds each document store call made for a request.
	StoreTimeout = 5 * time.Second
)
