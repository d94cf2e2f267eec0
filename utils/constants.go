// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// Display layouts for timestamps returned to clients.
const (
	SlotLayout      = "2006-01-02T15:04"
	TimestampLayout = "2006-01-02 15:04"
	DateLayout      = "2006-01-02"
)
