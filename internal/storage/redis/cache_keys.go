package redis

import (
	"fmt"
	"time"
)

const RateLimitWindowTTL = 1 * time.Minute

// RateLimitKey is kept outside the storage namespace so Clear leaves it alone
func RateLimitKey(client string) string {
	return fmt.Sprintf("ratelimit:client:%s", client)
}
