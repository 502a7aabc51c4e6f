package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Pattern: drivehub:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_MEDIUM      = 12 * time.Hour   // filter options
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // car details
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // search results
	TTL_DYNAMIC_SHORT      = 5 * time.Minute  // availability listings
	TTL_DYNAMIC_QUICK      = 2 * time.Minute  // statistics
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "drivehub"
)

// ================== CARS MODULE ==================

const (
	CACHE_KEY_CARS_ALL_PATTERN = CACHE_PREFIX + ":cars:*"

	CACHE_KEY_CARS_AVAILABLE      = CACHE_PREFIX + ":cars:available"
	CACHE_KEY_CAR_DETAIL          = CACHE_PREFIX + ":cars:detail:id:" // + car-id
	CACHE_KEY_CARS_FILTER_OPTIONS = CACHE_PREFIX + ":cars:filter_options"
	CACHE_KEY_CARS_STATISTICS     = CACHE_PREFIX + ":cars:statistics"
)

const (
	TTL_CARS_AVAILABLE      = TTL_DYNAMIC_SHORT
	TTL_CAR_DETAIL          = TTL_SEMI_STATIC_MEDIUM
	TTL_CARS_FILTER_OPTIONS = TTL_STATIC_MEDIUM
	TTL_CARS_STATISTICS     = TTL_DYNAMIC_QUICK
)

// ================== ORDERS MODULE ==================

const (
	CACHE_KEY_ORDER_STATISTICS = CACHE_PREFIX + ":orders:statistics"
)

const (
	TTL_ORDER_STATISTICS = TTL_DYNAMIC_QUICK
)

// ================== RATE LIMITING ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit"
)

// ================== KEY BUILDERS ==================

func BuildCarDetailKey(carID uint) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_CAR_DETAIL, carID)
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s:%s:%s", RATE_LIMIT_PREFIX, clientIP, limitType)
}
