package constants

// Redis Cache Configuration
// Pattern: guideomra:{module}:{operation}:{identifier}
// TTLs come from config.RedisConfig.

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "guideomra"
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_SERVICES_ALL   = CACHE_PREFIX + ":catalog:services:all"
	CACHE_KEY_GUIDE_SERVICES = CACHE_PREFIX + ":catalog:services:guide:" // + guide-id
	CACHE_KEY_GUIDES_ALL     = CACHE_PREFIX + ":catalog:guides:all"
	CACHE_KEY_GUIDE_PROFILE  = CACHE_PREFIX + ":catalog:guides:profile:" // + guide-id
)

// ================== RESERVATIONS MODULE ==================

const (
	// Set once per draft; holds the reservation id while the draft is being
	// persisted and after it succeeded
	KEY_SUBMISSION_GUARD = CACHE_PREFIX + ":reservations:submitted:draft:" // + draft-id
)

// ================== RATE LIMIT ==================

const (
	KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + ip:type
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_CATALOG = CACHE_PREFIX + ":catalog:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildGuideServicesKey(guideID string) string {
	return CACHE_KEY_GUIDE_SERVICES + guideID
}

func BuildGuideProfileKey(guideID string) string {
	return CACHE_KEY_GUIDE_PROFILE + guideID
}

func BuildSubmissionGuardKey(draftID string) string {
	return KEY_SUBMISSION_GUARD + draftID
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return KEY_RATE_LIMIT + clientIP + ":" + limitType
}
