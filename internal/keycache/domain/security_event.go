package domain

import "github.com/google/uuid"

// Security log bounds: once the log grows past MaxSecurityEvents the oldest
// SecurityEventDrain entries are dropped.
const (
	MaxSecurityEvents  = 1000
	SecurityEventDrain = 100
)

// SecurityEventType classifies a security event.
type SecurityEventType string

// Security event types.
const (
	EventKeyDerivation     SecurityEventType = "key_derivation"
	EventCacheAccess       SecurityEventType = "cache_access"
	EventFallbackUsed      SecurityEventType = "fallback_used"
	EventRateLimitExceeded SecurityEventType = "rate_limit_exceeded"
	EventInvalidAccess     SecurityEventType = "invalid_access"
)

// SecurityEvent is an entry of the security log.
type SecurityEvent struct {
	ID        uuid.UUID
	Timestamp uint64 // Unix nanoseconds
	Type      SecurityEventType
	Principal string
	Details   string
}
