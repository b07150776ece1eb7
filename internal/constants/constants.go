package constants

import "time"

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyTask     = "task"
	ContextKeyCategory = "category"
)

// Authentication
const (
	MinPasswordLength = 6
	TokenLifetime     = time.Hour
)
