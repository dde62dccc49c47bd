package constants

// Session and context keys
const (
	SessionCookieName      = "swarm_session"
	ContextKeyUserID       = "user_id"
	SessionKeyGuestProject = "guest_project_id"
	SessionKeyGuestName    = "guest_name"
	ContextKeyIdentity     = "identity"
	ContextKeyProject      = "project"
)

// Auth constraints
const (
	MinPasswordLength = 6
	MinGuestNameLen   = 2
	MaxGuestNameLen   = 50
	MinAccessCodeLen  = 4
	MaxAccessCodeLen  = 10
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Activity log
const DefaultActivityLimit = 20
