package middleware

// contextKey defines a type for context keys to avoid collisions.
type contextKey string

// Defines context keys used within the application middleware and handlers.
const (
	// UserIDKey is the context key for the authenticated user's ID (string).
	// The user ID doubles as the tenant ID: every vehicle and timeline item
	// is scoped to the user that owns it.
	UserIDKey contextKey = "userID"
)
