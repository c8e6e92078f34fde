package constant

import "time"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	// Token lifetimes in minutes: 1 hour access, 30 day refresh.
	DefaultAccessExpiryMinutes  = 60
	DefaultRefreshExpiryMinutes = 43200

	DefaultConnectMaxAttempts = 3
	DefaultConnectRetryDelay  = 2 * time.Second

	// Upper bound on any single request's blocking work, independent of
	// the backend client's own retry budget.
	RequestTimeout = 5 * time.Second

	SweepInterval = time.Hour
)
