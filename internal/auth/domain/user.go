package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RevocationEntry marks a token id as invalidated until its natural expiry.
// Absence of an entry means the jti is still honored; the sweeper purges
// entries once ExpiresAt has passed.
type RevocationEntry struct {
	JTI       string
	UserID    string
	ExpiresAt time.Time
	RevokedAt time.Time
}

// ExternalProfile is the identity backend's view of a user.
type ExternalProfile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// ExternalSession is an authenticated session issued by the external
// identity backend. Its tokens are handed back to callers verbatim.
type ExternalSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         ExternalProfile
}
