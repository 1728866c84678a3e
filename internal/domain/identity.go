package domain

// Identity is the authenticated caller derived from a validated token. It is
// never persisted and lives only for the duration of one request.
type Identity struct {
	Username string
	UserID   string
}
