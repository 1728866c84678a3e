package domain

// User is the stored credential record. Username is the primary key; ID is an
// opaque identifier generated once at creation and never reused.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}
