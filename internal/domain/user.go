package domain

// User carries only the irreversible password hash; the raw password never
// leaves the registration/update path.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// Principal is an externally verified caller identity. Owner-scoped operations
// take it as an explicit parameter, never from ambient state.
type Principal struct {
	UserID string
	Email  string
}
