package domain

// Role represents an already-verified caller role supplied by the gateway
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserProfile is the public subset of a user record
// Users are managed by an external service; only these fields are resolved
// into booking and activity views
type UserProfile struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Role      Role
}
