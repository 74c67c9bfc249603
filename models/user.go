package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity record returned by the Bliss API and cached in
// the visitor's session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
