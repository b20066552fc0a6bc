package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the caller identity resolved from a verified token.
// A nil *Session means the caller is anonymous.
type Session struct {
	UserID    string
	Email     string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

func (s *Session) HasRole(role Role) bool {
	return s != nil && s.Role == role
}
