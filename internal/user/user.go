package user

import "time"

// User is an account as the admin provisioning endpoints return it.
type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
