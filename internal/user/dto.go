package user

import (
	"strings"

	"github.com/worksync/worksync/internal"
)

// CreateUserDTO is the admin account-provisioning request.
type CreateUserDTO struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.Email == "" || !strings.Contains(dto.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if dto.Role != RoleAdmin && dto.Role != RoleUser {
		return internal.NewValidationError("role must be either 'admin' or 'user'", internal.ErrCodeValidationFailed)
	}
	return nil
}
