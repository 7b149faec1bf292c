package user

import (
	"context"
	"log/slog"
)

// API is the slice of the remote client account provisioning needs. Both
// endpoints are admin-only on the server; the client does not pre-filter by
// the advisory role hint.
type API interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error)
}

type Service struct {
	api    API
	logger *slog.Logger
}

func NewService(api API, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		s.logger.Error("list users failed", "error", err)
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	created, err := s.api.CreateUser(ctx, dto)
	if err != nil {
		s.logger.Error("create user failed", "email", dto.Email, "error", err)
		return nil, err
	}
	s.logger.Info("user created", "email", created.Email, "role", created.Role)
	return created, nil
}
