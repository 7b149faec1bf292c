package leave

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/worksync/worksync/internal"
	"github.com/worksync/worksync/internal/session"
)

// API is the slice of the remote client this service needs.
type API interface {
	FetchAllLeaves(ctx context.Context) ([]LeaveRequest, error)
	FetchMyLeaves(ctx context.Context) ([]LeaveRequest, error)
	CreateLeave(ctx context.Context, dto CreateLeaveDTO) (*LeaveRequest, error)
	UpdateLeaveStatus(ctx context.Context, id string, dto UpdateStatusDTO) (*LeaveRequest, error)
}

// Service is the leave view-model: it picks the listing endpoint for the
// caller's role, keeps the last successfully loaded sequence, and runs the
// create and status transitions followed by their reload. Refresh is
// pull-based only; every mutation completes before its reload is issued.
type Service struct {
	api            API
	sessions       session.Store
	onUnauthorized func()
	logger         *slog.Logger

	mu     sync.Mutex
	leaves []LeaveRequest
}

// NewService wires the view-model. onUnauthorized fires after a 401 has
// cleared the session store, exactly once per failed call; the CLI uses it
// to point the user at the login command.
func NewService(api API, sessions session.Store, onUnauthorized func(), logger *slog.Logger) *Service {
	if onUnauthorized == nil {
		onUnauthorized = func() {}
	}
	return &Service{
		api:            api,
		sessions:       sessions,
		onUnauthorized: onUnauthorized,
		logger:         logger,
		leaves:         []LeaveRequest{},
	}
}

// Load fetches the listing for the given role: administrators see the full
// collection, everyone else their own requests. On success the result
// replaces the cached sequence; on failure the cache is left at its last
// successfully loaded value.
func (s *Service) Load(ctx context.Context, admin bool) ([]LeaveRequest, error) {
	var (
		leaves []LeaveRequest
		err    error
	)
	if admin {
		leaves, err = s.api.FetchAllLeaves(ctx)
	} else {
		leaves, err = s.api.FetchMyLeaves(ctx)
	}
	if err != nil {
		return nil, s.handleError("load leaves", err)
	}
	if leaves == nil {
		leaves = []LeaveRequest{}
	}

	s.mu.Lock()
	s.leaves = slices.Clone(leaves)
	s.mu.Unlock()

	return leaves, nil
}

// Current returns a copy of the last successfully loaded sequence, empty if
// none yet. Callers may reorder or filter it freely.
func (s *Service) Current() []LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.leaves)
}

// Create validates the draft and submits it. An invalid draft is rejected
// with zero network calls. After the creation response is observed the
// listing is reloaded for the caller's role.
func (s *Service) Create(ctx context.Context, dto CreateLeaveDTO, admin bool) (*LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	created, err := s.api.CreateLeave(ctx, dto)
	if err != nil {
		return nil, s.handleError("create leave", err)
	}

	if _, err := s.Load(ctx, admin); err != nil {
		s.logger.Warn("leave created but reload failed", "error", err)
		return created, err
	}
	return created, nil
}

// SetStatus runs an approve or reject transition and then reloads. A
// rejection without a reason never reaches the network. The displayed list
// only ever reflects server-confirmed state: there is no local mutation of
// the cached records.
func (s *Service) SetStatus(ctx context.Context, id, status, reason string, admin bool) error {
	dto := UpdateStatusDTO{Status: status, Reason: reason}
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.api.UpdateLeaveStatus(ctx, id, dto); err != nil {
		return s.handleError("update leave status", err)
	}

	if _, err := s.Load(ctx, admin); err != nil {
		s.logger.Warn("status updated but reload failed", "leave_id", id, "error", err)
		return err
	}
	return nil
}

// handleError implements the failure policy: a 401 invalidates the session
// and notifies the caller to re-authenticate, anything else passes through
// with session state untouched.
func (s *Service) handleError(op string, err error) error {
	if errors.Is(err, internal.ErrSessionExpired) {
		s.logger.Info("session rejected by API, clearing stored credentials", "op", op)
		if clearErr := s.sessions.Clear(); clearErr != nil {
			s.logger.Error("failed to clear session store", "error", clearErr)
		}
		s.onUnauthorized()
		return internal.ErrSessionExpired
	}
	s.logger.Error("leave operation failed", "op", op, "error", err)
	return err
}
