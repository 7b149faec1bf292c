package leave

import (
	"fmt"

	"github.com/worksync/worksync/internal"
)

// CreateLeaveDTO is the request form's transient draft. Dates arrive as the
// form typed them; Validate parses before anything touches the network.
type CreateLeaveDTO struct {
	Type      string `json:"type,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// Validate applies the client-side rules: start, end and reason must be
// present and the window must not be inverted. A validation failure means no
// network call is made.
func (dto CreateLeaveDTO) Validate() error {
	if dto.StartDate == "" {
		return internal.NewValidationError("start date is required", internal.ErrCodeMissingDate)
	}
	if dto.EndDate == "" {
		return internal.NewValidationError("end date is required", internal.ErrCodeMissingDate)
	}
	if dto.Reason == "" {
		return internal.NewValidationError("reason is required", internal.ErrCodeValidationFailed)
	}

	start, err := ParseDate(dto.StartDate)
	if err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeMissingDate)
	}
	end, err := ParseDate(dto.EndDate)
	if err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeMissingDate)
	}
	if start.After(end.Time) {
		return internal.NewValidationError("start date must be on or before end date", internal.ErrCodeInvalidDateRange)
	}
	return nil
}

// TaggedReason is the reason as submitted: prefixed with the leave type in
// brackets when one was chosen, so backends without a type column still keep
// the information.
func (dto CreateLeaveDTO) TaggedReason() string {
	if dto.Type == "" {
		return dto.Reason
	}
	return fmt.Sprintf("[%s] %s", dto.Type, dto.Reason)
}

// UpdateStatusDTO is the approve/reject transition request.
type UpdateStatusDTO struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (dto UpdateStatusDTO) Validate() error {
	if dto.Status != StatusApproved && dto.Status != StatusRejected {
		return internal.NewValidationError("status must be either 'approved' or 'rejected'", internal.ErrCodeInvalidStatus)
	}
	if dto.Status == StatusRejected && dto.Reason == "" {
		return internal.NewValidationError("reason is required when rejecting a leave request", internal.ErrCodeMissingReason)
	}
	return nil
}
