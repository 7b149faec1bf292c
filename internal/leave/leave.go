package leave

import (
	"fmt"
	"strings"
	"time"
)

// LeaveRequest is the client-side snapshot of a leave record. The API owns
// every field; the client refetches after any mutation instead of editing a
// snapshot in place.
type LeaveRequest struct {
	ID              string `json:"id"`
	EmployeeName    string `json:"employeeName,omitempty"`
	EmployeeEmail   string `json:"employeeEmail,omitempty"`
	Type            string `json:"type"`
	StartDate       Date   `json:"startDate"`
	EndDate         Date   `json:"endDate"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Leave types offered by the request form.
const (
	TypeAnnual = "annual"
	TypeSick   = "sick"
	TypeCasual = "casual"
)

func (l *LeaveRequest) CanBeApproved() bool {
	return l.Status == StatusPending
}

func (l *LeaveRequest) CanBeRejected() bool {
	return l.Status == StatusPending
}

// DisplayName is what the admin listing shows in the employee column.
func (l *LeaveRequest) DisplayName() string {
	if l.EmployeeName != "" {
		return l.EmployeeName
	}
	if l.EmployeeEmail != "" {
		return l.EmployeeEmail
	}
	return "Unknown"
}

// DateRange renders the leave window for display.
func (l *LeaveRequest) DateRange() string {
	return fmt.Sprintf("%s → %s", l.StartDate.Format("02 Jan 2006"), l.EndDate.Format("02 Jan 2006"))
}

// StatusStyle maps a status onto one of exactly three presentation buckets.
// Anything that is not approved or rejected renders pending-style, so an
// unknown status from a newer API version degrades gracefully.
func StatusStyle(status string) string {
	switch status {
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

// Date is a calendar day. The API is inconsistent about date encoding
// (plain days from the form, full timestamps from some variants), so both
// are accepted on decode; encoding always emits the plain day.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}
