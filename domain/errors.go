package domain

import (
	"fmt"
	"time"
)

// NotFoundError is returned when a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidTransitionError is returned when a workflow operation is attempted
// from a state that does not permit it.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot transition from %s to %s", e.Entity, e.From, e.To)
}

// OutOfTermError is returned when attendance is marked outside the configured
// school term.
type OutOfTermError struct {
	Date      time.Time
	TermStart time.Time
	TermEnd   time.Time
}

func (e *OutOfTermError) Error() string {
	return fmt.Sprintf("date %s is outside the school term (%s - %s)",
		e.Date.Format("2006-01-02"), e.TermStart.Format("2006-01-02"), e.TermEnd.Format("2006-01-02"))
}

// ApprovalRequiredError is returned when a campaign references an unapproved
// template past the draft state.
type ApprovalRequiredError struct {
	TemplateID string
}

func (e *ApprovalRequiredError) Error() string {
	return fmt.Sprintf("template %s is not approved for sending", e.TemplateID)
}

// NoProfessionalAvailableError is returned when a task requires a professional
// but no matching contact exists in the role's network.
type NoProfessionalAvailableError struct {
	TaskID         string
	Specialization string
}

func (e *NoProfessionalAvailableError) Error() string {
	return fmt.Sprintf("no professional available for task %s (specialization: %s)", e.TaskID, e.Specialization)
}
