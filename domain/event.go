package domain

import (
	"context"
	"time"
)

type RSVPStatus string

const (
	RSVPInvited   RSVPStatus = "invited"
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPDeclined  RSVPStatus = "declined"
	RSVPAttended  RSVPStatus = "attended"
	RSVPNoShow    RSVPStatus = "no_show"
)

func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPInvited, RSVPConfirmed, RSVPDeclined, RSVPAttended, RSVPNoShow:
		return true
	default:
		return false
	}
}

type SchoolEvent struct {
	EventID      string               `gorm:"primaryKey;type:uuid" json:"event_id"`
	Title        string               `gorm:"type:varchar(200);not null" json:"title" valid:"required~Title is required"`
	Description  string               `gorm:"type:text" json:"description"`
	Type         string               `gorm:"type:varchar(20);not null" json:"type" valid:"required~Type is required,in(academic|sports|cultural|meeting|trip)~Invalid event type"`
	StartDate    time.Time            `gorm:"not null" json:"start_date" valid:"required~Start date is required"`
	EndDate      time.Time            `gorm:"not null" json:"end_date" valid:"required~End date is required"`
	Location     string               `gorm:"type:varchar(200)" json:"location"`
	Capacity     *int                 `json:"capacity,omitempty"`
	RequiresRSVP bool                 `gorm:"default:false" json:"requires_rsvp"`
	Organizer    string               `gorm:"type:varchar(150)" json:"organizer"`
	Participants []EventParticipation `gorm:"foreignKey:EventID;references:EventID" json:"participants" valid:"-"`
	CreatedAt    time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    *time.Time           `gorm:"index" json:"deleted_at,omitempty"`
}

type EventParticipation struct {
	ParticipationID string     `gorm:"primaryKey;type:uuid" json:"participation_id"`
	EventID         string     `gorm:"type:uuid;not null;uniqueIndex:idx_event_student" json:"event_id"`
	StudentID       string     `gorm:"type:uuid;not null;uniqueIndex:idx_event_student" json:"student_id"`
	Status          RSVPStatus `gorm:"type:rsvp_status_enum;not null;default:'invited'" json:"status"`
	RSVPDate        *time.Time `json:"rsvp_date,omitempty"`
	Notes           *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// CanRSVP enforces the participation machine. Confirm/decline may flip back
// and forth until the event starts; attended and no_show are recorded only
// once the event has begun and are final.
func (p *EventParticipation) CanRSVP(to RSVPStatus, eventStart, now time.Time) bool {
	switch p.Status {
	case RSVPInvited, RSVPConfirmed, RSVPDeclined:
		switch to {
		case RSVPConfirmed, RSVPDeclined:
			return now.Before(eventStart)
		case RSVPAttended, RSVPNoShow:
			return !now.Before(eventStart)
		}
	}
	return false
}

type EventRepo interface {
	GetSchoolEvents(ctx context.Context) (*[]SchoolEvent, error)
	CreateEvent(ctx context.Context, payload *SchoolEvent, invitees []string) (*SchoolEvent, error)
	RSVPEvent(ctx context.Context, eventID, studentID string, status RSVPStatus) (*EventParticipation, error)
}

type EventUseCase interface {
	GetSchoolEvents(ctx context.Context) (*[]SchoolEvent, error)
	CreateEvent(ctx context.Context, payload *SchoolEvent, invitees []string) (*SchoolEvent, error)
	RSVPEvent(ctx context.Context, eventID, studentID string, status RSVPStatus) (*EventParticipation, error)
}
