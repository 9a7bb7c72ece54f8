package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assistant/domain"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(database *gorm.DB) domain.EventRepo {
	return &eventRepository{
		db: database,
	}
}

func (er *eventRepository) GetSchoolEvents(ctx context.Context) (*[]domain.SchoolEvent, error) {
	var events []domain.SchoolEvent
	err := er.db.WithContext(ctx).Preload("Participants").Where("deleted_at IS NULL").Order("start_date ASC").Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve school events: %w", err)
	}
	return &events, nil
}

func (er *eventRepository) CreateEvent(ctx context.Context, payload *domain.SchoolEvent, invitees []string) (*domain.SchoolEvent, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}
	if payload.EndDate.Before(payload.StartDate) {
		return nil, fmt.Errorf("event end date precedes start date")
	}

	payload.EventID = uuid.NewString()

	tx := er.db.WithContext(ctx).Begin()
	if err := tx.Create(payload).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create school event: %w", err)
	}

	if payload.RequiresRSVP {
		for _, studentID := range invitees {
			participation := domain.EventParticipation{
				ParticipationID: uuid.NewString(),
				EventID:         payload.EventID,
				StudentID:       studentID,
				Status:          domain.RSVPInvited,
			}
			if err := tx.Create(&participation).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to invite student %s: %w", studentID, err)
			}
			payload.Participants = append(payload.Participants, participation)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit event creation: %w", err)
	}
	return payload, nil
}

func (er *eventRepository) RSVPEvent(ctx context.Context, eventID, studentID string, status domain.RSVPStatus) (*domain.EventParticipation, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid rsvp status: %s", status)
	}

	var event domain.SchoolEvent
	err := er.db.WithContext(ctx).Where("event_id = ? AND deleted_at IS NULL", eventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "school event", ID: eventID}
		}
		return nil, fmt.Errorf("failed to fetch school event: %w", err)
	}

	if !event.RequiresRSVP {
		return nil, &domain.InvalidTransitionError{Entity: "school event", From: "no_rsvp", To: string(status)}
	}

	var participation domain.EventParticipation
	err = er.db.WithContext(ctx).Where("event_id = ? AND student_id = ?", eventID, studentID).First(&participation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "event participation", ID: eventID + "/" + studentID}
		}
		return nil, fmt.Errorf("failed to fetch participation: %w", err)
	}

	now := time.Now()
	if !participation.CanRSVP(status, event.StartDate, now) {
		return nil, &domain.InvalidTransitionError{Entity: "event participation", From: string(participation.Status), To: string(status)}
	}

	participation.Status = status
	participation.RSVPDate = &now
	if err := er.db.WithContext(ctx).Save(&participation).Error; err != nil {
		return nil, fmt.Errorf("failed to update participation: %w", err)
	}
	return &participation, nil
}
