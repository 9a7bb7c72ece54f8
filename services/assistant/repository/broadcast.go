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

type broadcastRepository struct {
	db *gorm.DB
}

func NewBroadcastRepository(database *gorm.DB) domain.BroadcastRepo {
	return &broadcastRepository{
		db: database,
	}
}

func (br *broadcastRepository) GetTemplates(ctx context.Context) (*[]domain.BroadcastTemplate, error) {
	var templates []domain.BroadcastTemplate
	err := br.db.WithContext(ctx).Where("deleted_at IS NULL").Order("created_at DESC").Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve templates: %w", err)
	}
	return &templates, nil
}

func (br *broadcastRepository) CreateTemplate(ctx context.Context, payload *domain.BroadcastTemplate) (*domain.BroadcastTemplate, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}

	payload.TemplateID = uuid.NewString()
	payload.IsApproved = false
	if err := br.db.WithContext(ctx).Create(payload).Error; err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return payload, nil
}

func (br *broadcastRepository) ApproveTemplate(ctx context.Context, templateID string) (*domain.BroadcastTemplate, error) {
	var template domain.BroadcastTemplate
	err := br.db.WithContext(ctx).Where("template_id = ? AND deleted_at IS NULL", templateID).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "broadcast template", ID: templateID}
		}
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}

	template.IsApproved = true
	if err := br.db.WithContext(ctx).Save(&template).Error; err != nil {
		return nil, fmt.Errorf("failed to approve template: %w", err)
	}
	return &template, nil
}

func (br *broadcastRepository) GetCampaigns(ctx context.Context) (*[]domain.BroadcastCampaign, error) {
	var campaigns []domain.BroadcastCampaign
	err := br.db.WithContext(ctx).Preload("Template").Order("created_at DESC").Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve campaigns: %w", err)
	}
	return &campaigns, nil
}

func (br *broadcastRepository) GetCampaign(ctx context.Context, campaignID string) (*domain.BroadcastCampaign, error) {
	var campaign domain.BroadcastCampaign
	err := br.db.WithContext(ctx).Preload("Template").Preload("Recipients").Where("campaign_id = ?", campaignID).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "broadcast campaign", ID: campaignID}
		}
		return nil, fmt.Errorf("failed to fetch campaign: %w", err)
	}
	return &campaign, nil
}

func (br *broadcastRepository) CreateCampaign(ctx context.Context, payload *domain.BroadcastCampaign) (*domain.BroadcastCampaign, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}

	var template domain.BroadcastTemplate
	err := br.db.WithContext(ctx).Where("template_id = ? AND deleted_at IS NULL", payload.TemplateID).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "broadcast template", ID: payload.TemplateID}
		}
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}

	payload.CampaignID = uuid.NewString()
	payload.Status = domain.CampaignDraft
	if err := br.db.WithContext(ctx).Create(payload).Error; err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return payload, nil
}

// UpdateCampaign rejects edits once the campaign is frozen.
func (br *broadcastRepository) UpdateCampaign(ctx context.Context, campaignID string, payload *domain.CampaignUpdatePayload) (*domain.BroadcastCampaign, error) {
	campaign, err := br.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if campaign.Status.Frozen() {
		return nil, &domain.InvalidTransitionError{Entity: "broadcast campaign", From: string(campaign.Status), To: string(campaign.Status)}
	}

	if payload.Name != nil {
		campaign.Name = *payload.Name
	}
	if payload.Description != nil {
		campaign.Description = *payload.Description
	}
	if payload.Audience != nil {
		campaign.Audience = *payload.Audience
	}
	if payload.ScheduledAt != nil {
		campaign.ScheduledAt = payload.ScheduledAt
	}

	if err := br.db.WithContext(ctx).Save(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return campaign, nil
}

func (br *broadcastRepository) ScheduleCampaign(ctx context.Context, campaignID string, at time.Time) (*domain.BroadcastCampaign, error) {
	campaign, err := br.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if !campaign.Status.CanTransition(domain.CampaignScheduled) {
		return nil, &domain.InvalidTransitionError{Entity: "broadcast campaign", From: string(campaign.Status), To: string(domain.CampaignScheduled)}
	}
	if !campaign.Template.IsApproved {
		return nil, &domain.ApprovalRequiredError{TemplateID: campaign.TemplateID}
	}

	campaign.Status = domain.CampaignScheduled
	campaign.ScheduledAt = &at
	if err := br.db.WithContext(ctx).Save(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to schedule campaign: %w", err)
	}
	return campaign, nil
}

// BeginSending freezes the campaign and materializes the recipient rows.
// Rows that already exist (an interrupted earlier dispatch) are kept so the
// resume never sends twice.
func (br *broadcastRepository) BeginSending(ctx context.Context, campaignID string) (*domain.BroadcastCampaign, error) {
	campaign, err := br.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if campaign.Status == domain.CampaignSending {
		// Resuming an interrupted dispatch.
		return campaign, nil
	}
	if !campaign.Status.CanTransition(domain.CampaignSending) {
		return nil, &domain.InvalidTransitionError{Entity: "broadcast campaign", From: string(campaign.Status), To: string(domain.CampaignSending)}
	}
	if !campaign.Template.IsApproved {
		return nil, &domain.ApprovalRequiredError{TemplateID: campaign.TemplateID}
	}

	audience, err := br.ResolveAudience(ctx, campaign.Audience)
	if err != nil {
		return nil, err
	}
	if len(*audience) == 0 {
		return nil, fmt.Errorf("campaign %s resolves to an empty audience", campaignID)
	}

	tx := br.db.WithContext(ctx).Begin()
	for _, user := range *audience {
		recipient := domain.CampaignRecipient{
			CampaignID: campaignID,
			UserID:     user.UserID,
			Name:       user.Name,
			Phone:      user.Phone,
			Status:     domain.RecipientQueued,
		}
		// Idempotency key (campaign, user): an existing row wins.
		err := tx.Where("campaign_id = ? AND user_id = ?", campaignID, user.UserID).
			FirstOrCreate(&recipient).Error
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to queue recipient %s: %w", user.UserID, err)
		}
	}
	if err := tx.Model(&domain.BroadcastCampaign{}).Where("campaign_id = ?", campaignID).
		Update("status", domain.CampaignSending).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to mark campaign sending: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit dispatch start: %w", err)
	}

	return br.GetCampaign(ctx, campaignID)
}

func (br *broadcastRepository) PendingRecipients(ctx context.Context, campaignID string) (*[]domain.CampaignRecipient, error) {
	var recipients []domain.CampaignRecipient
	err := br.db.WithContext(ctx).Where("campaign_id = ? AND status = ?", campaignID, domain.RecipientQueued).Find(&recipients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pending recipients: %w", err)
	}
	return &recipients, nil
}

func (br *broadcastRepository) UpdateRecipientStatus(ctx context.Context, campaignID, userID string, status domain.RecipientStatus, sendErr error) error {
	updates := map[string]interface{}{"status": status}
	if sendErr != nil {
		msg := sendErr.Error()
		updates["error"] = msg
	}
	err := br.db.WithContext(ctx).Model(&domain.CampaignRecipient{}).
		Where("campaign_id = ? AND user_id = ?", campaignID, userID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update recipient status: %w", err)
	}
	return nil
}

func (br *broadcastRepository) AppendTimelinePoint(ctx context.Context, campaignID string, point domain.AnalyticsPoint) error {
	var campaign domain.BroadcastCampaign
	err := br.db.WithContext(ctx).Where("campaign_id = ?", campaignID).First(&campaign).Error
	if err != nil {
		return fmt.Errorf("failed to fetch campaign for timeline: %w", err)
	}
	campaign.Timeline = append(campaign.Timeline, point)
	if err := br.db.WithContext(ctx).Model(&campaign).Update("timeline", campaign.Timeline).Error; err != nil {
		return fmt.Errorf("failed to append timeline point: %w", err)
	}
	return nil
}

func (br *broadcastRepository) FinishSending(ctx context.Context, campaignID string, status domain.CampaignStatus) error {
	campaign, err := br.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if !campaign.Status.CanTransition(status) {
		return &domain.InvalidTransitionError{Entity: "broadcast campaign", From: string(campaign.Status), To: string(status)}
	}

	updates := map[string]interface{}{"status": status}
	if status == domain.CampaignSent {
		updates["sent_at"] = time.Now()
	}
	err = br.db.WithContext(ctx).Model(&domain.BroadcastCampaign{}).Where("campaign_id = ?", campaignID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to finish campaign: %w", err)
	}
	return nil
}

func (br *broadcastRepository) GetCampaignAnalytics(ctx context.Context, campaignID string) (*domain.BroadcastAnalytics, error) {
	if _, err := br.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}

	var recipients []domain.CampaignRecipient
	err := br.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Find(&recipients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve campaign recipients: %w", err)
	}

	analytics := domain.ComputeAnalytics(recipients)
	return &analytics, nil
}

// ResolveAudience reads users cross-subsystem; broadcasting never mutates
// them.
func (br *broadcastRepository) ResolveAudience(ctx context.Context, audience domain.CampaignAudience) (*[]domain.User, error) {
	seen := make(map[string]struct{})
	var resolved []domain.User

	if len(audience.Roles) > 0 {
		var users []domain.User
		err := br.db.WithContext(ctx).
			Where("role IN ? AND status = ? AND deleted_at IS NULL", audience.Roles, domain.UserActive).
			Find(&users).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve role audience: %w", err)
		}
		for _, u := range users {
			if _, ok := seen[u.UserID]; !ok {
				seen[u.UserID] = struct{}{}
				resolved = append(resolved, u)
			}
		}
	}

	if len(audience.Groups) > 0 {
		// Groups are class labels; they resolve to the parents of the
		// students enrolled in those classes.
		var students []domain.Student
		err := br.db.WithContext(ctx).Where("class IN ? AND deleted_at IS NULL", audience.Groups).Find(&students).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve group audience: %w", err)
		}
		var parentIDs []string
		for _, s := range students {
			parentIDs = append(parentIDs, s.ParentID)
		}
		if len(parentIDs) > 0 {
			var parents []domain.User
			err = br.db.WithContext(ctx).
				Where("user_id IN ? AND status = ? AND deleted_at IS NULL", parentIDs, domain.UserActive).
				Find(&parents).Error
			if err != nil {
				return nil, fmt.Errorf("failed to resolve group parents: %w", err)
			}
			for _, u := range parents {
				if _, ok := seen[u.UserID]; !ok {
					seen[u.UserID] = struct{}{}
					resolved = append(resolved, u)
				}
			}
		}
	}

	if len(audience.Individuals) > 0 {
		var users []domain.User
		err := br.db.WithContext(ctx).
			Where("user_id IN ? AND status = ? AND deleted_at IS NULL", audience.Individuals, domain.UserActive).
			Find(&users).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve individual audience: %w", err)
		}
		for _, u := range users {
			if _, ok := seen[u.UserID]; !ok {
				seen[u.UserID] = struct{}{}
				resolved = append(resolved, u)
			}
		}
	}

	return &resolved, nil
}
