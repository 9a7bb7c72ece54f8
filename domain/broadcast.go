package domain

import (
	"context"
	"math"
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSending   CampaignStatus = "sending"
	CampaignSent      CampaignStatus = "sent"
	CampaignFailed    CampaignStatus = "failed"
)

// CanTransition enforces draft -> scheduled -> sending -> sent, with
// sending -> failed on an irrecoverable send error. A scheduled campaign
// may be pulled back to draft before dispatch starts.
func (s CampaignStatus) CanTransition(to CampaignStatus) bool {
	switch s {
	case CampaignDraft:
		return to == CampaignScheduled
	case CampaignScheduled:
		return to == CampaignSending || to == CampaignDraft
	case CampaignSending:
		return to == CampaignSent || to == CampaignFailed
	default:
		return false
	}
}

// Frozen reports whether the campaign no longer accepts edits to its
// recipients or body.
func (s CampaignStatus) Frozen() bool {
	return s == CampaignSending || s == CampaignSent || s == CampaignFailed
}

type TemplateVariable struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Required     bool   `json:"required"`
	DefaultValue string `json:"default_value,omitempty"`
}

type BroadcastTemplate struct {
	TemplateID string             `gorm:"primaryKey;type:uuid" json:"template_id"`
	Name       string             `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Category   string             `gorm:"type:varchar(20);not null" json:"category" valid:"required~Category is required,in(school|emergency|general|marketing)~Invalid category"`
	Language   string             `gorm:"type:varchar(4);default:'en'" json:"language" valid:"in(en|ar|both)~Invalid language,optional"`
	Body       string             `gorm:"type:text;not null" json:"body" valid:"required~Body is required"`
	Variables  []TemplateVariable `gorm:"serializer:json" json:"variables"`
	IsApproved bool               `gorm:"default:false" json:"is_approved"`
	CreatedAt  time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  *time.Time         `gorm:"index" json:"deleted_at,omitempty"`
}

// Render substitutes {{name}} placeholders with per-recipient values,
// falling back to declared defaults.
func (t *BroadcastTemplate) Render(values map[string]string) string {
	body := t.Body
	for _, v := range t.Variables {
		val, ok := values[v.Name]
		if !ok {
			val = v.DefaultValue
		}
		body = strings.ReplaceAll(body, "{{"+v.Name+"}}", val)
	}
	return body
}

type CampaignAudience struct {
	Roles       []string `json:"roles"`
	Groups      []string `json:"groups"`
	Individuals []string `json:"individuals"`
}

type RecipientStatus string

const (
	RecipientQueued    RecipientStatus = "queued"
	RecipientSent      RecipientStatus = "sent"
	RecipientDelivered RecipientStatus = "delivered"
	RecipientRead      RecipientStatus = "read"
	RecipientReplied   RecipientStatus = "replied"
	RecipientFailed    RecipientStatus = "failed"
	RecipientOptedOut  RecipientStatus = "opted_out"
)

// Dispatched reports whether a send has been attempted for the recipient.
// Queued recipients are the ones a resumed dispatch still has to process.
func (s RecipientStatus) Dispatched() bool {
	return s != RecipientQueued
}

// CampaignRecipient is the idempotency unit of a dispatch: one row per
// (campaign, user), written exactly once per send attempt.
type CampaignRecipient struct {
	CampaignID string          `gorm:"primaryKey;type:uuid" json:"campaign_id"`
	UserID     string          `gorm:"primaryKey;type:uuid" json:"user_id"`
	Name       string          `gorm:"type:varchar(150)" json:"name"`
	Phone      string          `gorm:"type:varchar(15);not null" json:"phone"`
	Status     RecipientStatus `gorm:"type:recipient_status_enum;not null;default:'queued'" json:"status"`
	Error      *string         `gorm:"type:text" json:"error,omitempty"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type AnalyticsPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Sent      int       `json:"sent"`
	Delivered int       `json:"delivered"`
	Read      int       `json:"read"`
	Replied   int       `json:"replied"`
	Failed    int       `json:"failed"`
}

type BroadcastCampaign struct {
	CampaignID  string              `gorm:"primaryKey;type:uuid" json:"campaign_id"`
	Name        string              `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Description string              `gorm:"type:text" json:"description"`
	Type        string              `gorm:"type:varchar(20);not null" json:"type" valid:"required~Type is required,in(announcement|reminder|emergency|promotional|educational)~Invalid campaign type"`
	TemplateID  string              `gorm:"type:uuid;not null;index" json:"template_id" valid:"required~Template ID is required"`
	Template    BroadcastTemplate   `gorm:"foreignKey:TemplateID;references:TemplateID" json:"template" valid:"-"`
	Audience    CampaignAudience    `gorm:"serializer:json" json:"audience"`
	Status      CampaignStatus      `gorm:"type:campaign_status_enum;not null;default:'draft'" json:"status"`
	Timeline    []AnalyticsPoint    `gorm:"serializer:json" json:"timeline"`
	Recipients  []CampaignRecipient `gorm:"foreignKey:CampaignID;references:CampaignID" json:"recipients,omitempty" valid:"-"`
	ScheduledAt *time.Time          `json:"scheduled_at,omitempty"`
	SentAt      *time.Time          `json:"sent_at,omitempty"`
	CreatedBy   string              `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

type BroadcastAnalytics struct {
	TotalSent    int     `json:"total_sent"`
	Delivered    int     `json:"delivered"`
	Read         int     `json:"read"`
	Replied      int     `json:"replied"`
	Failed       int     `json:"failed"`
	OptedOut     int     `json:"opted_out"`
	DeliveryRate float64 `json:"delivery_rate"`
	ReadRate     float64 `json:"read_rate"`
	ResponseRate float64 `json:"response_rate"`
	OptOutRate   float64 `json:"opt_out_rate"`
}

// ComputeAnalytics derives the snapshot from the recipient rows. Counts are
// cumulative along the delivery machine: a read message was also delivered.
func ComputeAnalytics(recipients []CampaignRecipient) BroadcastAnalytics {
	var a BroadcastAnalytics
	for _, r := range recipients {
		if r.Status.Dispatched() {
			a.TotalSent++
		}
		switch r.Status {
		case RecipientDelivered:
			a.Delivered++
		case RecipientRead:
			a.Delivered++
			a.Read++
		case RecipientReplied:
			a.Delivered++
			a.Read++
			a.Replied++
		case RecipientFailed:
			a.Failed++
		case RecipientOptedOut:
			a.OptedOut++
		}
	}
	a.DeliveryRate = safeRate(a.Delivered, a.TotalSent)
	a.ReadRate = safeRate(a.Read, a.Delivered)
	a.ResponseRate = safeRate(a.Replied, a.TotalSent)
	a.OptOutRate = safeRate(a.OptedOut, a.TotalSent)
	return a
}

// safeRate yields 0 instead of NaN on an empty denominator.
func safeRate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*1000) / 10
}

type CampaignUpdatePayload struct {
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	Audience    *CampaignAudience `json:"audience,omitempty"`
	ScheduledAt *time.Time        `json:"scheduled_at,omitempty"`
}

type BroadcastRepo interface {
	GetTemplates(ctx context.Context) (*[]BroadcastTemplate, error)
	CreateTemplate(ctx context.Context, payload *BroadcastTemplate) (*BroadcastTemplate, error)
	ApproveTemplate(ctx context.Context, templateID string) (*BroadcastTemplate, error)
	GetCampaigns(ctx context.Context) (*[]BroadcastCampaign, error)
	GetCampaign(ctx context.Context, campaignID string) (*BroadcastCampaign, error)
	CreateCampaign(ctx context.Context, payload *BroadcastCampaign) (*BroadcastCampaign, error)
	UpdateCampaign(ctx context.Context, campaignID string, payload *CampaignUpdatePayload) (*BroadcastCampaign, error)
	ScheduleCampaign(ctx context.Context, campaignID string, at time.Time) (*BroadcastCampaign, error)
	BeginSending(ctx context.Context, campaignID string) (*BroadcastCampaign, error)
	PendingRecipients(ctx context.Context, campaignID string) (*[]CampaignRecipient, error)
	UpdateRecipientStatus(ctx context.Context, campaignID, userID string, status RecipientStatus, sendErr error) error
	AppendTimelinePoint(ctx context.Context, campaignID string, point AnalyticsPoint) error
	FinishSending(ctx context.Context, campaignID string, status CampaignStatus) error
	GetCampaignAnalytics(ctx context.Context, campaignID string) (*BroadcastAnalytics, error)
	ResolveAudience(ctx context.Context, audience CampaignAudience) (*[]User, error)
}

type BroadcastUseCase interface {
	GetTemplates(ctx context.Context) (*[]BroadcastTemplate, error)
	CreateTemplate(ctx context.Context, payload *BroadcastTemplate) (*BroadcastTemplate, error)
	ApproveTemplate(ctx context.Context, templateID string) (*BroadcastTemplate, error)
	GetCampaigns(ctx context.Context) (*[]BroadcastCampaign, error)
	CreateCampaign(ctx context.Context, payload *BroadcastCampaign) (*BroadcastCampaign, error)
	UpdateCampaign(ctx context.Context, campaignID string, payload *CampaignUpdatePayload) (*BroadcastCampaign, error)
	ScheduleCampaign(ctx context.Context, campaignID string, at time.Time) (*BroadcastCampaign, error)
	SendCampaign(ctx context.Context, campaignID string) error
	StopDispatches()
	GetCampaignAnalytics(ctx context.Context, campaignID string) (*BroadcastAnalytics, error)
}
