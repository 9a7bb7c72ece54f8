package domain

import (
	"context"
	"time"

	"github.com/lib/pq"
)

type FamilyMember struct {
	MemberID    string           `gorm:"primaryKey;type:uuid" json:"member_id"`
	Name        string           `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Role        string           `gorm:"type:varchar(10);not null" json:"role" valid:"required~Role is required,in(parent|child|guardian)~Invalid role"`
	Age         *int             `json:"age,omitempty"`
	Status      string           `gorm:"type:varchar(10);default:'active'" json:"status" valid:"in(active|inactive|busy)~Invalid status,optional"`
	ActiveRoles pq.StringArray   `gorm:"type:text[]" json:"active_roles"`
	LastActive  *time.Time       `json:"last_active,omitempty"`
	Goals       []Goal           `gorm:"foreignKey:MemberID;references:MemberID" json:"goals" valid:"-"`
	Items       []ActionableItem `gorm:"foreignKey:MemberID;references:MemberID" json:"actionable_items" valid:"-"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   *time.Time       `gorm:"index" json:"deleted_at,omitempty"`
}

type Milestone struct {
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type Goal struct {
	GoalID     string      `gorm:"primaryKey;type:uuid" json:"goal_id"`
	MemberID   string      `gorm:"type:uuid;not null;index" json:"member_id"`
	Title      string      `gorm:"type:varchar(200);not null" json:"title" valid:"required~Title is required"`
	Category   string      `gorm:"type:varchar(20)" json:"category" valid:"in(health|education|lifestyle|financial|personal)~Invalid category,optional"`
	Priority   string      `gorm:"type:varchar(10);default:'medium'" json:"priority" valid:"in(low|medium|high)~Invalid priority,optional"`
	Progress   int         `gorm:"default:0" json:"progress"`
	TargetDate *time.Time  `json:"target_date,omitempty"`
	Status     string      `gorm:"type:varchar(10);default:'active'" json:"status" valid:"in(active|completed|paused)~Invalid status,optional"`
	Milestones []Milestone `gorm:"serializer:json" json:"milestones"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// ClampProgress keeps goal progress inside 0..100 and completes the goal at
// the upper bound.
func (g *Goal) ClampProgress() {
	if g.Progress < 0 {
		g.Progress = 0
	}
	if g.Progress >= 100 {
		g.Progress = 100
		g.Status = "completed"
	}
}

type ActionableItem struct {
	ItemID        string     `gorm:"primaryKey;type:uuid" json:"item_id"`
	MemberID      string     `gorm:"type:uuid;not null;index" json:"member_id"`
	Title         string     `gorm:"type:varchar(200);not null" json:"title" valid:"required~Title is required"`
	Description   string     `gorm:"type:text" json:"description"`
	Priority      string     `gorm:"type:varchar(10);default:'medium'" json:"priority" valid:"in(low|medium|high|urgent)~Invalid priority,optional"`
	Category      string     `gorm:"type:varchar(50)" json:"category"`
	AssignedRole  *string    `gorm:"type:uuid" json:"assigned_role,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Status        string     `gorm:"type:varchar(15);default:'pending'" json:"status" valid:"in(pending|in_progress|completed)~Invalid status,optional"`
	EstimatedTime int        `json:"estimated_time"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Overdue is derived the same way as the fee overlay: past due and not
// completed.
func (i *ActionableItem) Overdue(now time.Time) bool {
	return i.DueDate != nil && now.After(*i.DueDate) && i.Status != "completed"
}

type GoalUpdatePayload struct {
	Title      *string     `json:"title,omitempty"`
	Priority   *string     `json:"priority,omitempty"`
	Progress   *int        `json:"progress,omitempty"`
	Status     *string     `json:"status,omitempty"`
	Milestones []Milestone `json:"milestones,omitempty"`
}

type ItemUpdatePayload struct {
	Title        *string    `json:"title,omitempty"`
	Priority     *string    `json:"priority,omitempty"`
	Status       *string    `json:"status,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	AssignedRole *string    `json:"assigned_role,omitempty"`
}

type FamilyRepo interface {
	GetFamilyMembers(ctx context.Context) (*[]FamilyMember, error)
	GetFamilyMember(ctx context.Context, memberID string) (*FamilyMember, error)
	UpdateGoal(ctx context.Context, goalID string, payload *GoalUpdatePayload) (*Goal, error)
	UpdateActionableItem(ctx context.Context, itemID string, payload *ItemUpdatePayload) (*ActionableItem, error)
}

type FamilyUseCase interface {
	GetFamilyMembers(ctx context.Context) (*[]FamilyMember, error)
	GetFamilyMember(ctx context.Context, memberID string) (*FamilyMember, error)
	UpdateGoal(ctx context.Context, goalID string, payload *GoalUpdatePayload) (*Goal, error)
	UpdateActionableItem(ctx context.Context, itemID string, payload *ItemUpdatePayload) (*ActionableItem, error)
}
