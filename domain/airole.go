package domain

import (
	"context"
	"sort"
	"time"

	"github.com/lib/pq"
)

type AutonomyLevel string

const (
	AutonomyFull         AutonomyLevel = "full"
	AutonomyAssisted     AutonomyLevel = "assisted"
	AutonomyProfessional AutonomyLevel = "professional_required"
)

func (a AutonomyLevel) Valid() bool {
	switch a {
	case AutonomyFull, AutonomyAssisted, AutonomyProfessional:
		return true
	default:
		return false
	}
}

// restrictiveness orders levels from most permissive to most conservative.
func (a AutonomyLevel) restrictiveness() int {
	switch a {
	case AutonomyAssisted:
		return 1
	case AutonomyProfessional:
		return 2
	default:
		return 0
	}
}

// MoreRestrictiveThan reports whether a is more conservative than other.
func (a AutonomyLevel) MoreRestrictiveThan(other AutonomyLevel) bool {
	return a.restrictiveness() > other.restrictiveness()
}

// EffectiveAutonomy is the most restrictive level among the capabilities a
// task will invoke. An empty capability set resolves to professional_required
// so an unconfigured role can never act on its own.
func EffectiveAutonomy(capabilities []AICapability) AutonomyLevel {
	if len(capabilities) == 0 {
		return AutonomyProfessional
	}
	effective := AutonomyFull
	for _, c := range capabilities {
		if c.AutonomyLevel.restrictiveness() > effective.restrictiveness() {
			effective = c.AutonomyLevel
		}
	}
	return effective
}

type AICapability struct {
	CapabilityID  string        `gorm:"primaryKey;type:uuid" json:"capability_id"`
	RoleID        string        `gorm:"type:uuid;not null;index" json:"role_id"`
	Name          string        `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Description   string        `gorm:"type:text" json:"description"`
	AutonomyLevel AutonomyLevel `gorm:"type:autonomy_level_enum;not null" json:"autonomy_level"`
	Confidence    int           `gorm:"not null" json:"confidence"`
}

type ProfessionalContact struct {
	ContactID       string         `gorm:"primaryKey;type:uuid" json:"contact_id"`
	RoleID          string         `gorm:"type:uuid;not null;index" json:"role_id"`
	Name            string         `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Profession      string         `gorm:"type:varchar(100);not null" json:"profession"`
	Specializations pq.StringArray `gorm:"type:text[]" json:"specializations"`
	Rating          float64        `gorm:"type:numeric;default:0" json:"rating"`
	Location        string         `gorm:"type:varchar(100)" json:"location"`
	NextAvailable   time.Time      `json:"next_available"`
	Phone           *string        `gorm:"type:varchar(15)" json:"phone,omitempty"`
	Email           *string        `gorm:"type:varchar(255)" json:"email,omitempty" valid:"email~Invalid email format,optional"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// HasSpecialization reports whether the contact covers the given
// specialization.
func (c *ProfessionalContact) HasSpecialization(spec string) bool {
	for _, s := range c.Specializations {
		if s == spec {
			return true
		}
	}
	return false
}

type AIRole struct {
	RoleID       string                `gorm:"primaryKey;type:uuid" json:"role_id"`
	Name         string                `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Type         string                `gorm:"type:varchar(30);not null" json:"type" valid:"required~Type is required"`
	Description  string                `gorm:"type:text" json:"description"`
	Capabilities []AICapability        `gorm:"foreignKey:RoleID;references:RoleID" json:"capabilities" valid:"-"`
	Network      []ProfessionalContact `gorm:"foreignKey:RoleID;references:RoleID" json:"professional_network" valid:"-"`
	CreatedAt    time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    *time.Time            `gorm:"index" json:"deleted_at,omitempty"`
}

// RankProfessionals filters the network by specialization and orders it by
// location match, then rating, ties broken by soonest availability.
func RankProfessionals(network []ProfessionalContact, specialization, location string) []ProfessionalContact {
	var matched []ProfessionalContact
	for _, c := range network {
		if c.HasSpecialization(specialization) {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		li, lj := matched[i].Location == location, matched[j].Location == location
		if li != lj {
			return li
		}
		if matched[i].Rating != matched[j].Rating {
			return matched[i].Rating > matched[j].Rating
		}
		return matched[i].NextAvailable.Before(matched[j].NextAvailable)
	})
	return matched
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskEscalated  TaskStatus = "escalated"
	TaskFailed     TaskStatus = "failed"
)

const (
	StepPending   = "pending"
	StepCompleted = "completed"
	StepBlocked   = "blocked"
)

type AITaskStep struct {
	Description   string        `json:"description"`
	Status        string        `json:"status"`
	AutonomyLevel AutonomyLevel `json:"autonomy_level"`
	Confidence    int           `json:"confidence"`
	Result        *string       `json:"result,omitempty"`
}

type AITask struct {
	TaskID         string        `gorm:"primaryKey;type:uuid" json:"task_id"`
	Title          string        `gorm:"type:varchar(200);not null" json:"title" valid:"required~Title is required"`
	Description    string        `gorm:"type:text" json:"description"`
	Category       string        `gorm:"type:varchar(50)" json:"category"`
	Priority       string        `gorm:"type:varchar(10);default:'medium'" json:"priority" valid:"in(low|medium|high|urgent)~Invalid priority,optional"`
	Status         TaskStatus    `gorm:"type:task_status_enum;not null;default:'pending'" json:"status"`
	RoleID         string        `gorm:"type:uuid;not null;index" json:"role_id" valid:"required~Role ID is required"`
	MemberID       string        `gorm:"type:uuid;not null;index" json:"member_id" valid:"required~Member ID is required"`
	AutonomyLevel  AutonomyLevel `gorm:"type:autonomy_level_enum;not null" json:"autonomy_level"`
	Confidence     int           `gorm:"not null" json:"confidence"`
	Steps          []AITaskStep  `gorm:"serializer:json" json:"steps"`
	Escalated      bool          `gorm:"default:false" json:"escalated"`
	ProfessionalID *string       `gorm:"type:uuid" json:"professional_id,omitempty"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
}

type DecisionKind string

const (
	DecisionAutonomous       DecisionKind = "autonomous"
	DecisionFindProfessional DecisionKind = "find_professional"
	DecisionEscalate         DecisionKind = "escalate"
)

// ResolveDecision applies the autonomy policy: full autonomy with enough
// confidence resolves on its own, professional_required always escalates,
// everything else goes to human review.
func ResolveDecision(effective AutonomyLevel, confidence, threshold int) DecisionKind {
	if effective == AutonomyProfessional {
		return DecisionEscalate
	}
	if effective == AutonomyFull && confidence >= threshold {
		return DecisionAutonomous
	}
	return DecisionFindProfessional
}

// ResolveSteps walks the step list in order, completing every step the
// role may run on its own, and reports the decision for the task as a
// whole. The walk stops at the first step that needs a human and marks it
// blocked; a later retry resumes from that step. A task without steps
// falls back to its task-level resolution.
func (t *AITask) ResolveSteps(effective AutonomyLevel, threshold int) DecisionKind {
	for i := range t.Steps {
		step := &t.Steps[i]
		if step.Status == StepCompleted {
			continue
		}
		level := effective
		if step.AutonomyLevel.MoreRestrictiveThan(level) {
			level = step.AutonomyLevel
		}
		confidence := step.Confidence
		if confidence == 0 {
			confidence = t.Confidence
		}
		if kind := ResolveDecision(level, confidence, threshold); kind != DecisionAutonomous {
			step.Status = StepBlocked
			return kind
		}
		step.Status = StepCompleted
	}
	if len(t.Steps) > 0 {
		return DecisionAutonomous
	}
	return ResolveDecision(effective, t.Confidence, threshold)
}

type AIDecision struct {
	DecisionID string       `gorm:"primaryKey;type:uuid" json:"decision_id"`
	TaskID     string       `gorm:"type:uuid;not null;index" json:"task_id"`
	Decision   DecisionKind `gorm:"type:decision_kind_enum;not null" json:"decision"`
	Confidence int          `gorm:"not null" json:"confidence"`
	Reasoning  string       `gorm:"type:text" json:"reasoning"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

// DecisionContext carries the request-time facts the policy needs beyond the
// task itself.
type DecisionContext struct {
	Specialization string `json:"specialization"`
	Location       string `json:"location"`
}

type AIRoleRepo interface {
	GetAIRoles(ctx context.Context) (*[]AIRole, error)
	GetAIRole(ctx context.Context, roleID string) (*AIRole, error)
	CreateTask(ctx context.Context, payload *AITask) (*AITask, error)
	GetTask(ctx context.Context, taskID string) (*AITask, error)
	UpdateTask(ctx context.Context, task *AITask) error
	SaveDecision(ctx context.Context, decision *AIDecision) error
}

type AIRoleUseCase interface {
	GetAIRoles(ctx context.Context) (*[]AIRole, error)
	CreateTask(ctx context.Context, payload *AITask) (*AITask, error)
	MakeDecision(ctx context.Context, taskID string, dctx *DecisionContext) (*AIDecision, error)
}
