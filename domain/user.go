package domain

import (
	"context"
	"time"

	"github.com/lib/pq"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleParent  UserRole = "parent"
	RoleStudent UserRole = "student"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleParent, RoleStudent:
		return true
	default:
		return false
	}
}

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive, UserSuspended:
		return true
	default:
		return false
	}
}

type User struct {
	UserID      string         `gorm:"primaryKey;type:uuid" json:"user_id"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Phone       string         `gorm:"type:varchar(15);not null;uniqueIndex" json:"phone" valid:"required~Phone is required"`
	Email       *string        `gorm:"type:varchar(255)" json:"email,omitempty" valid:"email~Invalid email format,optional"`
	Password    string         `gorm:"type:varchar(255);not null" json:"-"`
	Role        UserRole       `gorm:"type:user_role_enum;not null" json:"role" valid:"required~Role is required,in(admin|teacher|parent|student)~Invalid role"`
	Status      UserStatus     `gorm:"type:user_status_enum;not null;default:'active'" json:"status"`
	Permissions pq.StringArray `gorm:"type:text[]" json:"permissions"`
	LastSeen    *time.Time     `json:"last_seen,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   *time.Time     `gorm:"index" json:"deleted_at,omitempty"`
}

type UserUpdatePayload struct {
	Name        *string     `json:"name,omitempty"`
	Email       *string     `json:"email,omitempty"`
	Status      *UserStatus `json:"status,omitempty"`
	Permissions []string    `json:"permissions,omitempty"`
}

type UserRepo interface {
	GetAllUsers(ctx context.Context) (*[]User, error)
	CreateUser(ctx context.Context, payload *User) (*User, error)
	UpdateUser(ctx context.Context, userID string, payload *UserUpdatePayload) (*User, error)
	DeleteUser(ctx context.Context, userID string) error
	FindUserByPhone(ctx context.Context, phone string) (*User, error)
}

type UserUseCase interface {
	GetAllUsers(ctx context.Context) (*[]User, error)
	CreateUser(ctx context.Context, payload *User) (*User, error)
	UpdateUser(ctx context.Context, userID string, payload *UserUpdatePayload) (*User, error)
	DeleteUser(ctx context.Context, userID string) error
	FindUserByPhone(ctx context.Context, phone string) (*User, error)
}
