package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assistant/domain"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) domain.UserRepo {
	return &userRepository{
		db: database,
	}
}

func (ur *userRepository) GetAllUsers(ctx context.Context) (*[]domain.User, error) {
	var users []domain.User
	err := ur.db.WithContext(ctx).Where("deleted_at IS NULL").Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return &users, nil
}

func (ur *userRepository) CreateUser(ctx context.Context, payload *domain.User) (*domain.User, error) {
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return nil, err
	}
	if payload.Status != "" && !payload.Status.Valid() {
		return nil, fmt.Errorf("invalid user status: %s", payload.Status)
	}

	payload.UserID = uuid.NewString()
	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Status == "" {
		payload.Status = domain.UserActive
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}
	payload.Password = string(hashed)

	err = ur.db.WithContext(ctx).Create(payload).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("user with phone %s already exists", payload.Phone)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return payload, nil
}

func (ur *userRepository) UpdateUser(ctx context.Context, userID string, payload *domain.UserUpdatePayload) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).Where("user_id = ? AND deleted_at IS NULL", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "user", ID: userID}
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if payload.Name != nil {
		user.Name = *payload.Name
	}
	if payload.Email != nil {
		user.Email = payload.Email
	}
	if payload.Status != nil {
		if !payload.Status.Valid() {
			return nil, fmt.Errorf("invalid user status: %s", *payload.Status)
		}
		user.Status = *payload.Status
	}
	if payload.Permissions != nil {
		user.Permissions = payload.Permissions
	}

	if err := ur.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// DeleteUser never removes the row. Status flips to inactive and the soft
// delete marker is set so audit trails keep resolving the identity.
func (ur *userRepository) DeleteUser(ctx context.Context, userID string) error {
	var user domain.User
	err := ur.db.WithContext(ctx).Where("user_id = ? AND deleted_at IS NULL", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotFoundError{Entity: "user", ID: userID}
		}
		return fmt.Errorf("failed to fetch user: %w", err)
	}

	now := time.Now()
	user.Status = domain.UserInactive
	user.DeletedAt = &now
	if err := ur.db.WithContext(ctx).Save(&user).Error; err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

func (ur *userRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).Where("phone = ? AND deleted_at IS NULL", phone).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "user", ID: phone}
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}
