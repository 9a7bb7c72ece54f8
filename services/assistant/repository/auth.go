package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assistant/domain"
	"assistant/middleware"

	"github.com/asaskevich/govalidator"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(database *gorm.DB) domain.AuthRepo {
	return &authRepository{
		db: database,
	}
}

func (ar *authRepository) Login(ctx context.Context, data *domain.LoginRequest) (*domain.LoginResponse, error) {
	if _, err := govalidator.ValidateStruct(data); err != nil {
		return nil, err
	}

	var user domain.User
	err := ar.db.WithContext(ctx).Where("phone = ? AND deleted_at IS NULL", data.Phone).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid phone or password")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if user.Status == domain.UserSuspended {
		return nil, fmt.Errorf("account is suspended")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Password)); err != nil {
		return nil, fmt.Errorf("invalid phone or password")
	}

	token, err := middleware.GenerateJWT(user.UserID, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	now := time.Now()
	ar.db.WithContext(ctx).Model(&user).Update("last_seen", now)

	return &domain.LoginResponse{Token: token, Role: user.Role}, nil
}
