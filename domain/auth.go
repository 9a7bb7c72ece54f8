package domain

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
)

type LoginRequest struct {
	Phone    string `json:"phone" valid:"required~Phone is required"`
	Password string `json:"password" valid:"required~Password is required"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	Role  UserRole `json:"role"`
}

type Claims struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

type AuthRepo interface {
	Login(ctx context.Context, data *LoginRequest) (*LoginResponse, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, data *LoginRequest) (*LoginResponse, error)
}
