package usecase

import (
	"context"

	"assistant/domain"
)

type authUseCase struct {
	authRepo domain.AuthRepo
}

func NewAuthUseCase(repo domain.AuthRepo) domain.AuthUseCase {
	return &authUseCase{
		authRepo: repo,
	}
}

func (au *authUseCase) Login(ctx context.Context, data *domain.LoginRequest) (*domain.LoginResponse, error) {
	v, err := au.authRepo.Login(ctx, data)
	if err != nil {
		return nil, err
	}
	return v, nil
}
