package usecase

import (
	"context"
	"time"

	"assistant/domain"
)

type userUseCase struct {
	repo    domain.UserRepo
	TimeOut time.Duration
}

func NewUserUseCase(repo domain.UserRepo, to time.Duration) domain.UserUseCase {
	return &userUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (uu *userUseCase) GetAllUsers(ctx context.Context) (*[]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	v, err := uu.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (uu *userUseCase) CreateUser(ctx context.Context, payload *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	v, err := uu.repo.CreateUser(ctx, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (uu *userUseCase) UpdateUser(ctx context.Context, userID string, payload *domain.UserUpdatePayload) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	v, err := uu.repo.UpdateUser(ctx, userID, payload)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (uu *userUseCase) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	v, err := uu.repo.FindUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (uu *userUseCase) DeleteUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	err := uu.repo.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	return nil
}
