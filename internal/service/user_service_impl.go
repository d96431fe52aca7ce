package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/repository"
	"github.com/google/uuid"
)

type userService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users}
}

func validatePattern(weekdayHours [7]float64) error {
	for i, h := range weekdayHours {
		if h < 0 || h > 24 {
			return fmt.Errorf("weekday %d hours %.1f out of range", i, h)
		}
	}
	return nil
}

func (s *userService) Create(ctx context.Context, u *domain.User) error {
	if u.Login == "" {
		return fmt.Errorf("user login is required")
	}
	if err := validatePattern(u.WeekdayHours); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return s.users.Create(ctx, u)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return s.users.GetByLogin(ctx, login)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) UpdatePattern(ctx context.Context, id string, weekdayHours [7]float64) error {
	if err := validatePattern(weekdayHours); err != nil {
		return err
	}
	return s.users.UpdatePattern(ctx, id, weekdayHours)
}
