package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/timezone"
	"go.uber.org/zap"
)

// UserStore хранилище пользователей
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetTimezone(ctx context.Context, id int64, tz string) error
}

type UserService struct {
	userRepo UserStore
	logger   *zap.Logger
}

func NewUserService(userRepo UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetByID получает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// SetTimezone сохраняет IANA-зону пользователя; по ней проверяются его заявки
func (s *UserService) SetTimezone(ctx context.Context, id int64, tz string) (*model.User, error) {
	loc, err := timezone.LoadZone(tz)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetTimezone(ctx, id, loc.String()); err != nil {
		return nil, err
	}

	s.logger.Info("User timezone updated",
		zap.Int64("user_id", id),
		zap.String("timezone", loc.String()))

	return s.GetByID(ctx, id)
}
