// Package user содержит бизнес-логику профиля пользователя.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/adaso/internal/models"
)

// Repository определяет методы для работы с профилем в хранилище.
type Repository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error)
}

// Service реализует чтение и изменение профиля.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Profile возвращает профиль пользователя.
func (s *Service) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

// UpdateProfile применяет частичное изменение профиля. Пустой патч
// возвращает текущий профиль без записи.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	if patch.Empty() {
		return s.Profile(ctx, userID)
	}
	for _, v := range []*string{patch.Email, patch.Username} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, fmt.Errorf("%w: email and username cannot be empty", models.ErrValidation)
		}
	}

	u, err := s.repo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info("profile updated", slog.String("user_id", userID))
	p := u.Profile()
	return &p, nil
}
