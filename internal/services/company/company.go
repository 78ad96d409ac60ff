// Package company содержит бизнес-логику справочника фирм.
package company

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/adaso/internal/models"
	"github.com/magabrotheeeer/adaso/internal/services/listcache"
)

const listKey = "companies:list"

// Repository определяет методы для работы с фирмами в хранилище.
type Repository interface {
	CreateCompany(ctx context.Context, c models.Company) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	UpdateCompany(ctx context.Context, id int64, p models.CompanyPatch) (*models.Company, error)
	DeleteCompany(ctx context.Context, id int64) error
}

// Service реализует операции над фирмами с кэшированием списка.
type Service struct {
	repo  Repository
	cache listcache.Cache
	log   *slog.Logger
}

// NewService создает новый экземпляр Service. cache может быть nil.
func NewService(repo Repository, cache listcache.Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// Create добавляет фирму. Название, сектор и телефон обязательны.
func (s *Service) Create(ctx context.Context, c models.Company) (*models.Company, error) {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Sector) == "" || strings.TrimSpace(c.Phone) == "" {
		return nil, fmt.Errorf("%w: name, sector and phone are required", models.ErrValidation)
	}
	created, err := s.repo.CreateCompany(ctx, c)
	if err != nil {
		return nil, err
	}
	s.log.Info("created company", slog.Int64("id", created.ID))
	listcache.Drop(ctx, s.cache, s.log, listKey)
	return created, nil
}

// List возвращает все фирмы, новые первыми.
func (s *Service) List(ctx context.Context) ([]*models.Company, error) {
	return listcache.Load(ctx, s.cache, s.log, listKey, s.repo.ListCompanies)
}

// Update применяет частичное изменение. Обязательные поля нельзя очистить.
func (s *Service) Update(ctx context.Context, id int64, p models.CompanyPatch) (*models.Company, error) {
	for _, v := range []*string{p.Name, p.Sector, p.Phone} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, fmt.Errorf("%w: name, sector and phone cannot be empty", models.ErrValidation)
		}
	}
	updated, err := s.repo.UpdateCompany(ctx, id, p)
	if err != nil {
		return nil, err
	}
	listcache.Drop(ctx, s.cache, s.log, listKey)
	return updated, nil
}

// Delete удаляет фирму.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCompany(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted company", slog.Int64("id", id))
	listcache.Drop(ctx, s.cache, s.log, listKey)
	return nil
}
