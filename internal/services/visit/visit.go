// Package visit содержит бизнес-логику журнала визитов.
package visit

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/adaso/internal/models"
	"github.com/magabrotheeeer/adaso/internal/services/listcache"
)

const (
	listKey    = "visits:list"
	dateLayout = "2006-01-02"
)

var (
	timePattern     = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	turkishLetters  = strings.NewReplacer(
		"ü", "u", "Ü", "U",
		"ı", "i", "İ", "I",
		"ğ", "g", "Ğ", "G",
		"ş", "s", "Ş", "S",
		"ç", "c", "Ç", "C",
		"ö", "o", "Ö", "O",
	)
)

// Repository определяет методы для работы с визитами в хранилище.
type Repository interface {
	CreateVisit(ctx context.Context, v models.Visit) (*models.Visit, error)
	ListVisits(ctx context.Context) ([]*models.Visit, error)
	UpdateVisit(ctx context.Context, id int64, p models.VisitPatch) (*models.Visit, error)
	DeleteVisit(ctx context.Context, id int64) error
}

// Service реализует операции над визитами с кэшированием списка.
type Service struct {
	repo  Repository
	cache listcache.Cache
	log   *slog.Logger
}

// NewService создает новый экземпляр Service. cache может быть nil.
func NewService(repo Repository, cache listcache.Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// NormalizeFileNames транслитерирует турецкие буквы, заменяет небезопасные
// символы на "_" и отбрасывает пустые имена.
func NormalizeFileNames(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		out = append(out, unsafeFileChars.ReplaceAllString(turkishLetters.Replace(f), "_"))
	}
	return out
}

func checkDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", models.ErrValidation)
	}
	return nil
}

func checkTime(t string) error {
	if !timePattern.MatchString(t) {
		return models.ErrInvalidTime
	}
	return nil
}

func checkStatus(status string) error {
	if !models.ValidVisitStatus(status) {
		return fmt.Errorf("%w: status must be one of %s, %s, %s",
			models.ErrValidation, models.VisitPlanned, models.VisitCompleted, models.VisitCancelled)
	}
	return nil
}

func checkAmounts(values ...decimal.Decimal) error {
	for _, v := range values {
		if v.IsNegative() {
			return fmt.Errorf("%w: amounts cannot be negative", models.ErrValidation)
		}
	}
	return nil
}

// Create добавляет визит.
func (s *Service) Create(ctx context.Context, v models.Visit) (*models.Visit, error) {
	for _, field := range []string{v.Date, v.Time, v.Company, v.Visitor, v.Purpose, v.Status} {
		if strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("%w: date, time, company, visitor, purpose and status are required", models.ErrValidation)
		}
	}
	if err := checkDate(v.Date); err != nil {
		return nil, err
	}
	if err := checkTime(v.Time); err != nil {
		return nil, err
	}
	if err := checkStatus(v.Status); err != nil {
		return nil, err
	}
	if err := checkAmounts(v.IncomeAmount, v.ExpenseAmount); err != nil {
		return nil, err
	}
	v.Files = NormalizeFileNames(v.Files)

	created, err := s.repo.CreateVisit(ctx, v)
	if err != nil {
		return nil, err
	}
	s.log.Info("created visit", slog.Int64("id", created.ID))
	listcache.Drop(ctx, s.cache, s.log, listKey)
	return created, nil
}

// List возвращает все визиты, последние первыми.
func (s *Service) List(ctx context.Context) ([]*models.Visit, error) {
	return listcache.Load(ctx, s.cache, s.log, listKey, s.repo.ListVisits)
}

// Update применяет частичное изменение с теми же проверками, что и Create.
func (s *Service) Update(ctx context.Context, id int64, p models.VisitPatch) (*models.Visit, error) {
	for _, v := range []*string{p.Date, p.Time, p.Company, p.Visitor, p.Purpose, p.Status} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, fmt.Errorf("%w: required fields cannot be empty", models.ErrValidation)
		}
	}
	if p.Date != nil {
		if err := checkDate(*p.Date); err != nil {
			return nil, err
		}
	}
	if p.Time != nil {
		if err := checkTime(*p.Time); err != nil {
			return nil, err
		}
	}
	if p.Status != nil {
		if err := checkStatus(*p.Status); err != nil {
			return nil, err
		}
	}
	if p.IncomeAmount != nil {
		if err := checkAmounts(*p.IncomeAmount); err != nil {
			return nil, err
		}
	}
	if p.ExpenseAmount != nil {
		if err := checkAmounts(*p.ExpenseAmount); err != nil {
			return nil, err
		}
	}
	if p.Files != nil {
		files := NormalizeFileNames(*p.Files)
		p.Files = &files
	}

	updated, err := s.repo.UpdateVisit(ctx, id, p)
	if err != nil {
		return nil, err
	}
	listcache.Drop(ctx, s.cache, s.log, listKey)
	return updated, nil
}

// Delete удаляет визит.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteVisit(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted visit", slog.Int64("id", id))
	listcache.Drop(ctx, s.cache, s.log, listKey)
	return nil
}
