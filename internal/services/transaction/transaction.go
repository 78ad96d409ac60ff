// Package transaction содержит бизнес-логику учета доходов и расходов.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/adaso/internal/models"
	"github.com/magabrotheeeer/adaso/internal/services/listcache"
)

const (
	listKey    = "transactions:list"
	dateLayout = "2006-01-02"
)

// Repository определяет методы для работы с записями доходов и расходов.
type Repository interface {
	CreateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error)
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, p models.TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	SummarizeTransactions(ctx context.Context, f models.SummaryFilter) (*models.TransactionSummary, error)
}

// Service реализует операции над записями доходов и расходов.
type Service struct {
	repo  Repository
	cache listcache.Cache
	log   *slog.Logger
}

// NewService создает новый экземпляр Service. cache может быть nil.
func NewService(repo Repository, cache listcache.Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

func checkType(t string) error {
	if !models.ValidTransactionType(t) {
		return fmt.Errorf("%w: type must be %s or %s", models.ErrValidation, models.TransactionIncome, models.TransactionExpense)
	}
	return nil
}

func checkAmount(a decimal.Decimal) error {
	if !a.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be in YYYY-MM-DD format", models.ErrValidation, field)
	}
	return d, nil
}

// Create добавляет запись. Все поля обязательны.
func (s *Service) Create(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	for _, field := range []string{t.Date, t.Description, t.Category, t.Type} {
		if strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("%w: date, description, category, type and amount are required", models.ErrValidation)
		}
	}
	if _, err := parseDate("date", t.Date); err != nil {
		return nil, err
	}
	if err := checkType(t.Type); err != nil {
		return nil, err
	}
	if err := checkAmount(t.Amount); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTransaction(ctx, t)
	if err != nil {
		return nil, err
	}
	s.log.Info("created transaction", slog.Int64("id", created.ID), slog.String("type", created.Type))
	listcache.Drop(ctx, s.cache, s.log, listKey)
	return created, nil
}

// List возвращает все записи, последние первыми.
func (s *Service) List(ctx context.Context) ([]*models.Transaction, error) {
	return listcache.Load(ctx, s.cache, s.log, listKey, s.repo.ListTransactions)
}

// Update применяет частичное изменение.
func (s *Service) Update(ctx context.Context, id int64, p models.TransactionPatch) (*models.Transaction, error) {
	for _, v := range []*string{p.Date, p.Description, p.Category, p.Type} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, fmt.Errorf("%w: required fields cannot be empty", models.ErrValidation)
		}
	}
	if p.Date != nil {
		if _, err := parseDate("date", *p.Date); err != nil {
			return nil, err
		}
	}
	if p.Type != nil {
		if err := checkType(*p.Type); err != nil {
			return nil, err
		}
	}
	if p.Amount != nil {
		if err := checkAmount(*p.Amount); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateTransaction(ctx, id, p)
	if err != nil {
		return nil, err
	}
	listcache.Drop(ctx, s.cache, s.log, listKey)
	return updated, nil
}

// Delete удаляет запись.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted transaction", slog.Int64("id", id))
	listcache.Drop(ctx, s.cache, s.log, listKey)
	return nil
}

// Summary считает доходы, расходы и их разницу. Пустые границы периода не применяются.
func (s *Service) Summary(ctx context.Context, from, to string) (*models.TransactionSummary, error) {
	var f models.SummaryFilter
	if from != "" {
		d, err := parseDate("from", from)
		if err != nil {
			return nil, err
		}
		f.From = &d
	}
	if to != "" {
		d, err := parseDate("to", to)
		if err != nil {
			return nil, err
		}
		f.To = &d
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, fmt.Errorf("%w: from must not be after to", models.ErrValidation)
	}
	return s.repo.SummarizeTransactions(ctx, f)
}
