// Package search реализует сквозной поиск по фирмам, визитам и записям доходов и расходов.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/adaso/internal/models"
)

const (
	// ResultLimit: максимум строк из каждого источника в результатах поиска.
	ResultLimit = 10
	// SuggestionLimit: максимум подсказок из каждого источника.
	SuggestionLimit = 5
)

var visitStatuses = map[string]string{
	models.VisitPlanned:   "planlandı",
	models.VisitCompleted: "görüşme-yapılan",
	models.VisitCancelled: "ziyaret-edilmedi",
}

// Repository определяет поисковые запросы к хранилищу.
type Repository interface {
	SearchCompanies(ctx context.Context, q string, limit int) ([]*models.Company, error)
	SearchVisits(ctx context.Context, q string, limit int) ([]*models.Visit, error)
	SearchTransactions(ctx context.Context, q string, limit int) ([]*models.Transaction, error)
	Suggestions(ctx context.Context, q string, perSource int) ([]string, error)
}

// Service выполняет поиск.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Search ищет q во всех источниках параллельно. Порядок результата: фирмы,
// визиты, записи доходов и расходов.
func (s *Service) Search(ctx context.Context, q string) ([]models.SearchResult, error) {
	const op = "search.Search"
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.SearchResult{}, nil
	}

	var (
		companies    []*models.Company
		visits       []*models.Visit
		transactions []*models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		companies, err = s.repo.SearchCompanies(gctx, q, ResultLimit)
		return err
	})
	g.Go(func() (err error) {
		visits, err = s.repo.SearchVisits(gctx, q, ResultLimit)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = s.repo.SearchTransactions(gctx, q, ResultLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := make([]models.SearchResult, 0, len(companies)+len(visits)+len(transactions))
	for _, c := range companies {
		results = append(results, models.SearchResult{
			Name:   c.Name,
			Detail: c.Sector,
			Status: models.SearchStatusCompany,
			Type:   models.SearchTypeCompany,
		})
	}
	for _, v := range visits {
		status, ok := visitStatuses[v.Status]
		if !ok {
			status = visitStatuses[models.VisitPlanned]
		}
		results = append(results, models.SearchResult{
			Date:   v.Date,
			Name:   v.Company,
			Detail: v.Purpose,
			Status: status,
			Type:   models.SearchTypeVisit,
		})
	}
	for _, t := range transactions {
		results = append(results, models.SearchResult{
			Date:   t.Date,
			Name:   t.Description,
			Detail: t.Amount.StringFixed(2) + " ₺",
			Status: strings.ToLower(t.Type),
			Type:   t.Type,
		})
	}
	s.log.Debug("search completed", slog.String("q", q), slog.Int("results", len(results)))
	return results, nil
}

// Suggestions возвращает различные значения полей, содержащие q.
func (s *Service) Suggestions(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}
	return s.repo.Suggestions(ctx, q, SuggestionLimit)
}
