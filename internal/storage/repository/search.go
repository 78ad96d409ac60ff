package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/adaso/internal/models"
)

// SearchCompanies ищет фирмы по подстроке в названии или секторе.
func (s *Storage) SearchCompanies(ctx context.Context, q string, limit int) ([]*models.Company, error) {
	const op = "storage.SearchCompanies"
	return listRows(ctx, s.DB, op,
		`SELECT `+companyColumns+` FROM companies
		 WHERE name ILIKE $1 OR sector ILIKE $1
		 ORDER BY id DESC LIMIT $2`, scanCompany, likePattern(q), limit)
}

// SearchVisits ищет визиты по подстроке в названии фирмы или цели визита.
func (s *Storage) SearchVisits(ctx context.Context, q string, limit int) ([]*models.Visit, error) {
	const op = "storage.SearchVisits"
	return listRows(ctx, s.DB, op,
		`SELECT `+visitColumns+` FROM visits
		 WHERE company ILIKE $1 OR purpose ILIKE $1
		 ORDER BY visit_date DESC, id DESC LIMIT $2`, scanVisit, likePattern(q), limit)
}

// SearchTransactions ищет записи доходов и расходов по подстроке в описании.
func (s *Storage) SearchTransactions(ctx context.Context, q string, limit int) ([]*models.Transaction, error) {
	const op = "storage.SearchTransactions"
	return listRows(ctx, s.DB, op,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE description ILIKE $1
		 ORDER BY tx_date DESC, id DESC LIMIT $2`, scanTransaction, likePattern(q), limit)
}

// Suggestions возвращает различные значения, содержащие q, не более perSource из каждого источника.
func (s *Storage) Suggestions(ctx context.Context, q string, perSource int) ([]string, error) {
	const op = "storage.Suggestions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT v FROM (
			      (SELECT DISTINCT name AS v FROM companies WHERE name ILIKE $1 LIMIT $2)
			      UNION (SELECT DISTINCT sector FROM companies WHERE sector ILIKE $1 LIMIT $2)
			      UNION (SELECT DISTINCT contact_person FROM companies WHERE contact_person ILIKE $1 LIMIT $2)
			      UNION (SELECT DISTINCT visitor FROM visits WHERE visitor ILIKE $1 LIMIT $2)
			      UNION (SELECT DISTINCT purpose FROM visits WHERE purpose ILIKE $1 LIMIT $2)
			      UNION (SELECT DISTINCT description FROM transactions WHERE description ILIKE $1 LIMIT $2)
			  ) AS s
			  ORDER BY v`
	rows, err := s.DB.QueryContext(ctx, query, likePattern(q), perSource)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
