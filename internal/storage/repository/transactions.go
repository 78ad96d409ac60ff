package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/adaso/internal/models"
)

const transactionColumns = `id, to_char(tx_date, 'YYYY-MM-DD'), description, category, tx_type, amount, created_at`

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	if err := row.Scan(&t.ID, &t.Date, &t.Description, &t.Category, &t.Type, &t.Amount, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTransaction сохраняет запись о доходе или расходе.
func (s *Storage) CreateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	const op = "storage.CreateTransaction"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO transactions (tx_date, description, category, tx_type, amount)
			  VALUES (to_date($1, 'YYYY-MM-DD'), $2, $3, $4, $5)
			  RETURNING ` + transactionColumns
	created, err := scanTransaction(s.DB.QueryRowContext(ctx, query,
		t.Date, t.Description, t.Category, t.Type, t.Amount))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListTransactions возвращает все записи, последние по дате первыми.
func (s *Storage) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	return listRows(ctx, s.DB, op,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY tx_date DESC, id DESC`, scanTransaction)
}

// UpdateTransaction применяет патч к записи и возвращает обновленную запись.
func (s *Storage) UpdateTransaction(ctx context.Context, id int64, p models.TransactionPatch) (*models.Transaction, error) {
	const op = "storage.UpdateTransaction"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE transactions
			  SET tx_date = COALESCE(to_date($1, 'YYYY-MM-DD'), tx_date),
			      description = COALESCE($2, description),
			      category = COALESCE($3, category),
			      tx_type = COALESCE($4, tx_type),
			      amount = COALESCE($5, amount)
			  WHERE id = $6
			  RETURNING ` + transactionColumns
	t, err := scanTransaction(s.DB.QueryRowContext(ctx, query,
		p.Date, p.Description, p.Category, p.Type, p.Amount, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// DeleteTransaction удаляет запись по ID.
func (s *Storage) DeleteTransaction(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "storage.DeleteTransaction", `DELETE FROM transactions WHERE id = $1`, id)
}

// SummarizeTransactions считает суммы доходов и расходов за период.
func (s *Storage) SummarizeTransactions(ctx context.Context, f models.SummaryFilter) (*models.TransactionSummary, error) {
	const op = "storage.SummarizeTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COALESCE(SUM(amount) FILTER (WHERE tx_type = 'Gelir'), 0),
			      COALESCE(SUM(amount) FILTER (WHERE tx_type = 'Gider'), 0)
			  FROM transactions
			  WHERE ($1::date IS NULL OR tx_date >= $1::date)
			    AND ($2::date IS NULL OR tx_date <= $2::date)`
	var sum models.TransactionSummary
	if err := s.DB.QueryRowContext(ctx, query, f.From, f.To).Scan(&sum.Income, &sum.Expense); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sum.Net = sum.Income.Sub(sum.Expense)
	return &sum, nil
}
