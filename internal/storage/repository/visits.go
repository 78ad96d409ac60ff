package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/adaso/internal/models"
)

const visitColumns = `id, to_char(visit_date, 'YYYY-MM-DD'), visit_time, company, visitor, purpose, status,
	COALESCE(notes, ''), COALESCE(details, ''), COALESCE(participants, ''), COALESCE(location, ''),
	COALESCE(array_to_json(files)::text, '[]'), COALESCE(income_amount, 0), COALESCE(expense_amount, 0), COALESCE(financial_note, ''), created_at`

func scanVisit(row rowScanner) (*models.Visit, error) {
	v := &models.Visit{}
	var files string
	if err := row.Scan(&v.ID, &v.Date, &v.Time, &v.Company, &v.Visitor, &v.Purpose, &v.Status,
		&v.Notes, &v.Details, &v.Participants, &v.Location, &files,
		&v.IncomeAmount, &v.ExpenseAmount, &v.FinancialNote, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.Files = []string{}
	if err := json.Unmarshal([]byte(files), &v.Files); err != nil {
		return nil, err
	}
	return v, nil
}

// filesParam сохраняет пустой список файлов как NULL.
func filesParam(files []string) any {
	if len(files) == 0 {
		return nil
	}
	return files
}

// CreateVisit сохраняет визит и возвращает созданную запись.
func (s *Storage) CreateVisit(ctx context.Context, v models.Visit) (*models.Visit, error) {
	const op = "storage.CreateVisit"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO visits (visit_date, visit_time, company, visitor, purpose, status, notes,
			      details, participants, location, files, income_amount, expense_amount, financial_note)
			  VALUES (to_date($1, 'YYYY-MM-DD'), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  RETURNING ` + visitColumns
	created, err := scanVisit(s.DB.QueryRowContext(ctx, query,
		v.Date, v.Time, v.Company, v.Visitor, v.Purpose, v.Status, nullIfEmpty(v.Notes),
		nullIfEmpty(v.Details), nullIfEmpty(v.Participants), nullIfEmpty(v.Location),
		filesParam(v.Files), v.IncomeAmount, v.ExpenseAmount, nullIfEmpty(v.FinancialNote)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListVisits возвращает все визиты, последние по дате и времени первыми.
func (s *Storage) ListVisits(ctx context.Context) ([]*models.Visit, error) {
	const op = "storage.ListVisits"
	return listRows(ctx, s.DB, op,
		`SELECT `+visitColumns+` FROM visits ORDER BY visit_date DESC, visit_time DESC, id DESC`, scanVisit)
}

// UpdateVisit применяет патч к визиту и возвращает обновленную запись.
// Пустой список файлов в патче очищает поле.
func (s *Storage) UpdateVisit(ctx context.Context, id int64, p models.VisitPatch) (*models.Visit, error) {
	const op = "storage.UpdateVisit"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var files any
	setFiles := p.Files != nil
	if setFiles {
		files = filesParam(*p.Files)
	}

	query := `UPDATE visits
			  SET visit_date = COALESCE(to_date($1, 'YYYY-MM-DD'), visit_date),
			      visit_time = COALESCE($2, visit_time),
			      company = COALESCE($3, company),
			      visitor = COALESCE($4, visitor),
			      purpose = COALESCE($5, purpose),
			      status = COALESCE($6, status),
			      notes = COALESCE($7, notes),
			      details = COALESCE($8, details),
			      participants = COALESCE($9, participants),
			      location = COALESCE($10, location),
			      files = CASE WHEN $11 THEN $12::text[] ELSE files END,
			      income_amount = COALESCE($13, income_amount),
			      expense_amount = COALESCE($14, expense_amount),
			      financial_note = COALESCE($15, financial_note)
			  WHERE id = $16
			  RETURNING ` + visitColumns
	v, err := scanVisit(s.DB.QueryRowContext(ctx, query,
		p.Date, p.Time, p.Company, p.Visitor, p.Purpose, p.Status, p.Notes, p.Details,
		p.Participants, p.Location, setFiles, files, p.IncomeAmount, p.ExpenseAmount,
		p.FinancialNote, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// DeleteVisit удаляет визит по ID.
func (s *Storage) DeleteVisit(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "storage.DeleteVisit", `DELETE FROM visits WHERE id = $1`, id)
}
