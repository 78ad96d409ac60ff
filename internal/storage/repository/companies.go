package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/adaso/internal/models"
)

const companyColumns = `id, name, sector, phone, COALESCE(email, ''), COALESCE(contact_person, ''),
	COALESCE(contact_phone, ''), COALESCE(address, ''), created_at`

func scanCompany(row rowScanner) (*models.Company, error) {
	c := &models.Company{}
	if err := row.Scan(&c.ID, &c.Name, &c.Sector, &c.Phone, &c.Email, &c.ContactPerson,
		&c.ContactPhone, &c.Address, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCompany сохраняет фирму и возвращает созданную запись.
func (s *Storage) CreateCompany(ctx context.Context, c models.Company) (*models.Company, error) {
	const op = "storage.CreateCompany"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO companies (name, sector, phone, email, contact_person, contact_phone, address)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + companyColumns
	created, err := scanCompany(s.DB.QueryRowContext(ctx, query,
		c.Name, c.Sector, c.Phone, nullIfEmpty(c.Email), nullIfEmpty(c.ContactPerson),
		nullIfEmpty(c.ContactPhone), nullIfEmpty(c.Address)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListCompanies возвращает все фирмы, новые первыми.
func (s *Storage) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	const op = "storage.ListCompanies"
	return listRows(ctx, s.DB, op, `SELECT `+companyColumns+` FROM companies ORDER BY id DESC`, scanCompany)
}

// UpdateCompany применяет патч к фирме и возвращает обновленную запись.
func (s *Storage) UpdateCompany(ctx context.Context, id int64, p models.CompanyPatch) (*models.Company, error) {
	const op = "storage.UpdateCompany"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE companies
			  SET name = COALESCE($1, name),
			      sector = COALESCE($2, sector),
			      phone = COALESCE($3, phone),
			      email = COALESCE($4, email),
			      contact_person = COALESCE($5, contact_person),
			      contact_phone = COALESCE($6, contact_phone),
			      address = COALESCE($7, address)
			  WHERE id = $8
			  RETURNING ` + companyColumns
	c, err := scanCompany(s.DB.QueryRowContext(ctx, query,
		p.Name, p.Sector, p.Phone, p.Email, p.ContactPerson, p.ContactPhone, p.Address, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// DeleteCompany удаляет фирму по ID.
func (s *Storage) DeleteCompany(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "storage.DeleteCompany", `DELETE FROM companies WHERE id = $1`, id)
}

func (s *Storage) deleteByID(ctx context.Context, op, query string, id int64) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// listRows выполняет запрос и сканирует все строки функцией scan.
func listRows[T any](ctx context.Context, db *sql.DB, op, query string, scan func(rowScanner) (*T, error), args ...any) ([]*T, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
