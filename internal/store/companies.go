package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/crmd/internal/model"
)

// CreateCompany inserts a company and returns the stored record.
func (s *Store) CreateCompany(ctx context.Context, c model.Company) (*model.Company, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO companies (name, website, industry, notes, created_at) VALUES (?, ?, ?, ?, ?)",
		c.Name, nullStr(c.Website), nullStr(c.Industry), nullStr(c.Notes), nowRFC3339(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetCompany(ctx, id)
}

// GetCompany returns one company by id, or ErrNotFound.
func (s *Store) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	var (
		c                        model.Company
		website, industry, notes sql.NullString
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, website, industry, notes, created_at FROM companies WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &website, &industry, &notes, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting company: %w", err)
	}

	c.Website = strPtr(website)
	c.Industry = strPtr(industry)
	c.Notes = strPtr(notes)
	return &c, nil
}

// ListCompanies returns all companies ordered by name, each with its linked
// contact count.
func (s *Store) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.website, c.industry, c.notes, c.created_at, COUNT(ct.id)
		 FROM companies c
		 LEFT JOIN contacts ct ON c.id = ct.company_id
		 GROUP BY c.id
		 ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	companies := []model.Company{}
	for rows.Next() {
		var (
			c                        model.Company
			website, industry, notes sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &website, &industry, &notes, &c.CreatedAt, &c.ContactCount); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		c.Website = strPtr(website)
		c.Industry = strPtr(industry)
		c.Notes = strPtr(notes)
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// UpdateCompany applies a partial update and returns the stored record.
func (s *Store) UpdateCompany(ctx context.Context, id int64, upd model.CompanyUpdate) (*model.Company, error) {
	sets := []string{}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Website != nil {
		sets = append(sets, "website = ?")
		args = append(args, *upd.Website)
	}
	if upd.Industry != nil {
		sets = append(sets, "industry = ?")
		args = append(args, *upd.Industry)
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *upd.Notes)
	}

	if len(sets) == 0 {
		return s.GetCompany(ctx, id)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		"UPDATE companies SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetCompany(ctx, id)
}

// DeleteCompany removes a company. Linked contacts keep their rows with
// company_id nulled by the schema's ON DELETE SET NULL.
func (s *Store) DeleteCompany(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM companies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
