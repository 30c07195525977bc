package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/crmd/internal/model"
)

const contactCols = "c.id, c.name, c.email, c.phone, c.company, c.company_id, c.title, c.website, c.additional_info, c.created_at"

// CreateContact inserts a contact and returns the stored record.
func (s *Store) CreateContact(ctx context.Context, c model.Contact) (*model.Contact, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (name, email, phone, company, company_id, title, website, additional_info, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, nullStr(c.Email), nullStr(c.Phone), nullStr(c.Company), nullInt(c.CompanyID),
		nullStr(c.Title), nullStr(c.Website), nullStr(c.AdditionalInfo), nowRFC3339(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", classifyErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetContact(ctx, id)
}

// GetContact returns one contact by id, or ErrNotFound.
func (s *Store) GetContact(ctx context.Context, id int64) (*model.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+contactCols+" FROM contacts c WHERE c.id = ?", id)

	c, err := scanContact(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}
	return c, nil
}

// ListContacts returns all contacts ordered by name, with the linked
// company's name joined in.
func (s *Store) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactCols+`, co.name AS company_name
		 FROM contacts c
		 LEFT JOIN companies co ON c.company_id = co.id
		 ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contacts := []model.Contact{}
	for rows.Next() {
		var companyName sql.NullString
		c, err := scanContact(func(dest ...any) error {
			return rows.Scan(append(dest, &companyName)...)
		})
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		c.CompanyName = strPtr(companyName)
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// ListContactsByCompany returns the contacts linked to one company.
func (s *Store) ListContactsByCompany(ctx context.Context, companyID int64) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+contactCols+" FROM contacts c WHERE c.company_id = ? ORDER BY c.name", companyID)
	if err != nil {
		return nil, fmt.Errorf("listing company contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contacts := []model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// UpdateContact applies a partial update and returns the stored record.
// Fields left nil in upd keep their prior values.
func (s *Store) UpdateContact(ctx context.Context, id int64, upd model.ContactUpdate) (*model.Contact, error) {
	sets := []string{}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *upd.Phone)
	}
	if upd.Company != nil {
		sets = append(sets, "company = ?")
		args = append(args, *upd.Company)
	}
	if upd.CompanyID != nil {
		sets = append(sets, "company_id = ?")
		args = append(args, *upd.CompanyID)
	}
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Website != nil {
		sets = append(sets, "website = ?")
		args = append(args, *upd.Website)
	}
	if upd.AdditionalInfo != nil {
		sets = append(sets, "additional_info = ?")
		args = append(args, *upd.AdditionalInfo)
	}

	if len(sets) == 0 {
		return s.GetContact(ctx, id)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		"UPDATE contacts SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("updating contact: %w", classifyErr(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetContact(ctx, id)
}

// DeleteContact removes a contact. Deals referencing it keep their rows with
// contact_id nulled by the schema's ON DELETE SET NULL.
func (s *Store) DeleteContact(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
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

func scanContact(scan func(dest ...any) error) (*model.Contact, error) {
	var (
		c              model.Contact
		email, phone   sql.NullString
		company, title sql.NullString
		website, info  sql.NullString
		companyID      sql.NullInt64
	)

	err := scan(&c.ID, &c.Name, &email, &phone, &company, &companyID, &title, &website, &info, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	c.Email = strPtr(email)
	c.Phone = strPtr(phone)
	c.Company = strPtr(company)
	c.CompanyID = intPtr(companyID)
	c.Title = strPtr(title)
	c.Website = strPtr(website)
	c.AdditionalInfo = strPtr(info)
	return &c, nil
}
