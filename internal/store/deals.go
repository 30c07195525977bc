package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/crmd/internal/model"
)

const dealCols = "d.id, d.contact_id, d.title, d.value, d.probability, d.stage, d.status, " +
	"d.lead_source, d.budget, d.authority, d.need, d.timeline, d.expected_close_date, d.closed_revenue, d.created_at"

// CreateDeal inserts a deal, links the given SKUs, and returns the stored
// record. An empty status defaults to open.
func (s *Store) CreateDeal(ctx context.Context, d model.Deal, skuIDs []int64) (*model.Deal, error) {
	if d.Status == "" {
		d.Status = model.StatusOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO deals (contact_id, title, value, probability, stage, status,
		                    lead_source, budget, authority, need, timeline,
		                    expected_close_date, closed_revenue, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullInt(d.ContactID), d.Title, nullFloat(d.Value), nullInt(d.Probability),
		nullStr(d.Stage), d.Status, nullStr(d.LeadSource), nullStr(d.Budget),
		nullStr(d.Authority), nullStr(d.Need), nullStr(d.Timeline),
		nullStr(d.ExpectedCloseDate), d.ClosedRevenue, nowRFC3339(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating deal: %w", classifyErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, skuID := range skuIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO deal_skus (deal_id, sku_id) VALUES (?, ?)", id, skuID); err != nil {
			return nil, fmt.Errorf("linking sku %d: %w", skuID, classifyErr(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetDeal(ctx, id)
}

// GetDeal returns one deal by id with its contact name and SKUs joined in,
// or ErrNotFound.
func (s *Store) GetDeal(ctx context.Context, id int64) (*model.Deal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+dealCols+`, c.name AS contact_name
		 FROM deals d
		 LEFT JOIN contacts c ON d.contact_id = c.id
		 WHERE d.id = ?`, id)

	d, err := scanDeal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting deal: %w", err)
	}

	if err := s.attachSKUs(ctx, []*model.Deal{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// ListDeals returns all deals newest first, each with the linked contact's
// name and SKU list.
func (s *Store) ListDeals(ctx context.Context) ([]model.Deal, error) {
	return s.listDeals(ctx, "", nil)
}

// ListOpenDeals returns open deals ordered for pipeline review: soonest
// expected close first, largest value first within a date.
func (s *Store) ListOpenDeals(ctx context.Context) ([]model.Deal, error) {
	return s.listDeals(ctx,
		"WHERE d.status = ? ORDER BY d.expected_close_date ASC, d.value DESC",
		[]any{model.StatusOpen})
}

func (s *Store) listDeals(ctx context.Context, clause string, args []any) ([]model.Deal, error) {
	if clause == "" {
		clause = "ORDER BY d.created_at DESC"
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+dealCols+`, c.name AS contact_name
		 FROM deals d
		 LEFT JOIN contacts c ON d.contact_id = c.id `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ptrs []*model.Deal
	for rows.Next() {
		d, err := scanDeal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}
		ptrs = append(ptrs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachSKUs(ctx, ptrs); err != nil {
		return nil, err
	}

	deals := make([]model.Deal, len(ptrs))
	for i, d := range ptrs {
		deals[i] = *d
	}
	return deals, nil
}

// UpdateDeal applies a partial update, resyncing SKU links when sku_ids is
// present, and returns the stored record.
func (s *Store) UpdateDeal(ctx context.Context, id int64, upd model.DealUpdate) (*model.Deal, error) {
	sets := []string{}
	args := []any{}

	if upd.ContactID != nil {
		sets = append(sets, "contact_id = ?")
		args = append(args, *upd.ContactID)
	}
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Value != nil {
		sets = append(sets, "value = ?")
		args = append(args, *upd.Value)
	}
	if upd.Probability != nil {
		sets = append(sets, "probability = ?")
		args = append(args, *upd.Probability)
	}
	if upd.Stage != nil {
		sets = append(sets, "stage = ?")
		args = append(args, *upd.Stage)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.LeadSource != nil {
		sets = append(sets, "lead_source = ?")
		args = append(args, *upd.LeadSource)
	}
	if upd.Budget != nil {
		sets = append(sets, "budget = ?")
		args = append(args, *upd.Budget)
	}
	if upd.Authority != nil {
		sets = append(sets, "authority = ?")
		args = append(args, *upd.Authority)
	}
	if upd.Need != nil {
		sets = append(sets, "need = ?")
		args = append(args, *upd.Need)
	}
	if upd.Timeline != nil {
		sets = append(sets, "timeline = ?")
		args = append(args, *upd.Timeline)
	}
	if upd.ExpectedCloseDate != nil {
		sets = append(sets, "expected_close_date = ?")
		args = append(args, *upd.ExpectedCloseDate)
	}
	if upd.ClosedRevenue != nil {
		sets = append(sets, "closed_revenue = ?")
		args = append(args, *upd.ClosedRevenue)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if len(sets) > 0 {
		args = append(args, id)
		res, err := tx.ExecContext(ctx,
			"UPDATE deals SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("updating deal: %w", classifyErr(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrNotFound
		}
	} else {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM deals WHERE id = ?", id).Scan(&exists)
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, ErrNotFound
		}
	}

	if upd.SKUIDs != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM deal_skus WHERE deal_id = ?", id); err != nil {
			return nil, fmt.Errorf("clearing sku links: %w", err)
		}
		for _, skuID := range upd.SKUIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO deal_skus (deal_id, sku_id) VALUES (?, ?)", id, skuID); err != nil {
				return nil, fmt.Errorf("linking sku %d: %w", skuID, classifyErr(err))
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetDeal(ctx, id)
}

// DeleteDeal removes a deal; its SKU links cascade.
func (s *Store) DeleteDeal(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM deals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting deal: %w", err)
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

// ListSKUs returns the full catalog ordered by category, subcategory, name.
func (s *Store) ListSKUs(ctx context.Context) ([]model.SKU, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, subcategory FROM skus ORDER BY category, subcategory, name")
	if err != nil {
		return nil, fmt.Errorf("listing skus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	skus := []model.SKU{}
	for rows.Next() {
		var sku model.SKU
		if err := rows.Scan(&sku.ID, &sku.Name, &sku.Category, &sku.Subcategory); err != nil {
			return nil, fmt.Errorf("scanning sku: %w", err)
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}

// attachSKUs loads the SKU lists for the given deals in one query.
func (s *Store) attachSKUs(ctx context.Context, deals []*model.Deal) error {
	if len(deals) == 0 {
		return nil
	}

	idx := make(map[int64]*model.Deal, len(deals))
	marks := make([]string, 0, len(deals))
	args := make([]any, 0, len(deals))
	for _, d := range deals {
		d.SKUs = []model.SKU{}
		idx[d.ID] = d
		marks = append(marks, "?")
		args = append(args, d.ID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT ds.deal_id, s.id, s.name, s.category, s.subcategory
		 FROM deal_skus ds
		 INNER JOIN skus s ON s.id = ds.sku_id
		 WHERE ds.deal_id IN (`+strings.Join(marks, ", ")+`)
		 ORDER BY s.category, s.subcategory, s.name`, args...)
	if err != nil {
		return fmt.Errorf("loading deal skus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var dealID int64
		var sku model.SKU
		if err := rows.Scan(&dealID, &sku.ID, &sku.Name, &sku.Category, &sku.Subcategory); err != nil {
			return fmt.Errorf("scanning deal sku: %w", err)
		}
		if d, ok := idx[dealID]; ok {
			d.SKUs = append(d.SKUs, sku)
		}
	}
	return rows.Err()
}

func scanDeal(scan func(dest ...any) error) (*model.Deal, error) {
	var (
		d                            model.Deal
		contactID, probability       sql.NullInt64
		value                        sql.NullFloat64
		stage, leadSource, budget    sql.NullString
		authority, need, timeline    sql.NullString
		expectedClose, contactName   sql.NullString
	)

	err := scan(&d.ID, &contactID, &d.Title, &value, &probability, &stage, &d.Status,
		&leadSource, &budget, &authority, &need, &timeline, &expectedClose, &d.ClosedRevenue,
		&d.CreatedAt, &contactName)
	if err != nil {
		return nil, err
	}

	d.ContactID = intPtr(contactID)
	d.Value = floatPtr(value)
	d.Probability = intPtr(probability)
	d.Stage = strPtr(stage)
	d.LeadSource = strPtr(leadSource)
	d.Budget = strPtr(budget)
	d.Authority = strPtr(authority)
	d.Need = strPtr(need)
	d.Timeline = strPtr(timeline)
	d.ExpectedCloseDate = strPtr(expectedClose)
	d.ContactName = strPtr(contactName)
	return &d, nil
}
