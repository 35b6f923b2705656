package sqlite

import (
	"context"
	"database/sql"

	"github.com/danhawke/crewledger/internal/domain/ledger"
	"github.com/danhawke/crewledger/internal/repository"
)

// Revenue items are projected flat: each financial item carries its
// document's project and status. Status filtering stays in the calculators,
// where the qualifying set is configuration.
const revenueItemSelect = `
	SELECT fi.id, fi.document_id, fd.project_id, fi.service_module_id, fi.total_price, fd.status
	FROM financial_items fi
	JOIN financial_documents fd ON fd.id = fi.document_id
`

// RevenueItemsByProject returns a project's financial items with document
// status attached.
func (s *Store) RevenueItemsByProject(ctx context.Context, projectID string) ([]ledger.RevenueItem, error) {
	return s.queryRevenueItems(ctx, "list project revenue items",
		revenueItemSelect+` WHERE fd.project_id = ? ORDER BY fi.id`, projectID)
}

// ListRevenueItems returns all financial items with document status attached.
func (s *Store) ListRevenueItems(ctx context.Context) ([]ledger.RevenueItem, error) {
	return s.queryRevenueItems(ctx, "list revenue items", revenueItemSelect+` ORDER BY fi.id`)
}

func (s *Store) queryRevenueItems(ctx context.Context, op, query string, args ...any) ([]ledger.RevenueItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	defer rows.Close()

	var items []ledger.RevenueItem
	for rows.Next() {
		var it ledger.RevenueItem
		var serviceModuleID sql.NullString
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.ProjectID, &serviceModuleID, &it.TotalPrice, &it.Status); err != nil {
			return nil, repository.NewDataAccessError(op, err)
		}
		it.ServiceModuleID = strPtr(serviceModuleID)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewDataAccessError(op, err)
	}
	return items, nil
}

// ListServiceModules returns service modules, optionally only active ones,
// in insertion order (rowid) so report tie-breaks are stable.
func (s *Store) ListServiceModules(ctx context.Context, activeOnly bool) ([]ledger.ServiceModule, error) {
	query := `SELECT id, service_module, category, is_active FROM service_modules`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, repository.NewDataAccessError("list service modules", err)
	}
	defer rows.Close()

	var modules []ledger.ServiceModule
	for rows.Next() {
		var m ledger.ServiceModule
		var category sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &category, &m.IsActive); err != nil {
			return nil, repository.NewDataAccessError("list service modules", err)
		}
		m.Category = category.String
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewDataAccessError("list service modules", err)
	}
	return modules, nil
}
