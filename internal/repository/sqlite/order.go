package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/resequence"
)

// orderTable describes how one table stores its display order.
// groupColumn is empty for tables with a single ordering group.
type orderTable struct {
	table       string
	resource    string
	groupColumn string
	// groupValue converts a resequence group name into the column value.
	groupValue func(group string) any
}

var (
	projectOrder = orderTable{table: "projects", resource: "project"}
	skillOrder   = orderTable{
		table:       "skills",
		resource:    "skill",
		groupColumn: "category",
		groupValue:  func(g string) any { return g },
	}
	testimonialOrder = orderTable{
		table:       "testimonials",
		resource:    "testimonial",
		groupColumn: "is_visible",
		groupValue:  func(g string) any { return g == groupVisible },
	}
)

// Testimonial ordering groups, matching model.Testimonial.VisibilityGroup.
const (
	groupVisible = "visible"
	groupHidden  = "hidden"
)

// apply writes every placement in one transaction. If any row is missing
// or any statement fails, nothing is written.
func (o orderTable) apply(ctx context.Context, conn *sql.DB, items []resequence.Item) error {
	if len(items) == 0 {
		return nil
	}

	stmt := fmt.Sprintf(`UPDATE %s SET sort_order = ? WHERE id = ?`, o.table)
	if o.groupColumn != "" {
		stmt = fmt.Sprintf(`UPDATE %s SET sort_order = ?, %s = ? WHERE id = ?`, o.table, o.groupColumn)
	}

	err := withTx(ctx, conn, func(tx *sql.Tx) error {
		for _, it := range items {
			args := []any{it.Order}
			if o.groupColumn != "" {
				args = append(args, o.groupValue(it.Group))
			}
			args = append(args, it.ID)

			res, err := tx.ExecContext(ctx, stmt, args...)
			if err != nil {
				return fmt.Errorf("updating order of %s %s: %w", o.resource, it.ID, err)
			}
			if err := checkAffected(res, apperror.NotFound(o.resource, it.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sqlite: applying %s order: %w", o.resource, err)
	}
	return nil
}

// placements runs a query selecting (id, group, order) triples.
func placements(ctx context.Context, conn *sql.DB, query string, args ...any) ([]resequence.Item, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading placements: %w", err)
	}
	defer rows.Close()

	var items []resequence.Item
	for rows.Next() {
		var it resequence.Item
		if err := rows.Scan(&it.ID, &it.Group, &it.Order); err != nil {
			return nil, fmt.Errorf("sqlite: scanning placement: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating placements: %w", err)
	}
	return items, nil
}
