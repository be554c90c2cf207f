package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// affected maps a write that touched no rows to sql.ErrNoRows.
func affected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// slugExists checks whether table already holds slug on a row other than excludeID.
func slugExists(ctx context.Context, db *sqlx.DB, table, slug, excludeID string) (bool, error) {
	query := "SELECT 1 FROM " + table + " WHERE slug = $1"
	args := []interface{}{slug}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}

	var exists int
	if err := db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check %s slug: %w", table, err)
	}
	return true, nil
}
