package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edu-portal-api/internal/models"
)

const menuColumns = "id, title, url, position, children, created_at, updated_at"

// MenuRepository handles persistence for navigation entries.
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new repository instance.
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// ListAll returns the menu ordered by position, then insertion order.
func (r *MenuRepository) ListAll(ctx context.Context) ([]models.Menu, error) {
	query := "SELECT " + menuColumns + " FROM menu ORDER BY position ASC, created_at ASC, id ASC"
	items := []models.Menu{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

// FindByID returns a menu entry by id.
func (r *MenuRepository) FindByID(ctx context.Context, id string) (*models.Menu, error) {
	query := "SELECT " + menuColumns + " FROM menu WHERE id = $1 LIMIT 1"
	var item models.Menu
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find menu by id: %w", err)
	}
	return &item, nil
}

// Create persists a new menu entry.
func (r *MenuRepository) Create(ctx context.Context, item *models.Menu) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO menu (id, title, url, position, children, created_at, updated_at) VALUES (:id, :title, :url, :position, :children, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create menu: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a menu entry.
func (r *MenuRepository) Update(ctx context.Context, item *models.Menu) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE menu SET title = :title, url = :url, position = :position, children = :children, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	return affected(res, "update menu")
}

// Delete removes a menu entry permanently.
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	return affected(res, "delete menu")
}

// Replace swaps the whole menu for items inside one transaction.
func (r *MenuRepository) Replace(ctx context.Context, items []models.Menu) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace menu: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menu`); err != nil {
		return fmt.Errorf("replace menu: clear: %w", err)
	}
	const query = `INSERT INTO menu (id, title, url, position, children, created_at, updated_at) VALUES (:id, :title, :url, :position, :children, :created_at, :updated_at)`
	now := time.Now().UTC()
	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.CreatedAt, item.UpdatedAt = now, now
		if _, err := tx.NamedExecContext(ctx, query, item); err != nil {
			return fmt.Errorf("replace menu: insert %q: %w", item.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace menu: commit: %w", err)
	}
	return nil
}
