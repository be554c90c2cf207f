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

const newsColumns = "id, title, content, summary, publish_date, category, is_featured, slug, created_at, updated_at"

// NewsRepository handles persistence for news items.
type NewsRepository struct {
	db *sqlx.DB
}

// NewNewsRepository creates a new repository instance.
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// ListAll returns every news item in insertion order.
func (r *NewsRepository) ListAll(ctx context.Context) ([]models.News, error) {
	query := "SELECT " + newsColumns + " FROM news ORDER BY created_at ASC, id ASC"
	items := []models.News{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

// FindBySlug returns a news item by slug.
func (r *NewsRepository) FindBySlug(ctx context.Context, slug string) (*models.News, error) {
	query := "SELECT " + newsColumns + " FROM news WHERE slug = $1 LIMIT 1"
	var item models.News
	if err := r.db.GetContext(ctx, &item, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find news by slug: %w", err)
	}
	return &item, nil
}

// FindByID returns a news item by id.
func (r *NewsRepository) FindByID(ctx context.Context, id string) (*models.News, error) {
	query := "SELECT " + newsColumns + " FROM news WHERE id = $1 LIMIT 1"
	var item models.News
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find news by id: %w", err)
	}
	return &item, nil
}

func (r *NewsRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "news", slug, excludeID)
}

// Create persists a new news item.
func (r *NewsRepository) Create(ctx context.Context, item *models.News) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.PublishDate.IsZero() {
		item.PublishDate = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO news (id, title, content, summary, publish_date, category, is_featured, slug, created_at, updated_at) VALUES (:id, :title, :content, :summary, :publish_date, :category, :is_featured, :slug, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a news item.
func (r *NewsRepository) Update(ctx context.Context, item *models.News) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE news SET title = :title, content = :content, summary = :summary, publish_date = :publish_date, category = :category, is_featured = :is_featured, slug = :slug, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	return affected(res, "update news")
}

// Delete removes a news item permanently.
func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	return affected(res, "delete news")
}
