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

const articleColumns = "id, title, content, summary, slug, publish_date, author, category, created_at, updated_at"

// ArticleRepository handles persistence for articles.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new repository instance.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ListAll returns every article in insertion order.
func (r *ArticleRepository) ListAll(ctx context.Context) ([]models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles ORDER BY created_at ASC, id ASC"
	items := []models.Article{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return items, nil
}

// FindBySlug returns an article by slug.
func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE slug = $1 LIMIT 1"
	var item models.Article
	if err := r.db.GetContext(ctx, &item, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return &item, nil
}

// FindByID returns an article by id.
func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE id = $1 LIMIT 1"
	var item models.Article
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return &item, nil
}

func (r *ArticleRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "articles", slug, excludeID)
}

// Create persists a new article.
func (r *ArticleRepository) Create(ctx context.Context, item *models.Article) error {
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

	const query = `INSERT INTO articles (id, title, content, summary, slug, publish_date, author, category, created_at, updated_at) VALUES (:id, :title, :content, :summary, :slug, :publish_date, :author, :category, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an article.
func (r *ArticleRepository) Update(ctx context.Context, item *models.Article) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE articles SET title = :title, content = :content, summary = :summary, slug = :slug, publish_date = :publish_date, author = :author, category = :category, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return affected(res, "update article")
}

// Delete removes an article permanently.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return affected(res, "delete article")
}
