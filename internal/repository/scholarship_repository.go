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

const scholarshipColumns = "id, title, description, amount, deadline, country, tags, slug, created_at, updated_at"

// ScholarshipRepository handles persistence for scholarships.
type ScholarshipRepository struct {
	db *sqlx.DB
}

// NewScholarshipRepository creates a new repository instance.
func NewScholarshipRepository(db *sqlx.DB) *ScholarshipRepository {
	return &ScholarshipRepository{db: db}
}

// ListAll returns every scholarship in insertion order.
func (r *ScholarshipRepository) ListAll(ctx context.Context) ([]models.Scholarship, error) {
	query := "SELECT " + scholarshipColumns + " FROM scholarships ORDER BY created_at ASC, id ASC"
	items := []models.Scholarship{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list scholarships: %w", err)
	}
	return items, nil
}

// FindBySlug returns a scholarship by slug.
func (r *ScholarshipRepository) FindBySlug(ctx context.Context, slug string) (*models.Scholarship, error) {
	query := "SELECT " + scholarshipColumns + " FROM scholarships WHERE slug = $1 LIMIT 1"
	var item models.Scholarship
	if err := r.db.GetContext(ctx, &item, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find scholarship by slug: %w", err)
	}
	return &item, nil
}

// FindByID returns a scholarship by id.
func (r *ScholarshipRepository) FindByID(ctx context.Context, id string) (*models.Scholarship, error) {
	query := "SELECT " + scholarshipColumns + " FROM scholarships WHERE id = $1 LIMIT 1"
	var item models.Scholarship
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find scholarship by id: %w", err)
	}
	return &item, nil
}

// ExistsBySlug checks slug uniqueness.
func (r *ScholarshipRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "scholarships", slug, excludeID)
}

// Create persists a new scholarship.
func (r *ScholarshipRepository) Create(ctx context.Context, item *models.Scholarship) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO scholarships (id, title, description, amount, deadline, country, tags, slug, created_at, updated_at) VALUES (:id, :title, :description, :amount, :deadline, :country, :tags, :slug, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create scholarship: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a scholarship.
func (r *ScholarshipRepository) Update(ctx context.Context, item *models.Scholarship) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE scholarships SET title = :title, description = :description, amount = :amount, deadline = :deadline, country = :country, tags = :tags, slug = :slug, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update scholarship: %w", err)
	}
	return affected(res, "update scholarship")
}

// Delete removes a scholarship permanently.
func (r *ScholarshipRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scholarships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scholarship: %w", err)
	}
	return affected(res, "delete scholarship")
}
