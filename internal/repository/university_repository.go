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

const universityColumns = "id, name, description, country, ranking, slug, features, created_at, updated_at"

// UniversityRepository handles persistence for universities.
type UniversityRepository struct {
	db *sqlx.DB
}

// NewUniversityRepository creates a new repository instance.
func NewUniversityRepository(db *sqlx.DB) *UniversityRepository {
	return &UniversityRepository{db: db}
}

// ListAll returns every university in insertion order.
func (r *UniversityRepository) ListAll(ctx context.Context) ([]models.University, error) {
	query := "SELECT " + universityColumns + " FROM universities ORDER BY created_at ASC, id ASC"
	items := []models.University{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	return items, nil
}

// FindBySlug returns a university by slug.
func (r *UniversityRepository) FindBySlug(ctx context.Context, slug string) (*models.University, error) {
	query := "SELECT " + universityColumns + " FROM universities WHERE slug = $1 LIMIT 1"
	var item models.University
	if err := r.db.GetContext(ctx, &item, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find university by slug: %w", err)
	}
	return &item, nil
}

// FindByID returns a university by id.
func (r *UniversityRepository) FindByID(ctx context.Context, id string) (*models.University, error) {
	query := "SELECT " + universityColumns + " FROM universities WHERE id = $1 LIMIT 1"
	var item models.University
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find university by id: %w", err)
	}
	return &item, nil
}

func (r *UniversityRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "universities", slug, excludeID)
}

// Create persists a new university.
func (r *UniversityRepository) Create(ctx context.Context, item *models.University) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO universities (id, name, description, country, ranking, slug, features, created_at, updated_at) VALUES (:id, :name, :description, :country, :ranking, :slug, :features, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create university: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a university.
func (r *UniversityRepository) Update(ctx context.Context, item *models.University) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE universities SET name = :name, description = :description, country = :country, ranking = :ranking, slug = :slug, features = :features, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update university: %w", err)
	}
	return affected(res, "update university")
}

// Delete removes a university permanently.
func (r *UniversityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM universities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete university: %w", err)
	}
	return affected(res, "delete university")
}
