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

const countryColumns = "id, name, description, universities, acceptance_rate, slug, created_at, updated_at"

// CountryRepository handles persistence for countries.
type CountryRepository struct {
	db *sqlx.DB
}

// NewCountryRepository creates a new repository instance.
func NewCountryRepository(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

// ListAll returns every country in insertion order.
func (r *CountryRepository) ListAll(ctx context.Context) ([]models.Country, error) {
	query := "SELECT " + countryColumns + " FROM countries ORDER BY created_at ASC, id ASC"
	items := []models.Country{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return items, nil
}

// FindBySlug returns a country by slug.
func (r *CountryRepository) FindBySlug(ctx context.Context, slug string) (*models.Country, error) {
	query := "SELECT " + countryColumns + " FROM countries WHERE slug = $1 LIMIT 1"
	var item models.Country
	if err := r.db.GetContext(ctx, &item, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find country by slug: %w", err)
	}
	return &item, nil
}

// FindByID returns a country by id.
func (r *CountryRepository) FindByID(ctx context.Context, id string) (*models.Country, error) {
	query := "SELECT " + countryColumns + " FROM countries WHERE id = $1 LIMIT 1"
	var item models.Country
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find country by id: %w", err)
	}
	return &item, nil
}

func (r *CountryRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "countries", slug, excludeID)
}

// Create persists a new country.
func (r *CountryRepository) Create(ctx context.Context, item *models.Country) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO countries (id, name, description, universities, acceptance_rate, slug, created_at, updated_at) VALUES (:id, :name, :description, :universities, :acceptance_rate, :slug, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create country: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a country.
func (r *CountryRepository) Update(ctx context.Context, item *models.Country) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE countries SET name = :name, description = :description, universities = :universities, acceptance_rate = :acceptance_rate, slug = :slug, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update country: %w", err)
	}
	return affected(res, "update country")
}

// Delete removes a country permanently.
func (r *CountryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete country: %w", err)
	}
	return affected(res, "delete country")
}
