package models

import (
	"time"

	"github.com/lib/pq"
)

// University is an institution listed in the catalog.
type University struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Country     string         `db:"country" json:"country"`
	Ranking     *int           `db:"ranking" json:"ranking,omitempty"`
	Slug        string         `db:"slug" json:"slug"`
	Features    pq.StringArray `db:"features" json:"features"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

func (u *University) SetID(id string) { u.ID = id }
