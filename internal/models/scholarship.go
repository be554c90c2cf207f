package models

import (
	"time"

	"github.com/lib/pq"
)

// Scholarship is a funding opportunity. Country joins informally to Country.Name.
type Scholarship struct {
	ID          string         `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Amount      string         `db:"amount" json:"amount"`
	Deadline    string         `db:"deadline" json:"deadline"`
	Country     string         `db:"country" json:"country"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	Slug        string         `db:"slug" json:"slug"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

func (s *Scholarship) SetID(id string) { s.ID = id }

// HasTag reports exact membership in the tag set.
func (s Scholarship) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
