package models

import "time"

// News is a short dated announcement; featured items are shown prominently.
type News struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	Summary     string    `db:"summary" json:"summary"`
	PublishDate time.Time `db:"publish_date" json:"publishDate"`
	Category    string    `db:"category" json:"category"`
	IsFeatured  bool      `db:"is_featured" json:"isFeatured"`
	Slug        string    `db:"slug" json:"slug"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

func (n *News) SetID(id string) { n.ID = id }
