package models

import "time"

// Article is a long-form editorial post.
type Article struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	Summary     string    `db:"summary" json:"summary"`
	Slug        string    `db:"slug" json:"slug"`
	PublishDate time.Time `db:"publish_date" json:"publishDate"`
	Author      string    `db:"author" json:"author"`
	Category    string    `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

func (a *Article) SetID(id string) { a.ID = id }
