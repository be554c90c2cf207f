package models

import "time"

// Country is a study destination.
type Country struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Description    string    `db:"description" json:"description"`
	Universities   int       `db:"universities" json:"universities"`
	AcceptanceRate float64   `db:"acceptance_rate" json:"acceptanceRate"`
	Slug           string    `db:"slug" json:"slug"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

func (c *Country) SetID(id string) { c.ID = id }

// CountryDetail bundles a country with the universities and scholarships
// whose country field equals its name.
type CountryDetail struct {
	Country      Country       `json:"country"`
	Universities []University  `json:"universities"`
	Scholarships []Scholarship `json:"scholarships"`
}
