package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Menu is a top-level navigation entry.
type Menu struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	URL       string    `db:"url" json:"url"`
	Position  int       `db:"position" json:"position"`
	Children  MenuItems `db:"children" json:"children"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (m *Menu) SetID(id string) { m.ID = id }

// MenuItem is a nested navigation link.
type MenuItem struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title" validate:"required"`
	URL   string `json:"url" yaml:"url" validate:"required"`
}

// MenuItems is stored as a JSONB array.
type MenuItems []MenuItem

// Value implements driver.Valuer.
func (m MenuItems) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *MenuItems) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = MenuItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("menu items: unsupported type %T", src)
	}
	items := MenuItems{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("menu items: %w", err)
	}
	*m = items
	return nil
}
