package models

import "time"

// User is a portal account. Only administrators may mutate content.
type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	IsAdmin      bool       `db:"is_admin" json:"isAdmin"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// Info projects the public view of the user.
func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}
