package domain

import (
	"strconv"
	"time"
)

// User is a notification recipient and, once registered with the
// content type registry, a referenceable actor.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) EntityType() string { return "users" }
func (u *User) EntityID() string   { return strconv.FormatInt(u.ID, 10) }

// String is the default form a user takes inside rendered notification
// text.
func (u *User) String() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
