package model

import (
	"time"
)

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"` // unique lookup key
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Not exposed
	Reputation     int       `json:"reputation"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PublicUser is the shape the auth endpoints return.
type PublicUser struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Reputation int    `json:"reputation"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Reputation: u.Reputation,
	}
}
