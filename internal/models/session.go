package models

import (
	"time"
)

// Session is the server-held proof of an authenticated identity
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// User returns the identity fields held by the session
func (s *Session) User() PublicUser {
	return PublicUser{ID: s.UserID, Email: s.Email, Name: s.Name, Role: s.Role}
}
