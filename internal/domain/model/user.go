package model

import "time"

// User represents a registered customer of the shipping portal.
type User struct {
	ID           string
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
