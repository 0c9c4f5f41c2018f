package models

import "time"

type User struct {
	ID              string
	Email           string
	Name            string
	NewsletterOptIn bool
	CreatedAt       time.Time
}
