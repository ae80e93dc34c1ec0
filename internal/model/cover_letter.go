package model

import "time"

// CoverLetter is a generated letter kept for the dashboard.
type CoverLetter struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	JobTitle  string    `json:"jobTitle"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
