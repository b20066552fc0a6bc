package domain

import "time"

type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"createdAt"`
}
