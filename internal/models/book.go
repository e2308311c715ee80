package models

import "time"

// Book is a catalog entry. Books are created by seeding or an
// administrative call and never change afterwards.
type Book struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ISBN        string    `json:"isbn"` // unique per edition
	CreatedAt   time.Time `json:"created_at"`
}
