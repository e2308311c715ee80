package models

import "time"

// Review is a single star rating plus comment left by a user on a book.
// Reviews are insert-only; there is no edit or delete path.
type Review struct {
	ID         int       `json:"id"`
	BookID     int       `json:"book_id"`
	UserID     int       `json:"user_id"`
	StarsGiven int       `json:"stars_given"` // 1..5
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`

	// Author is populated on read paths that join the users table.
	Author *Author `json:"author,omitempty"`
	// BookTitle is populated by the home highlights view.
	BookTitle string `json:"book_title,omitempty"`
}

// Author is the public identity of a reviewer.
type Author struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
