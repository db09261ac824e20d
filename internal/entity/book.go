package entity

import "time"

type Book struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	AuthorID int64  `json:"author_id"`
	Genre    string `json:"genre"`
	// PublishedDate is optional; nil means unknown.
	PublishedDate *time.Time `json:"published_date,omitempty"`
}
