// Package blog proxies posts from the headless content store, renders their
// markdown to sanitised HTML and keeps a local cache to fall back on.
package blog

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("post not found")

type Post struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	Markdown       string    `json:"markdown"`
	HTML           string    `json:"html,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	CoverImage     string    `json:"cover_image,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	ReadingMinutes int       `json:"reading_minutes"`
}
