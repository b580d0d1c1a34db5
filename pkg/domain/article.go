package domain

import "time"

// Article represents a single news story, URL is the unique identifier
type Article struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"image_url,omitempty"`
	Published   time.Time `json:"published"`
	Source      string    `json:"source"`
	Category    Category  `json:"category,omitempty"`
}

// Comment is a single entry in an article's comment thread
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"article_id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Time      string    `json:"time"` // relative label, recomputed on read
	CreatedAt time.Time `json:"created_at"`
}
