package domain

import "time"

// Blog is a published post as returned by the content endpoints.
type Blog struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Tags           []string  `json:"tags"`
	ViewCount      int64     `json:"viewCount"`
	LikeCount      int64     `json:"likeCount"`
	CommentCount   int64     `json:"commentCount"`
	Comments       []Comment `json:"comments,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Comment is a reader comment embedded in a blog.
type Comment struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Reaction types accepted by the reaction endpoint.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)
