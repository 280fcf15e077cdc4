package models

import (
	"time"

	"github.com/google/uuid"
)

// PostType tags a feed post
type PostType string

const (
	PostTypeStory   PostType = "story"
	PostTypeSeed    PostType = "seed"
	PostTypeHarvest PostType = "harvest"
)

// Post is an append-only feed item with denormalized like/comment counters
type Post struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AuthorID    uuid.UUID `db:"author_id" json:"authorId"`
	Body        string    `db:"body" json:"body"`
	PostType    PostType  `db:"post_type" json:"postType"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	Likes       int       `db:"likes" json:"likes"`
	Comments    int       `db:"comments" json:"comments"`
	SeedbaseTag string    `db:"seedbase_tag" json:"seedbaseTag"`
	MissionTag  string    `db:"mission_tag" json:"missionTag"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	Author *UserProfile `db:"-" json:"author,omitempty"`
}

// Comment references a post and increments its comment counter on insert
type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PostID    uuid.UUID `db:"post_id" json:"postId"`
	AuthorID  uuid.UUID `db:"author_id" json:"authorId"`
	Body      string    `db:"body" json:"body"`
	Likes     int       `db:"likes" json:"likes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Author *UserProfile `db:"-" json:"author,omitempty"`
}
