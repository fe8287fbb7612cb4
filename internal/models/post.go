package models

import "time"

const (
	MaxCaptionLen = 2200
	MaxCommentLen = 1000
)

type Post struct {
	ID        int64     `json:"id"`
	AuthorID  int       `json:"author_id"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

type PostComment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int       `json:"author_id"`
	Content   string    `json:"content"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PostLike struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentLike struct {
	ID        int64     `json:"id"`
	CommentID int64     `json:"comment_id"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDetail is a post as the feed renders it: the row itself plus
// aggregated counters scoped to the requesting caller.
type PostDetail struct {
	ID            int64     `json:"id"`
	Author        UserBrief `json:"author"`
	Image         string    `json:"image"`
	Caption       string    `json:"caption"`
	CreatedAt     time.Time `json:"created_at"`
	LikesCount    int       `json:"post_likes_count"`
	CommentsCount int       `json:"post_comments_count"`
	MeLiked       bool      `json:"me_liked"`
}

// CommentDetail carries the full reply subtree inline. Replies of replies
// nest recursively; expansion is depth-capped by the service.
type CommentDetail struct {
	ID         int64            `json:"id"`
	PostID     int64            `json:"post_id"`
	Author     UserBrief        `json:"author"`
	Content    string           `json:"content"`
	ParentID   *int64           `json:"parent_id,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	Replies    []*CommentDetail `json:"replies"`
	LikesCount int              `json:"likes_count"`
	MeLiked    bool             `json:"me_liked"`
}

// Page is the paginated list envelope.
type Page struct {
	Count    int         `json:"count"`
	Next     *int        `json:"next"`
	Previous *int        `json:"previous"`
	Results  interface{} `json:"results"`
}
