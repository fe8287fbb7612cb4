package repositories

import (
	"database/sql"
)

// LikeRepository exposes the two primitives a toggle needs. Insert relies on
// ON CONFLICT DO NOTHING against the unique constraint, so a losing
// concurrent insert reports inserted=false instead of an error. The
// constraint, not application logic, keeps at-most-one-like true.
type LikeRepository interface {
	InsertPostLike(postID int64, authorID int) (inserted bool, err error)
	DeletePostLike(postID int64, authorID int) (deleted bool, err error)
	InsertCommentLike(commentID int64, authorID int) (inserted bool, err error)
	DeleteCommentLike(commentID int64, authorID int) (deleted bool, err error)
}

type likeRepository struct {
	DB *sql.DB
}

func NewLikeRepository(db *sql.DB) LikeRepository {
	return &likeRepository{DB: db}
}

func (r *likeRepository) InsertPostLike(postID int64, authorID int) (bool, error) {
	const q = `
		INSERT INTO post_likes (post_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT unique_post_like DO NOTHING
	`
	res, err := r.DB.Exec(q, postID, authorID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *likeRepository) DeletePostLike(postID int64, authorID int) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM post_likes WHERE post_id=$1 AND author_id=$2`, postID, authorID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *likeRepository) InsertCommentLike(commentID int64, authorID int) (bool, error) {
	const q = `
		INSERT INTO comment_likes (comment_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT unique_comment_like DO NOTHING
	`
	res, err := r.DB.Exec(q, commentID, authorID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *likeRepository) DeleteCommentLike(commentID int64, authorID int) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM comment_likes WHERE comment_id=$1 AND author_id=$2`, commentID, authorID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
