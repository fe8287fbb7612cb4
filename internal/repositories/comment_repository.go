package repositories

import (
	"database/sql"

	"instaclone/internal/models"
)

type CommentRepository interface {
	Create(comment *models.PostComment) error
	GetByID(id int64) (*models.PostComment, error)
	GetDetail(id int64, viewerID int) (*models.CommentDetail, error)
	List(viewerID, limit, offset int) ([]*models.CommentDetail, error)
	ListReplies(parentID int64, viewerID int) ([]*models.CommentDetail, error)
	Count() (int, error)
	Update(comment *models.PostComment) error
	Delete(id int64) error
}

type commentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{DB: db}
}

func (r *commentRepository) Create(comment *models.PostComment) error {
	const q = `
		INSERT INTO post_comments (post_id, author_id, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q, comment.PostID, comment.AuthorID, comment.Content, comment.ParentID).
		Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) GetByID(id int64) (*models.PostComment, error) {
	const q = `
		SELECT id, post_id, author_id, content, parent_id, created_at
		FROM post_comments
		WHERE id = $1
	`
	c := &models.PostComment{}
	var parent sql.NullInt64
	err := r.DB.QueryRow(q, id).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &parent, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		p := parent.Int64
		c.ParentID = &p
	}
	return c, nil
}

const commentDetailQ = `
	SELECT
		c.id, c.post_id, c.content, c.parent_id, c.created_at,
		u.id, u.username, u.photo,
		(SELECT COUNT(*) FROM comment_likes l WHERE l.comment_id = c.id),
		EXISTS(SELECT 1 FROM comment_likes l WHERE l.comment_id = c.id AND l.author_id = $1)
	FROM post_comments c
	JOIN users u ON u.id = c.author_id
`

func scanCommentDetail(row rowScanner) (*models.CommentDetail, error) {
	d := &models.CommentDetail{Replies: []*models.CommentDetail{}}
	var parent sql.NullInt64
	err := row.Scan(
		&d.ID, &d.PostID, &d.Content, &parent, &d.CreatedAt,
		&d.Author.ID, &d.Author.Username, &d.Author.Photo,
		&d.LikesCount, &d.MeLiked,
	)
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		p := parent.Int64
		d.ParentID = &p
	}
	return d, nil
}

func (r *commentRepository) queryDetails(q string, args ...any) ([]*models.CommentDetail, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []*models.CommentDetail{}
	for rows.Next() {
		d, err := scanCommentDetail(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *commentRepository) GetDetail(id int64, viewerID int) (*models.CommentDetail, error) {
	return scanCommentDetail(r.DB.QueryRow(commentDetailQ+` WHERE c.id = $2`, viewerID, id))
}

func (r *commentRepository) List(viewerID, limit, offset int) ([]*models.CommentDetail, error) {
	return r.queryDetails(commentDetailQ+` ORDER BY c.created_at DESC LIMIT $2 OFFSET $3`, viewerID, limit, offset)
}

// ListReplies returns direct children only, oldest first; the service walks
// the tree level by level.
func (r *commentRepository) ListReplies(parentID int64, viewerID int) ([]*models.CommentDetail, error) {
	return r.queryDetails(commentDetailQ+` WHERE c.parent_id = $2 ORDER BY c.created_at ASC`, viewerID, parentID)
}

func (r *commentRepository) Count() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM post_comments`).Scan(&c)
	return c, err
}

func (r *commentRepository) Update(comment *models.PostComment) error {
	_, err := r.DB.Exec(`UPDATE post_comments SET content=$1 WHERE id=$2`, comment.Content, comment.ID)
	return err
}

func (r *commentRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM post_comments WHERE id=$1`, id)
	return err
}
