package repositories

import (
	"database/sql"

	"instaclone/internal/models"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int64) (*models.Post, error)
	GetDetail(id int64, viewerID int) (*models.PostDetail, error)
	List(viewerID, limit, offset int) ([]*models.PostDetail, error)
	Count() (int, error)
	Update(post *models.Post) error
	Delete(id int64) error
}

type postRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{DB: db}
}

func (r *postRepository) Create(post *models.Post) error {
	const q = `
		INSERT INTO posts (author_id, image, caption)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q, post.AuthorID, post.Image, post.Caption).Scan(&post.ID, &post.CreatedAt)
}

func (r *postRepository) GetByID(id int64) (*models.Post, error) {
	const q = `
		SELECT id, author_id, image, caption, created_at
		FROM posts
		WHERE id = $1
	`
	p := &models.Post{}
	err := r.DB.QueryRow(q, id).Scan(&p.ID, &p.AuthorID, &p.Image, &p.Caption, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// detailCols aggregates per-post counters in SQL so a feed page is a single
// query. comments_count covers top-level comments only. viewerID=0 (anonymous)
// makes me_liked EXISTS trivially false.
const postDetailQ = `
	SELECT
		p.id, p.image, p.caption, p.created_at,
		u.id, u.username, u.photo,
		(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id),
		(SELECT COUNT(*) FROM post_comments c WHERE c.post_id = p.id AND c.parent_id IS NULL),
		EXISTS(SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.author_id = $1)
	FROM posts p
	JOIN users u ON u.id = p.author_id
`

func scanPostDetail(row rowScanner) (*models.PostDetail, error) {
	d := &models.PostDetail{}
	err := row.Scan(
		&d.ID, &d.Image, &d.Caption, &d.CreatedAt,
		&d.Author.ID, &d.Author.Username, &d.Author.Photo,
		&d.LikesCount, &d.CommentsCount, &d.MeLiked,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *postRepository) GetDetail(id int64, viewerID int) (*models.PostDetail, error) {
	return scanPostDetail(r.DB.QueryRow(postDetailQ+` WHERE p.id = $2`, viewerID, id))
}

func (r *postRepository) List(viewerID, limit, offset int) ([]*models.PostDetail, error) {
	rows, err := r.DB.Query(postDetailQ+` ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []*models.PostDetail{}
	for rows.Next() {
		d, err := scanPostDetail(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *postRepository) Count() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&c)
	return c, err
}

func (r *postRepository) Update(post *models.Post) error {
	const q = `
		UPDATE posts
		SET image=$1, caption=$2
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, post.Image, post.Caption, post.ID)
	return err
}

func (r *postRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM posts WHERE id=$1`, id)
	return err
}
