package services

import (
	"database/sql"
	"errors"
	"strings"

	"instaclone/internal/models"
	"instaclone/internal/repositories"
)

type PostService interface {
	Create(authorID int, image, caption string) (*models.PostDetail, error)
	Get(id int64, viewerID int) (*models.PostDetail, error)
	ListFeed(viewerID, page, pageSize int) (*models.Page, error)
	Update(callerID int, id int64, caption string) (*models.PostDetail, error)
	Delete(callerID int, id int64) error
}

type postService struct {
	repo repositories.PostRepository
}

func NewPostService(repo repositories.PostRepository) PostService {
	return &postService{repo: repo}
}

func (s *postService) Create(authorID int, image, caption string) (*models.PostDetail, error) {
	if strings.TrimSpace(image) == "" {
		return nil, ValidationErrors{{Field: "image", Message: "Image is required."}}
	}
	if len(caption) > models.MaxCaptionLen {
		return nil, ValidationErrors{{Field: "caption", Message: "Caption must not exceed 2200 characters."}}
	}

	post := &models.Post{AuthorID: authorID, Image: image, Caption: caption}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return s.repo.GetDetail(post.ID, authorID)
}

func (s *postService) Get(id int64, viewerID int) (*models.PostDetail, error) {
	detail, err := s.repo.GetDetail(id, viewerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return detail, err
}

// ListFeed pages newest-first. Page numbers are 1-based; Next/Previous are
// nil at the edges.
func (s *postService) ListFeed(viewerID, page, pageSize int) (*models.Page, error) {
	count, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	results, err := s.repo.List(viewerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return paginate(count, page, pageSize, results), nil
}

func (s *postService) Update(callerID int, id int64, caption string) (*models.PostDetail, error) {
	post, err := s.repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, ErrForbidden
	}
	if len(caption) > models.MaxCaptionLen {
		return nil, ValidationErrors{{Field: "caption", Message: "Caption must not exceed 2200 characters."}}
	}

	post.Caption = caption
	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return s.repo.GetDetail(id, callerID)
}

func (s *postService) Delete(callerID int, id int64) error {
	post, err := s.repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}

func paginate(count, page, pageSize int, results interface{}) *models.Page {
	p := &models.Page{Count: count, Results: results}
	if page > 1 {
		prev := page - 1
		p.Previous = &prev
	}
	if page*pageSize < count {
		next := page + 1
		p.Next = &next
	}
	return p
}
