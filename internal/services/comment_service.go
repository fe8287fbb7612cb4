package services

import (
	"database/sql"
	"errors"

	"instaclone/internal/models"
	"instaclone/internal/repositories"
)

// maxReplyDepth caps the recursive reply expansion. Parent links form a tree
// by construction, but corrupted data must not be able to hang a request.
const maxReplyDepth = 20

type CommentService interface {
	Create(authorID int, postID int64, content string, parentID *int64) (*models.CommentDetail, error)
	Get(id int64, viewerID int) (*models.CommentDetail, error)
	List(viewerID, page, pageSize int) (*models.Page, error)
	Update(callerID int, id int64, content string) (*models.CommentDetail, error)
	Delete(callerID int, id int64) error
}

type commentService struct {
	repo  repositories.CommentRepository
	posts repositories.PostRepository
}

func NewCommentService(repo repositories.CommentRepository, posts repositories.PostRepository) CommentService {
	return &commentService{repo: repo, posts: posts}
}

func (s *commentService) validateContent(content string) error {
	if content == "" {
		return ValidationErrors{{Field: "content", Message: "Content is required."}}
	}
	if len(content) > models.MaxCommentLen {
		return ValidationErrors{{Field: "content", Message: "Content must not exceed 1000 characters."}}
	}
	return nil
}

func (s *commentService) Create(authorID int, postID int64, content string, parentID *int64) (*models.CommentDetail, error) {
	if err := s.validateContent(content); err != nil {
		return nil, err
	}
	if _, err := s.posts.GetByID(postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if parentID != nil {
		parent, err := s.repo.GetByID(*parentID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ValidationErrors{{Field: "parent", Message: "Parent comment does not exist."}}
		}
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ValidationErrors{{Field: "parent", Message: "Parent comment belongs to a different post."}}
		}
	}

	comment := &models.PostComment{PostID: postID, AuthorID: authorID, Content: content, ParentID: parentID}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return s.Get(comment.ID, authorID)
}

// Get returns the comment with its full reply subtree inlined.
func (s *commentService) Get(id int64, viewerID int) (*models.CommentDetail, error) {
	detail, err := s.repo.GetDetail(id, viewerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachReplies(detail, viewerID, 0); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *commentService) attachReplies(c *models.CommentDetail, viewerID, depth int) error {
	if depth >= maxReplyDepth {
		return nil
	}
	replies, err := s.repo.ListReplies(c.ID, viewerID)
	if err != nil {
		return err
	}
	for _, reply := range replies {
		if err := s.attachReplies(reply, viewerID, depth+1); err != nil {
			return err
		}
	}
	c.Replies = replies
	return nil
}

func (s *commentService) List(viewerID, page, pageSize int) (*models.Page, error) {
	count, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	results, err := s.repo.List(viewerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	for _, c := range results {
		if err := s.attachReplies(c, viewerID, 0); err != nil {
			return nil, err
		}
	}
	return paginate(count, page, pageSize, results), nil
}

func (s *commentService) Update(callerID int, id int64, content string) (*models.CommentDetail, error) {
	comment, err := s.repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, ErrForbidden
	}
	if err := s.validateContent(content); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.repo.Update(comment); err != nil {
		return nil, err
	}
	return s.Get(id, callerID)
}

func (s *commentService) Delete(callerID int, id int64) error {
	comment, err := s.repo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}
