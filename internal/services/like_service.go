package services

import (
	"database/sql"
	"errors"

	"instaclone/internal/repositories"
)

// LikeService implements toggle-style liking: create the join row if absent,
// remove it if present. The advisory check-then-act may race with itself;
// the unique constraint underneath keeps at-most-one-like true regardless.
type LikeService interface {
	TogglePost(postID int64, callerID int) (liked bool, err error)
	ToggleComment(commentID int64, callerID int) (liked bool, err error)
}

type likeService struct {
	repo     repositories.LikeRepository
	posts    repositories.PostRepository
	comments repositories.CommentRepository
}

func NewLikeService(repo repositories.LikeRepository, posts repositories.PostRepository, comments repositories.CommentRepository) LikeService {
	return &likeService{repo: repo, posts: posts, comments: comments}
}

func (s *likeService) TogglePost(postID int64, callerID int) (bool, error) {
	if _, err := s.posts.GetByID(postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}

	inserted, err := s.repo.InsertPostLike(postID, callerID)
	if err != nil {
		return false, err
	}
	if inserted {
		return true, nil
	}
	// row already existed (or a concurrent insert won): flip it off
	if _, err := s.repo.DeletePostLike(postID, callerID); err != nil {
		return false, err
	}
	return false, nil
}

func (s *likeService) ToggleComment(commentID int64, callerID int) (bool, error) {
	if _, err := s.comments.GetByID(commentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}

	inserted, err := s.repo.InsertCommentLike(commentID, callerID)
	if err != nil {
		return false, err
	}
	if inserted {
		return true, nil
	}
	if _, err := s.repo.DeleteCommentLike(commentID, callerID); err != nil {
		return false, err
	}
	return false, nil
}
