package services

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"instaclone/internal/models"
)

// In-memory repository doubles for service tests. They mimic the Postgres
// behavior the services rely on: sql.ErrNoRows on misses, nil on absent
// confirmations, inserted=false on duplicate likes.

type fakeUserRepo struct {
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}}
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) findBy(match func(*models.User) bool) (*models.User, error) {
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.Email != "" && strings.EqualFold(u.Email, email) })
}

func (r *fakeUserRepo) GetByPhone(phone string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.PhoneNumber != "" && u.PhoneNumber == phone })
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (r *fakeUserRepo) UsernameTaken(username string, excludeUserID int) (bool, error) {
	for _, u := range r.users {
		if u.ID != excludeUserID && strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID int, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(id int) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.RefreshToken = &token
	u.RefreshExpiresAt = &expiresAt
	u.RefreshRevoked = false
	return nil
}

func (r *fakeUserRepo) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	for _, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == oldToken {
			u.RefreshToken = &newToken
			u.RefreshExpiresAt = &newExpiresAt
			u.RefreshRevoked = false
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) ClearRefresh(userID int) error {
	u, ok := r.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.RefreshToken = nil
	u.RefreshExpiresAt = nil
	u.RefreshRevoked = true
	return nil
}

func (r *fakeUserRepo) GetByRefreshToken(token string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.RefreshToken != nil && *u.RefreshToken == token })
}

type fakeConfirmationRepo struct {
	nextID int64
	confs  []*models.UserConfirmation
}

func newFakeConfirmationRepo() *fakeConfirmationRepo {
	return &fakeConfirmationRepo{}
}

func (r *fakeConfirmationRepo) Create(userID int, code string, authType models.AuthType, expiresAt time.Time) (*models.UserConfirmation, error) {
	r.nextID++
	c := &models.UserConfirmation{
		ID:        r.nextID,
		UserID:    userID,
		Code:      code,
		AuthType:  authType,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.confs = append(r.confs, c)
	return c, nil
}

func (r *fakeConfirmationRepo) GetByUserAndCode(userID int, code string) (*models.UserConfirmation, error) {
	for i := len(r.confs) - 1; i >= 0; i-- {
		c := r.confs[i]
		if c.UserID == userID && c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeConfirmationRepo) HasUnexpired(userID int, now time.Time) (bool, error) {
	for _, c := range r.confs {
		if c.UserID == userID && now.Before(c.ExpiresAt) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeConfirmationRepo) Delete(id int64) error {
	for i, c := range r.confs {
		if c.ID == id {
			r.confs = append(r.confs[:i], r.confs[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeNotifier records issued codes instead of delivering them.
type fakeNotifier struct {
	sent []string
}

func (n *fakeNotifier) NotifyCode(_ *models.User, code string) {
	n.sent = append(n.sent, code)
}

// fakeContentStore backs the post, comment and like fakes with one shared
// dataset so counters and toggles observe each other.
type fakeContentStore struct {
	users         map[int]*models.User
	posts         map[int64]*models.Post
	comments      map[int64]*models.PostComment
	postLikes     map[[2]int64]bool // postID, authorID
	commentLikes  map[[2]int64]bool // commentID, authorID
	nextPostID    int64
	nextCommentID int64
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{
		users:        map[int]*models.User{},
		posts:        map[int64]*models.Post{},
		comments:     map[int64]*models.PostComment{},
		postLikes:    map[[2]int64]bool{},
		commentLikes: map[[2]int64]bool{},
	}
}

func (s *fakeContentStore) addUser(id int, username string) {
	s.users[id] = &models.User{ID: id, Username: username, UserStatus: models.StatusDone}
}

func (s *fakeContentStore) brief(authorID int) models.UserBrief {
	if u, ok := s.users[authorID]; ok {
		return u.Brief()
	}
	return models.UserBrief{ID: authorID}
}

type fakePostRepo struct {
	store *fakeContentStore
}

func (r *fakePostRepo) Create(post *models.Post) error {
	r.store.nextPostID++
	post.ID = r.store.nextPostID
	post.CreatedAt = time.Now()
	cp := *post
	r.store.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetByID(id int64) (*models.Post, error) {
	p, ok := r.store.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) detail(p *models.Post, viewerID int) *models.PostDetail {
	d := &models.PostDetail{
		ID:        p.ID,
		Author:    r.store.brief(p.AuthorID),
		Image:     p.Image,
		Caption:   p.Caption,
		CreatedAt: p.CreatedAt,
	}
	for key := range r.store.postLikes {
		if key[0] == p.ID {
			d.LikesCount++
			if key[1] == int64(viewerID) {
				d.MeLiked = true
			}
		}
	}
	for _, c := range r.store.comments {
		if c.PostID == p.ID && c.ParentID == nil {
			d.CommentsCount++
		}
	}
	return d
}

func (r *fakePostRepo) GetDetail(id int64, viewerID int) (*models.PostDetail, error) {
	p, ok := r.store.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r.detail(p, viewerID), nil
}

func (r *fakePostRepo) List(viewerID, limit, offset int) ([]*models.PostDetail, error) {
	all := make([]*models.Post, 0, len(r.store.posts))
	for _, p := range r.store.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	res := []*models.PostDetail{}
	for i := offset; i < len(all) && len(res) < limit; i++ {
		res = append(res, r.detail(all[i], viewerID))
	}
	return res, nil
}

func (r *fakePostRepo) Count() (int, error) {
	return len(r.store.posts), nil
}

func (r *fakePostRepo) Update(post *models.Post) error {
	if _, ok := r.store.posts[post.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *post
	r.store.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) Delete(id int64) error {
	delete(r.store.posts, id)
	return nil
}

type fakeCommentRepo struct {
	store *fakeContentStore
}

func (r *fakeCommentRepo) Create(comment *models.PostComment) error {
	r.store.nextCommentID++
	comment.ID = r.store.nextCommentID
	comment.CreatedAt = time.Now()
	cp := *comment
	if comment.ParentID != nil {
		// copy the value so the stored row doesn't alias the caller's variable
		pid := *comment.ParentID
		cp.ParentID = &pid
	}
	r.store.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(id int64) (*models.PostComment, error) {
	c, ok := r.store.comments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) detail(c *models.PostComment, viewerID int) *models.CommentDetail {
	d := &models.CommentDetail{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    r.store.brief(c.AuthorID),
		Content:   c.Content,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		Replies:   []*models.CommentDetail{},
	}
	for key := range r.store.commentLikes {
		if key[0] == c.ID {
			d.LikesCount++
			if key[1] == int64(viewerID) {
				d.MeLiked = true
			}
		}
	}
	return d
}

func (r *fakeCommentRepo) GetDetail(id int64, viewerID int) (*models.CommentDetail, error) {
	c, ok := r.store.comments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r.detail(c, viewerID), nil
}

func (r *fakeCommentRepo) sorted(match func(*models.PostComment) bool, desc bool) []*models.PostComment {
	res := []*models.PostComment{}
	for _, c := range r.store.comments {
		if match(c) {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if desc {
			return res[i].ID > res[j].ID
		}
		return res[i].ID < res[j].ID
	})
	return res
}

func (r *fakeCommentRepo) List(viewerID, limit, offset int) ([]*models.CommentDetail, error) {
	all := r.sorted(func(*models.PostComment) bool { return true }, true)
	res := []*models.CommentDetail{}
	for i := offset; i < len(all) && len(res) < limit; i++ {
		res = append(res, r.detail(all[i], viewerID))
	}
	return res, nil
}

func (r *fakeCommentRepo) ListReplies(parentID int64, viewerID int) ([]*models.CommentDetail, error) {
	children := r.sorted(func(c *models.PostComment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	}, false)
	res := []*models.CommentDetail{}
	for _, c := range children {
		res = append(res, r.detail(c, viewerID))
	}
	return res, nil
}

func (r *fakeCommentRepo) Count() (int, error) {
	return len(r.store.comments), nil
}

func (r *fakeCommentRepo) Update(comment *models.PostComment) error {
	c, ok := r.store.comments[comment.ID]
	if !ok {
		return sql.ErrNoRows
	}
	c.Content = comment.Content
	return nil
}

func (r *fakeCommentRepo) Delete(id int64) error {
	delete(r.store.comments, id)
	return nil
}

type fakeLikeRepo struct {
	store *fakeContentStore
}

func (r *fakeLikeRepo) InsertPostLike(postID int64, authorID int) (bool, error) {
	key := [2]int64{postID, int64(authorID)}
	if r.store.postLikes[key] {
		return false, nil
	}
	r.store.postLikes[key] = true
	return true, nil
}

func (r *fakeLikeRepo) DeletePostLike(postID int64, authorID int) (bool, error) {
	key := [2]int64{postID, int64(authorID)}
	if !r.store.postLikes[key] {
		return false, nil
	}
	delete(r.store.postLikes, key)
	return true, nil
}

func (r *fakeLikeRepo) InsertCommentLike(commentID int64, authorID int) (bool, error) {
	key := [2]int64{commentID, int64(authorID)}
	if r.store.commentLikes[key] {
		return false, nil
	}
	r.store.commentLikes[key] = true
	return true, nil
}

func (r *fakeLikeRepo) DeleteCommentLike(commentID int64, authorID int) (bool, error) {
	key := [2]int64{commentID, int64(authorID)}
	if !r.store.commentLikes[key] {
		return false, nil
	}
	delete(r.store.commentLikes, key)
	return true, nil
}
