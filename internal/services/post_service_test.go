package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instaclone/internal/models"
)

func newContentFixture(t *testing.T) (*fakeContentStore, PostService, CommentService, LikeService) {
	t.Helper()
	store := newFakeContentStore()
	store.addUser(1, "alice")
	store.addUser(2, "bob")

	posts := &fakePostRepo{store: store}
	comments := &fakeCommentRepo{store: store}
	likes := &fakeLikeRepo{store: store}
	return store,
		NewPostService(posts),
		NewCommentService(comments, posts),
		NewLikeService(likes, posts, comments)
}

func TestPostCreateReturnsDetail(t *testing.T) {
	_, posts, _, _ := newContentFixture(t)

	detail, err := posts.Create(1, "posts/a.jpg", "first light")
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.Author.Username)
	assert.Equal(t, "first light", detail.Caption)
	assert.Zero(t, detail.LikesCount)
	assert.False(t, detail.MeLiked)
}

func TestPostCreateValidation(t *testing.T) {
	_, posts, _, _ := newContentFixture(t)

	_, err := posts.Create(1, "", "caption")
	verrs, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "image", verrs[0].Field)

	_, err = posts.Create(1, "posts/a.jpg", strings.Repeat("x", models.MaxCaptionLen+1))
	verrs, ok = AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "caption", verrs[0].Field)
}

func TestPostGetMissing(t *testing.T) {
	_, posts, _, _ := newContentFixture(t)
	_, err := posts.Get(42, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostUpdateOwnershipEnforced(t *testing.T) {
	_, posts, _, _ := newContentFixture(t)
	created, err := posts.Create(1, "posts/a.jpg", "mine")
	require.NoError(t, err)

	_, err = posts.Update(2, created.ID, "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := posts.Update(1, created.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Caption)
}

func TestPostDeleteOwnershipEnforced(t *testing.T) {
	_, posts, _, _ := newContentFixture(t)
	created, err := posts.Create(1, "posts/a.jpg", "mine")
	require.NoError(t, err)

	assert.ErrorIs(t, posts.Delete(2, created.ID), ErrForbidden)
	require.NoError(t, posts.Delete(1, created.ID))
	assert.ErrorIs(t, posts.Delete(1, created.ID), ErrNotFound)
}

func TestFeedPaginationEnvelope(t *testing.T) {
	_, posts, _, _ := newContentFixture(t)
	for i := 0; i < 5; i++ {
		_, err := posts.Create(1, "posts/a.jpg", "")
		require.NoError(t, err)
	}

	page, err := posts.ListFeed(0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Count)
	assert.Nil(t, page.Previous)
	require.NotNil(t, page.Next)
	assert.Equal(t, 2, *page.Next)
	assert.Len(t, page.Results.([]*models.PostDetail), 2)

	page, err = posts.ListFeed(0, 3, 2)
	require.NoError(t, err)
	require.NotNil(t, page.Previous)
	assert.Equal(t, 2, *page.Previous)
	assert.Nil(t, page.Next)
	assert.Len(t, page.Results.([]*models.PostDetail), 1)
}

func TestFeedNewestFirst(t *testing.T) {
	_, posts, _, _ := newContentFixture(t)
	first, err := posts.Create(1, "posts/a.jpg", "old")
	require.NoError(t, err)
	second, err := posts.Create(2, "posts/b.jpg", "new")
	require.NoError(t, err)

	page, err := posts.ListFeed(0, 1, 10)
	require.NoError(t, err)
	results := page.Results.([]*models.PostDetail)
	require.Len(t, results, 2)
	assert.Equal(t, second.ID, results[0].ID)
	assert.Equal(t, first.ID, results[1].ID)
}

func TestFeedCountersScopedToViewer(t *testing.T) {
	_, posts, comments, likes := newContentFixture(t)
	created, err := posts.Create(1, "posts/a.jpg", "")
	require.NoError(t, err)

	_, err = likes.TogglePost(created.ID, 2)
	require.NoError(t, err)
	_, err = comments.Create(2, created.ID, "nice", nil)
	require.NoError(t, err)

	asBob, err := posts.Get(created.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, asBob.LikesCount)
	assert.Equal(t, 1, asBob.CommentsCount)
	assert.True(t, asBob.MeLiked)

	asAnonymous, err := posts.Get(created.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, asAnonymous.LikesCount)
	assert.False(t, asAnonymous.MeLiked)
}
