package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTogglePostLikeFlips(t *testing.T) {
	_, posts, _, likes := newContentFixture(t)
	post, err := posts.Create(1, "posts/a.jpg", "")
	require.NoError(t, err)

	liked, err := likes.TogglePost(post.ID, 2)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = likes.TogglePost(post.ID, 2)
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = likes.TogglePost(post.ID, 2)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestTogglePostLikePerUser(t *testing.T) {
	_, posts, _, likes := newContentFixture(t)
	post, err := posts.Create(1, "posts/a.jpg", "")
	require.NoError(t, err)

	_, err = likes.TogglePost(post.ID, 1)
	require.NoError(t, err)
	_, err = likes.TogglePost(post.ID, 2)
	require.NoError(t, err)

	detail, err := posts.Get(post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.LikesCount)

	// bob unlikes, alice's like stays
	_, err = likes.TogglePost(post.ID, 2)
	require.NoError(t, err)
	detail, err = posts.Get(post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.LikesCount)
	assert.True(t, detail.MeLiked)
}

func TestTogglePostLikeMissingPost(t *testing.T) {
	_, _, _, likes := newContentFixture(t)
	_, err := likes.TogglePost(99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleCommentLikeFlips(t *testing.T) {
	_, posts, comments, likes := newContentFixture(t)
	post, err := posts.Create(1, "posts/a.jpg", "")
	require.NoError(t, err)
	comment, err := comments.Create(1, post.ID, "hello", nil)
	require.NoError(t, err)

	liked, err := likes.ToggleComment(comment.ID, 2)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := comments.Get(comment.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.True(t, got.MeLiked)

	liked, err = likes.ToggleComment(comment.ID, 2)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggleCommentLikeMissingComment(t *testing.T) {
	_, _, _, likes := newContentFixture(t)
	_, err := likes.ToggleComment(99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
