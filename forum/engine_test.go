package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careloop/careboard/models"
	"github.com/careloop/careboard/storage"
)

// staticResolver resolves authors from a fixed map; unknown references
// resolve to nil like a deleted directory row.
type staticResolver struct {
	authors map[authorRef]*models.Author
}

func (r *staticResolver) Resolve(ctx context.Context, kind string, id uint) (*models.Author, error) {
	return r.authors[authorRef{kind: kind, id: id}], nil
}

func newTestEngine() (*Engine, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	resolver := &staticResolver{authors: map[authorRef]*models.Author{
		{kind: models.AuthorKindUser, id: 1}:   {Name: "Alice"},
		{kind: models.AuthorKindDoctor, id: 2}: {Name: "Dr. Bob", Specialization: "Cardiology"},
	}}
	return NewEngine(store, resolver), store
}

func TestKindFromRole(t *testing.T) {
	kind, err := KindFromRole("user")
	assert.NoError(t, err)
	assert.Equal(t, models.AuthorKindUser, kind)

	kind, err = KindFromRole("Doctor")
	assert.NoError(t, err)
	assert.Equal(t, models.AuthorKindDoctor, kind)

	_, err = KindFromRole("admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreatePost_RoundTrip(t *testing.T) {
	engine, _ := newTestEngine()

	created, err := engine.CreatePost(context.Background(), 1, "user", "hello forum")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.AuthorKindUser, created.AuthorKind)

	posts, err := engine.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello forum", posts[0].Content)
	assert.Empty(t, posts[0].Comments)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "Alice", posts[0].Author.Name)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	engine, _ := newTestEngine()

	_, err := engine.CreatePost(context.Background(), 1, "user", "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	posts, err := engine.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCreateComment_TopLevelLinkage(t *testing.T) {
	engine, _ := newTestEngine()

	post, err := engine.CreatePost(context.Background(), 1, "user", "a post")
	require.NoError(t, err)

	comment, err := engine.CreateComment(context.Background(), post.ID, 2, "doctor", "a comment", nil)
	require.NoError(t, err)
	assert.Nil(t, comment.ParentID)

	posts, err := engine.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "a comment", posts[0].Comments[0].Content)
	assert.Empty(t, posts[0].Comments[0].Replies)
}

func TestCreateComment_ReplyLinkage(t *testing.T) {
	engine, _ := newTestEngine()

	post, err := engine.CreatePost(context.Background(), 1, "user", "a post")
	require.NoError(t, err)

	a, err := engine.CreateComment(context.Background(), post.ID, 1, "user", "comment A", nil)
	require.NoError(t, err)
	b, err := engine.CreateComment(context.Background(), post.ID, 2, "doctor", "reply B", &a.ID)
	require.NoError(t, err)
	require.NotNil(t, b.ParentID)
	assert.Equal(t, a.ID, *b.ParentID)

	posts, err := engine.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)

	// B hangs under A and is not a top-level comment.
	require.Len(t, posts[0].Comments, 1)
	gotA := posts[0].Comments[0]
	assert.Equal(t, a.ID, gotA.ID)
	require.Len(t, gotA.Replies, 1)
	assert.Equal(t, b.ID, gotA.Replies[0].ID)
}

func TestCreateComment_ThreeLevelsDeep(t *testing.T) {
	engine, _ := newTestEngine()

	post, err := engine.CreatePost(context.Background(), 1, "user", "a post")
	require.NoError(t, err)

	a, err := engine.CreateComment(context.Background(), post.ID, 1, "user", "level 1", nil)
	require.NoError(t, err)
	b, err := engine.CreateComment(context.Background(), post.ID, 2, "doctor", "level 2", &a.ID)
	require.NoError(t, err)
	c, err := engine.CreateComment(context.Background(), post.ID, 1, "user", "level 3", &b.ID)
	require.NoError(t, err)

	posts, err := engine.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Comments, 1)
	require.Len(t, posts[0].Comments[0].Replies, 1)
	require.Len(t, posts[0].Comments[0].Replies[0].Replies, 1)
	assert.Equal(t, c.ID, posts[0].Comments[0].Replies[0].Replies[0].ID)
	assert.Equal(t, "level 3", posts[0].Comments[0].Replies[0].Replies[0].Content)
}

func TestCreateComment_EmptyContent(t *testing.T) {
	engine, _ := newTestEngine()

	post, err := engine.CreatePost(context.Background(), 1, "user", "a post")
	require.NoError(t, err)

	_, err = engine.CreateComment(context.Background(), post.ID, 1, "user", "", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	posts, err := engine.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts[0].Comments)
}

func TestCreateComment_UnknownPost(t *testing.T) {
	engine, _ := newTestEngine()

	_, err := engine.CreateComment(context.Background(), "no-such-post", 1, "user", "hello", nil)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreateComment_UnknownParent(t *testing.T) {
	engine, _ := newTestEngine()

	post, err := engine.CreatePost(context.Background(), 1, "user", "a post")
	require.NoError(t, err)

	missing := "no-such-comment"
	_, err = engine.CreateComment(context.Background(), post.ID, 1, "user", "hello", &missing)
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCreateComment_ParentFromAnotherPost(t *testing.T) {
	engine, _ := newTestEngine()

	first, err := engine.CreatePost(context.Background(), 1, "user", "first post")
	require.NoError(t, err)
	second, err := engine.CreatePost(context.Background(), 1, "user", "second post")
	require.NoError(t, err)

	parent, err := engine.CreateComment(context.Background(), first.ID, 1, "user", "on first", nil)
	require.NoError(t, err)

	_, err = engine.CreateComment(context.Background(), second.ID, 1, "user", "cross post reply", &parent.ID)
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestListPosts_Ordering(t *testing.T) {
	engine, _ := newTestEngine()

	older, err := engine.CreatePost(context.Background(), 1, "user", "older post")
	require.NoError(t, err)
	newer, err := engine.CreatePost(context.Background(), 1, "user", "newer post")
	require.NoError(t, err)

	first, err := engine.CreateComment(context.Background(), older.ID, 1, "user", "first comment", nil)
	require.NoError(t, err)
	second, err := engine.CreateComment(context.Background(), older.ID, 2, "doctor", "second comment", nil)
	require.NoError(t, err)

	posts, err := engine.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// Posts newest-first, comments oldest-first.
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)
	require.Len(t, posts[1].Comments, 2)
	assert.Equal(t, first.ID, posts[1].Comments[0].ID)
	assert.Equal(t, second.ID, posts[1].Comments[1].ID)
}

func TestAuthorProjection(t *testing.T) {
	engine, _ := newTestEngine()

	post, err := engine.CreatePost(context.Background(), 1, "user", "a post")
	require.NoError(t, err)

	_, err = engine.CreateComment(context.Background(), post.ID, 2, "doctor", "doctor says", nil)
	require.NoError(t, err)
	_, err = engine.CreateComment(context.Background(), post.ID, 1, "user", "user says", nil)
	require.NoError(t, err)
	// Author id 99 has no directory row.
	_, err = engine.CreateComment(context.Background(), post.ID, 99, "user", "ghost says", nil)
	require.NoError(t, err)

	posts, err := engine.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Comments, 3)

	byDoctor := posts[0].Comments[0]
	require.NotNil(t, byDoctor.Author)
	assert.Equal(t, "Dr. Bob", byDoctor.Author.Name)
	assert.Equal(t, "Cardiology", byDoctor.Author.Specialization)

	byUser := posts[0].Comments[1]
	require.NotNil(t, byUser.Author)
	assert.Equal(t, "Alice", byUser.Author.Name)
	assert.Empty(t, byUser.Author.Specialization)

	byGhost := posts[0].Comments[2]
	assert.Nil(t, byGhost.Author)
}
