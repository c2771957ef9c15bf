package storage

import (
	"context"
	"errors"

	"github.com/careloop/careboard/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// ForumStore is the document store the comment tree engine runs on. The
// store has no tree primitive: posts and comments are independent records
// and the tree is reconstructed from the id-array linkage fields.
type ForumStore interface {
	InsertPost(ctx context.Context, post *models.ForumPost) error
	FindPost(ctx context.Context, id string) (*models.ForumPost, error)
	// ListPosts returns all posts newest-first by creation time.
	ListPosts(ctx context.Context) ([]models.ForumPost, error)

	InsertComment(ctx context.Context, comment *models.ForumComment) error
	FindComment(ctx context.Context, id string) (*models.ForumComment, error)
	// FindComments returns the documents for the given ids; ids with no
	// backing document are silently absent from the result.
	FindComments(ctx context.Context, ids []string) ([]models.ForumComment, error)

	// LinkPostComment appends commentID to the post's top-level comment
	// list. Idempotent; ErrNotFound when the post does not exist.
	LinkPostComment(ctx context.Context, postID, commentID string) error
	// LinkCommentReply appends commentID to the parent comment's reply
	// list. Idempotent; ErrNotFound when the parent does not exist.
	LinkCommentReply(ctx context.Context, parentID, commentID string) error
}
