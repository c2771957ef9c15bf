// Package forum owns creation, linkage, and hierarchical retrieval of
// posts, top-level comments, and arbitrarily nested replies. Each comment
// is an independent document; the tree exists only in the id-array linkage
// fields and is rebuilt here on every read.
package forum

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careboard/directory"
	"github.com/careloop/careboard/models"
	"github.com/careloop/careboard/storage"
	"github.com/careloop/careboard/utils"
)

// Engine is the comment tree engine.
type Engine struct {
	store   storage.ForumStore
	authors directory.Resolver
}

// NewEngine wires the engine over a document store and an author resolver.
func NewEngine(store storage.ForumStore, authors directory.Resolver) *Engine {
	return &Engine{store: store, authors: authors}
}

// KindFromRole maps an identity provider role onto the stored author kind
// tag ("user" -> "User", "doctor" -> "Doctor").
func KindFromRole(role string) (string, error) {
	switch strings.ToLower(role) {
	case "user":
		return models.AuthorKindUser, nil
	case "doctor":
		return models.AuthorKindDoctor, nil
	}
	return "", ErrInvalidRole
}

// CreatePost persists a new post with no comments and returns it hydrated.
func (e *Engine) CreatePost(ctx context.Context, authorID uint, role, content string) (*models.PostNode, error) {
	kind, err := KindFromRole(role)
	if err != nil {
		return nil, err
	}
	content = utils.Sanitize(strings.TrimSpace(content))
	if content == "" {
		return nil, ErrEmptyContent
	}

	post := &models.ForumPost{
		ID:         uuid.NewString(),
		Content:    content,
		AuthorID:   authorID,
		AuthorKind: kind,
		CommentIDs: []string{},
		CreatedAt:  time.Now(),
	}
	if err := e.store.InsertPost(ctx, post); err != nil {
		return nil, err
	}

	return &models.PostNode{
		ForumPost: *post,
		Author:    e.resolveAuthor(ctx, kind, authorID, nil),
		Comments:  []models.CommentNode{},
	}, nil
}

// CreateComment persists a new comment and splices its id into the parent
// comment's reply list, or the post's top-level comment list when parentID
// is nil. The target must exist: dangling references are rejected instead
// of silently orphaning the comment. The two writes are not transactional;
// the link step is idempotent so it can be retried.
func (e *Engine) CreateComment(ctx context.Context, postID string, authorID uint, role, content string, parentID *string) (*models.CommentNode, error) {
	kind, err := KindFromRole(role)
	if err != nil {
		return nil, err
	}
	content = utils.Sanitize(strings.TrimSpace(content))
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := e.store.FindPost(ctx, postID); err != nil {
		return nil, postErr(err)
	}
	if parentID != nil {
		parent, err := e.store.FindComment(ctx, *parentID)
		if err != nil {
			return nil, parentErr(err)
		}
		if parent.PostID != postID {
			return nil, ErrParentNotFound
		}
	}

	comment := &models.ForumComment{
		ID:         uuid.NewString(),
		Content:    content,
		AuthorID:   authorID,
		AuthorKind: kind,
		PostID:     postID,
		ParentID:   parentID,
		ReplyIDs:   []string{},
		CreatedAt:  time.Now(),
	}
	if err := e.store.InsertComment(ctx, comment); err != nil {
		return nil, err
	}

	if parentID != nil {
		if err := e.store.LinkCommentReply(ctx, *parentID, comment.ID); err != nil {
			return nil, parentErr(err)
		}
	} else {
		if err := e.store.LinkPostComment(ctx, postID, comment.ID); err != nil {
			return nil, postErr(err)
		}
	}

	return &models.CommentNode{
		ForumComment: *comment,
		Author:       e.resolveAuthor(ctx, kind, authorID, nil),
		Replies:      []models.CommentNode{},
	}, nil
}

// ListPosts materializes every post with its entire discussion tree: posts
// newest-first, comments within a post oldest-first, replies recursively
// expanded to whatever depth the data contains, every node's author
// resolved.
func (e *Engine) ListPosts(ctx context.Context) ([]models.PostNode, error) {
	posts, err := e.store.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	// Per-request memo so an author appearing on many nodes is looked up once.
	memo := map[authorRef]*models.Author{}

	nodes := make([]models.PostNode, 0, len(posts))
	for _, post := range posts {
		comments, err := e.expand(ctx, post.CommentIDs, memo)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, models.PostNode{
			ForumPost: post,
			Author:    e.resolveAuthor(ctx, post.AuthorKind, post.AuthorID, memo),
			Comments:  comments,
		})
	}
	return nodes, nil
}

// expand loads the comments behind ids and recursively hydrates their reply
// subtrees, oldest-first at every level. Ids with no backing document are
// skipped; linkage order breaks creation time ties.
func (e *Engine) expand(ctx context.Context, ids []string, memo map[authorRef]*models.Author) ([]models.CommentNode, error) {
	if len(ids) == 0 {
		return []models.CommentNode{}, nil
	}

	found, err := e.store.FindComments(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.ForumComment, len(found))
	for _, comment := range found {
		byID[comment.ID] = comment
	}

	ordered := make([]models.ForumComment, 0, len(found))
	for _, id := range ids {
		if comment, ok := byID[id]; ok {
			ordered = append(ordered, comment)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	nodes := make([]models.CommentNode, 0, len(ordered))
	for _, comment := range ordered {
		replies, err := e.expand(ctx, comment.ReplyIDs, memo)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, models.CommentNode{
			ForumComment: comment,
			Author:       e.resolveAuthor(ctx, comment.AuthorKind, comment.AuthorID, memo),
			Replies:      replies,
		})
	}
	return nodes, nil
}

type authorRef struct {
	kind string
	id   uint
}

// resolveAuthor tolerates resolver failures: a node with an unresolvable
// author renders a null author instead of failing the request.
func (e *Engine) resolveAuthor(ctx context.Context, kind string, id uint, memo map[authorRef]*models.Author) *models.Author {
	ref := authorRef{kind: kind, id: id}
	if memo != nil {
		if author, ok := memo[ref]; ok {
			return author
		}
	}
	author, err := e.authors.Resolve(ctx, kind, id)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("author resolution failed kind=%s id=%d err=%v", kind, id, err)
		}
		author = nil
	}
	if memo != nil {
		memo[ref] = author
	}
	return author
}

func postErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}

func parentErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrParentNotFound
	}
	return err
}
