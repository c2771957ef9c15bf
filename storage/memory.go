package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/careloop/careboard/models"
)

// MemoryStore is an in-process ForumStore with the same contract as the
// mongo implementation. It backs the tests and local development without a
// database.
type MemoryStore struct {
	mu       sync.RWMutex
	posts    map[string]*models.ForumPost
	comments map[string]*models.ForumComment
	seq      map[string]int // insertion sequence, breaks createdAt ties
	next     int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:    make(map[string]*models.ForumPost),
		comments: make(map[string]*models.ForumComment),
		seq:      make(map[string]int),
	}
}

func (s *MemoryStore) InsertPost(ctx context.Context, post *models.ForumPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *post
	clone.CommentIDs = append([]string{}, post.CommentIDs...)
	s.posts[post.ID] = &clone
	s.next++
	s.seq[post.ID] = s.next
	return nil
}

func (s *MemoryStore) FindPost(ctx context.Context, id string) (*models.ForumPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *post
	clone.CommentIDs = append([]string{}, post.CommentIDs...)
	return &clone, nil
}

func (s *MemoryStore) ListPosts(ctx context.Context) ([]models.ForumPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]models.ForumPost, 0, len(s.posts))
	for _, post := range s.posts {
		clone := *post
		clone.CommentIDs = append([]string{}, post.CommentIDs...)
		posts = append(posts, clone)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return s.seq[posts[i].ID] > s.seq[posts[j].ID]
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *MemoryStore) InsertComment(ctx context.Context, comment *models.ForumComment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *comment
	clone.ReplyIDs = append([]string{}, comment.ReplyIDs...)
	s.comments[comment.ID] = &clone
	s.next++
	s.seq[comment.ID] = s.next
	return nil
}

func (s *MemoryStore) FindComment(ctx context.Context, id string) (*models.ForumComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *comment
	clone.ReplyIDs = append([]string{}, comment.ReplyIDs...)
	return &clone, nil
}

func (s *MemoryStore) FindComments(ctx context.Context, ids []string) ([]models.ForumComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comments := make([]models.ForumComment, 0, len(ids))
	for _, id := range ids {
		comment, ok := s.comments[id]
		if !ok {
			continue
		}
		clone := *comment
		clone.ReplyIDs = append([]string{}, comment.ReplyIDs...)
		comments = append(comments, clone)
	}
	return comments, nil
}

func (s *MemoryStore) LinkPostComment(ctx context.Context, postID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	post.CommentIDs = addToSet(post.CommentIDs, commentID)
	return nil
}

func (s *MemoryStore) LinkCommentReply(ctx context.Context, parentID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent, ok := s.comments[parentID]
	if !ok {
		return ErrNotFound
	}
	parent.ReplyIDs = addToSet(parent.ReplyIDs, commentID)
	return nil
}

func addToSet(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
