package models

import "time"

// Author kind tags. They select which directory table an author reference
// points into; roles from the identity provider map onto them by
// capitalization ("user" -> "User", "doctor" -> "Doctor").
const (
	AuthorKindUser   = "User"
	AuthorKindDoctor = "Doctor"
)

// ForumPost is a post document. CommentIDs holds ids of top-level comments
// only, in insertion order; nested replies hang off the comments themselves.
type ForumPost struct {
	ID         string    `bson:"_id" json:"id"`
	Content    string    `bson:"content" json:"content"`
	AuthorID   uint      `bson:"authorId" json:"-"`
	AuthorKind string    `bson:"authorKind" json:"authorType"`
	CommentIDs []string  `bson:"comments" json:"-"`
	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
}

// ForumComment is a comment document. ParentID is nil for a top-level
// comment; ReplyIDs holds ids of direct children in insertion order.
type ForumComment struct {
	ID         string    `bson:"_id" json:"id"`
	Content    string    `bson:"content" json:"content"`
	AuthorID   uint      `bson:"authorId" json:"-"`
	AuthorKind string    `bson:"authorKind" json:"authorType"`
	PostID     string    `bson:"post" json:"post_id"`
	ParentID   *string   `bson:"parentComment" json:"parent_id,omitempty"`
	ReplyIDs   []string  `bson:"replies" json:"-"`
	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
}

// Author is the display projection embedded on hydrated forum nodes.
// Specialization is only set for doctors.
type Author struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
}

// CommentNode is a hydrated comment: author resolved, replies expanded.
type CommentNode struct {
	ForumComment
	Author  *Author       `json:"author"`
	Replies []CommentNode `json:"replies"`
}

// PostNode is a hydrated post with its full discussion tree.
type PostNode struct {
	ForumPost
	Author   *Author       `json:"author"`
	Comments []CommentNode `json:"comments"`
}
