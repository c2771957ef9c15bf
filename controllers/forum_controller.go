package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careloop/careboard/forum"
	"github.com/careloop/careboard/middleware"
	"github.com/careloop/careboard/utils"
)

const postsCacheKey = "cache:forum:posts"

// ForumController exposes the comment tree engine over HTTP.
type ForumController struct {
	engine *forum.Engine
}

// NewForumController creates a new ForumController instance.
func NewForumController(engine *forum.Engine) *ForumController {
	return &ForumController{engine: engine}
}

// ListPosts returns every post with its fully hydrated discussion tree,
// newest post first.
func (f *ForumController) ListPosts(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(postsCacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	posts, err := f.engine.ListPosts(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list posts")
		return
	}

	payload := gin.H{"posts": posts}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(postsCacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// CreatePost allows authenticated users and doctors to publish a post.
func (f *ForumController) CreatePost(ctx *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	authorID, role, ok := identityFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post, err := f.engine.CreatePost(ctx.Request.Context(), authorID, role, req.Content)
	if err != nil {
		respondForumError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(postsCacheKey)
	utils.Created(ctx, gin.H{"post": post})
}

// CreateComment adds a comment to a post, either top-level or as a reply to
// an existing comment.
func (f *ForumController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content         string  `json:"content"`
		ParentCommentID *string `json:"parentCommentId"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	authorID, role, ok := identityFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	postID := ctx.Param("id")
	comment, err := f.engine.CreateComment(ctx.Request.Context(), postID, authorID, role, req.Content, req.ParentCommentID)
	if err != nil {
		respondForumError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(postsCacheKey)
	utils.Created(ctx, gin.H{"comment": comment})
}

func respondForumError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, forum.ErrEmptyContent):
		utils.Error(ctx, http.StatusBadRequest, 40022, "content cannot be empty")
	case errors.Is(err, forum.ErrInvalidRole):
		utils.Error(ctx, http.StatusForbidden, 40303, "unsupported role")
	case errors.Is(err, forum.ErrPostNotFound):
		utils.Error(ctx, http.StatusNotFound, 40410, "post not found")
	case errors.Is(err, forum.ErrParentNotFound):
		utils.Error(ctx, http.StatusNotFound, 40411, "parent comment not found")
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50021, "forum operation failed")
	}
}

// identityFrom pulls the verified (id, role) pair the auth middleware set.
func identityFrom(ctx *gin.Context) (uint, string, bool) {
	idVal, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, "", false
	}
	id, ok := idVal.(uint)
	if !ok {
		return 0, "", false
	}
	roleVal, ok := ctx.Get(middleware.ContextRoleKey)
	if !ok {
		return 0, "", false
	}
	role, ok := roleVal.(string)
	if !ok {
		return 0, "", false
	}
	return id, role, true
}

// parseID parses a numeric row id from a path segment. Anything that is not
// a positive integer never reaches the database.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
