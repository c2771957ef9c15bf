package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careloop/careboard/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated id in Gin context.
	ContextUserIDKey = "user_id"
	// ContextNameKey stores the display name inside Gin context.
	ContextNameKey = "user_name"
	// ContextRoleKey stores the identity role ("user" or "doctor").
	ContextRoleKey = "role"
)

// AuthRequired verifies the bearer JWT and places the identity in context.
// This is the identity provider boundary: handlers behind it can assume a
// verified (id, role) pair.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid token")
			ctx.Abort()
			return
		}

		role := strings.ToLower(claims.Role)
		if role != "user" && role != "doctor" {
			utils.Error(ctx, http.StatusForbidden, 40301, "unsupported role")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextNameKey, claims.Name)
		ctx.Set(ContextRoleKey, role)
		ctx.Next()
	}
}

// RequireRole rejects identities whose role differs from want. Must run
// behind AuthRequired.
func RequireRole(want string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role, ok := ctx.Get(ContextRoleKey)
		if !ok || role != want {
			utils.Error(ctx, http.StatusForbidden, 40302, "insufficient role")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
