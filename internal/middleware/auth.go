package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"roomscheduler/internal/domain"
	"roomscheduler/internal/pkg/jwt"
	"roomscheduler/internal/pkg/response"
	"roomscheduler/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "user_id"
	ctxRole     = "role"
	ctxIdentity = "identity"
)

// UserLookup loads the current user row; repository.ErrNotFound when absent.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// JWTAuth validates the bearer token, reloads the user it names and stores
// the caller identity in the context. The role comes from the stored user,
// so role changes and deletions apply to tokens already issued.
func JWTAuth(tokens *jwt.Service, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		if _, err := domain.ParseRole(claims.Role); err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
				return
			}
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
			return
		}

		role, err := domain.ParseRole(string(user.Role))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		identity := domain.Identity{UserID: user.ID, Role: role}
		c.Set(ctxUserID, identity.UserID)
		c.Set(ctxRole, string(identity.Role))
		c.Set(ctxIdentity, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by JWTAuth.
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	if !ok || identity.UserID == 0 {
		return domain.Identity{}, false
	}
	return identity, true
}
