package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
	"github.com/jb-laurans/dockitback/pkg/helpers"
	"github.com/jb-laurans/dockitback/pkg/response"
)

const userKey = "currentUser"

// Auth validates the bearer token and loads the account behind it.
// A missing header is 401, a token that fails to parse is 403, and a
// valid token whose account no longer exists is 401 again.
func Auth(jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusForbidden, "invalid access token", err.Error())
			return
		}

		u, err := users.GetByID(claims.UserID)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "account no longer exists", nil)
			return
		}

		c.Set(userKey, u)
		c.Next()
	}
}

// RequireType gates a route to one account type. Runs after Auth.
func RequireType(t entity.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || u.Type != t {
			response.AbortError(c, http.StatusForbidden, "reserved for "+string(t)+" accounts", nil)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account Auth stored, nil outside Auth'd routes.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
