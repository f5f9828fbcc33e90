package user

import (
	"net/http"
	"strings"

	"winntalks/internal/apperr"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "currentUser"

func tokenFromHeader(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AuthRequired rejects the request unless a valid session token resolves
// to a non-banned user.
func AuthRequired(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "access token required"})
			return
		}
		u, err := svc.GetUserByToken(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			if apperr.KindOf(err) == apperr.KindForbidden {
				status = http.StatusForbidden
			}
			c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// AuthOptional resolves the user when a valid token is present and
// silently continues otherwise.
func AuthOptional(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c)
		if token != "" {
			if u, err := svc.GetUserByToken(c.Request.Context(), token); err == nil {
				c.Set(ctxUserKey, u)
			}
		}
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := FromContext(c)
		if !ok || !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "admin access required"})
			return
		}
		c.Next()
	}
}

func FromContext(c *gin.Context) (*User, bool) {
	v, exists := c.Get(ctxUserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*User)
	return u, ok
}
