package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"rankings-admin/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	HeaderAdminToken        = "x-admin-token"
	HeaderLocalStorageToken = "x-local-storage-token"
	CookieAdminSession      = "admin-session"

	// Context keys set for authorised requests.
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// AdminAuth holds the demo credentials accepted by AdminAuthMiddleware.
// Any single matching signal authorises the request.
type AdminAuth struct {
	Token             string
	Session           string
	LocalStorageToken string
	// UserID is recorded for requests authorised by a demo signal.
	UserID string
	JWT    *jwt.Service
}

func AdminAuthMiddleware(auth AdminAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.Authorize(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, jwt.RoleAdmin)
		c.Next()
	}
}

// Authorize reports whether the request carries an admin signal and for whom.
func (a AdminAuth) Authorize(c *gin.Context) (string, bool) {
	if matches(c.GetHeader(HeaderAdminToken), a.Token) {
		return a.UserID, true
	}
	if cookie, err := c.Cookie(CookieAdminSession); err == nil && matches(cookie, a.Session) {
		return a.UserID, true
	}
	if matches(c.GetHeader(HeaderLocalStorageToken), a.LocalStorageToken) {
		return a.UserID, true
	}

	if a.JWT == nil {
		return "", false
	}
	token, ok := bearerToken(c)
	if !ok {
		return "", false
	}
	claims, err := a.JWT.ValidateToken(token)
	if err != nil || claims.Role != jwt.RoleAdmin {
		return "", false
	}
	return claims.UserID, true
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// matches never accepts an empty expected value.
func matches(got, expected string) bool {
	if got == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}
