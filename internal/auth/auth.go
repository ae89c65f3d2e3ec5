// Package auth guards the admin API with HMAC-signed bearer tokens.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the role claim required on admin routes.
const RoleAdmin = "Admin"

// Context keys set by Middleware.
const (
	KeyUserID = "user_id"
	KeyRole   = "role"
)

// Middleware enforces a valid HS256 token signed with secret and copies the
// user_id and role claims into the gin context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server_not_configured"})
			return
		}
		tokenString, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set(KeyUserID, claims["user_id"])
			if r, ok := claims["role"].(string); ok {
				c.Set(KeyRole, r)
			}
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose role is not Admin. Use after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_required"})
			return
		}
		c.Next()
	}
}

// IsAdmin reports whether the current request carries the Admin role.
func IsAdmin(c *gin.Context) bool {
	role, _ := c.Get(KeyRole)
	r, _ := role.(string)
	return r == RoleAdmin
}

// IssueToken signs a token for userID with the given role.
func IssueToken(secret, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// bearer extracts the token from the Authorization header, falling back to
// the access_token query parameter for websocket upgrades, which cannot set
// headers from a browser.
func bearer(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		if t := c.Query("access_token"); t != "" {
			return t, true
		}
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
