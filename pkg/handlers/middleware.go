package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/models"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

// Identity resolves the bearer token to a user id and role. Tokens carry the
// claim shape {"user":{"id":"...","role":"..."}}.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		userID, role, ok := userClaims(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, role)
		c.Next()
	}
}

func userClaims(token *jwt.Token) (userID, role string, ok bool) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", false
	}
	user, ok := claims["user"].(map[string]interface{})
	if !ok {
		return "", "", false
	}
	userID, ok = user["id"].(string)
	if !ok || userID == "" {
		return "", "", false
	}
	role, _ = user["role"].(string)
	return userID, role, true
}

// RequireAdmin gates operator endpoints on the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != string(models.RoleAdmin) {
			logrus.WithField("user_id", c.GetString(ctxUserID)).Warn("access denied to admin endpoint")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
