package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

const (
	contextKeyUserID = "user_id"
	contextKeyToken  = "session_token"
)

// MsgUnauthenticated is the body message for every rejected credential.
const MsgUnauthenticated = "Token inválido ou expirado"

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. A missing prefix or an empty token is rejected.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

// UserIDFromContext returns the current user ID set by RequireBearer. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// TokenFromContext returns the session token set by RequireBearer.
func TokenFromContext(c *gin.Context) string {
	return c.GetString(contextKeyToken)
}

// RequireBearer returns a middleware that resolves the bearer token to a
// live session and sets the user ID in context. If missing or invalid,
// responds with 401 and stops the chain.
func RequireBearer(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgUnauthenticated})
			return
		}
		userID, ok := sessions.GetUserID(c.Request.Context(), token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgUnauthenticated})
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Set(contextKeyToken, token)
		c.Next()
	}
}
