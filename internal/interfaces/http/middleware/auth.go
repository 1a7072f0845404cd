package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rohan-darji/ai-humanizer/internal/domain/services"
)

const sessionKey = "session"

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the resolved session on the gin context.
func JWTAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFromHeader(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization required",
				"message": "Please provide a valid bearer token in the authorization header",
			})
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves a session when a token is present but lets
// anonymous requests through; the humanize endpoint serves the free-trial
// path without an account.
func OptionalAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, ok := sessionFromHeader(c, authService); ok {
			c.Set(sessionKey, session)
		}
		c.Next()
	}
}

func sessionFromHeader(c *gin.Context, authService services.AuthService) (*services.Session, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, false
	}

	claims, err := authService.ValidateToken(tokenParts[1])
	if err != nil {
		return nil, false
	}

	return &services.Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Plan:   claims.Plan,
	}, true
}

// GetSession returns the session stored by the auth middleware, or nil for
// anonymous requests.
func GetSession(c *gin.Context) *services.Session {
	if v, exists := c.Get(sessionKey); exists {
		if session, ok := v.(*services.Session); ok {
			return session
		}
	}
	return nil
}
