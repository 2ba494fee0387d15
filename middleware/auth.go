package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/models"
	"github.com/sultan-bakery/sultan-orders-api/services"
)

// session ties an opaque bearer token to an authenticated user. The master
// administrator is not stored in the users table, so the session keeps a
// snapshot of the identity rather than just an id.
type session struct {
	Token     string
	User      models.User
	CreatedAt time.Time
}

// sessionStore is the process-local token registry. Like the alert dedup set,
// it resets on restart; there is no cross-process session sharing.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
}

var sessions = &sessionStore{sessions: make(map[string]session)}

// CreateSession registers a new bearer token for the user and returns it
func CreateSession(user *models.User) string {
	token := uuid.NewString()

	sessions.mu.Lock()
	sessions.sessions[token] = session{
		Token:     token,
		User:      *user,
		CreatedAt: time.Now(),
	}
	sessions.mu.Unlock()

	return token
}

// DestroySession invalidates a bearer token. Unknown tokens are a no-op.
func DestroySession(token string) {
	sessions.mu.Lock()
	delete(sessions.sessions, token)
	sessions.mu.Unlock()
}

// ResetSessions clears all sessions (primarily for testing)
func ResetSessions() {
	sessions.mu.Lock()
	sessions.sessions = make(map[string]session)
	sessions.mu.Unlock()
}

// resolveToken returns the user bound to the token, or nil
func resolveToken(token string) *models.User {
	sessions.mu.RLock()
	s, ok := sessions.sessions[token]
	sessions.mu.RUnlock()

	if !ok {
		return nil
	}
	user := s.User
	return &user
}

// RequireAuth checks the Authorization bearer token and stores the
// authenticated user in the Gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Authorization header with bearer token is required",
				},
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user := resolveToken(token)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Session token is invalid or expired",
				},
			})
			c.Abort()
			return
		}

		c.Set("current_user", user)
		c.Set("session_token", token)
		c.Next()
	}
}

// RequirePermission checks that the authenticated user holds the given
// permission. Must run after RequireAuth.
func RequirePermission(perm models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Could not extract user information",
				},
			})
			c.Abort()
			return
		}

		perms := services.NewPermissionService(config.GetDB())
		if !perms.HasPermission(user, perm) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions to access this resource",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser extracts the authenticated user from the Gin context
func CurrentUser(c *gin.Context) (*models.User, error) {
	value, exists := c.Get("current_user")
	if !exists {
		return nil, &AuthError{Code: "MISSING_USER", Message: "User not found in context"}
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, &AuthError{Code: "INVALID_USER", Message: "User in context has unexpected type"}
	}

	return user, nil
}

// SessionToken extracts the bearer token from the Gin context
func SessionToken(c *gin.Context) (string, error) {
	value, exists := c.Get("session_token")
	if !exists {
		return "", &AuthError{Code: "MISSING_TOKEN", Message: "Session token not found in context"}
	}

	token, ok := value.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_TOKEN", Message: "Session token is not a string"}
	}

	return token, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
