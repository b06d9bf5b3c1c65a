// Package auth guards the admin endpoints with a shared admin key.
//
// The configured key is bcrypt-hashed at startup so the plaintext never
// lives in memory longer than necessary; requests present the key in the
// X-Admin-Key header. An empty key disables the admin surface entirely.
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminKeyHeader carries the admin key on protected requests.
const AdminKeyHeader = "X-Admin-Key"

var ErrKeyTooLong = errors.New("admin key exceeds maximum length of 72 bytes")

// Guard validates admin keys against a bcrypt hash.
type Guard struct {
	hash []byte
}

// NewGuard hashes the configured admin key. An empty key yields a disabled
// guard whose middleware rejects every request.
func NewGuard(key string, cost int) (*Guard, error) {
	if key == "" {
		return &Guard{}, nil
	}
	// bcrypt has a 72-byte limit
	if len(key) > 72 {
		return nil, ErrKeyTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return nil, err
	}
	return &Guard{hash: hash}, nil
}

// Enabled reports whether an admin key is configured.
func (g *Guard) Enabled() bool {
	return len(g.hash) > 0
}

// Check verifies a presented key against the stored hash.
func (g *Guard) Check(key string) bool {
	if !g.Enabled() || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(key)) == nil
}

// Middleware returns a Gin handler that rejects requests without a valid
// admin key.
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Enabled() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin endpoints are disabled",
			})
			return
		}

		if !g.Check(c.GetHeader(AdminKeyHeader)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid admin key",
			})
			return
		}

		c.Next()
	}
}
