// Package middleware provides HTTP middleware for the API.
//
// Go Pattern: Middleware in Gin is a gin.HandlerFunc that calls c.Next() to
// continue the chain, or c.Abort() to stop processing.
package middleware

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdf-text-service/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	apiKeyContextKey  contextKey = "api_key"
	subjectContextKey contextKey = "jwt_subject"
)

// Authenticator checks X-API-Key headers and Bearer tokens.
//
// Keys come from configuration, not a database: the service has no user
// accounts, so a short static list plus a shared JWT secret is enough.
// With neither configured, every request is let through.
type Authenticator struct {
	keys      map[string]*models.APIKey // keyed by SHA-256 hash
	jwtSecret string
}

// NewAuthenticator builds an authenticator from raw API keys and a JWT secret.
// Empty keys are ignored.
func NewAuthenticator(rawKeys []string, jwtSecret string) *Authenticator {
	a := &Authenticator{
		keys:      make(map[string]*models.APIKey),
		jwtSecret: jwtSecret,
	}
	for _, raw := range rawKeys {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		hash := HashAPIKey(raw)
		a.keys[hash] = &models.APIKey{
			ID:        "key_" + hash[:12],
			KeyHash:   hash,
			KeyPrefix: prefix(raw, 8),
		}
	}
	return a
}

// Enabled reports whether any credential is configured.
func (a *Authenticator) Enabled() bool {
	return len(a.keys) > 0 || a.jwtSecret != ""
}

// Lookup returns the API key matching a raw key, or nil.
func (a *Authenticator) Lookup(rawKey string) *models.APIKey {
	return a.keys[HashAPIKey(rawKey)]
}

// Authenticate returns middleware that accepts EITHER an API key OR a JWT.
//
// How it works:
// 1. Try the X-API-Key header (hashed, then looked up)
// 2. Try Authorization: Bearer <token>
// 3. If neither is valid, return 401 Unauthorized
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}

		// Try API key first
		if rawKey := c.GetHeader("X-API-Key"); rawKey != "" {
			if apiKey := a.Lookup(rawKey); apiKey != nil {
				c.Set(string(apiKeyContextKey), apiKey)
				c.Next()
				return
			}
		}

		// Try JWT token
		if a.jwtSecret != "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				claims, err := ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), a.jwtSecret)
				// A token without a subject can't own records or a bucket.
				if err == nil && claims.Subject != "" {
					c.Set(string(subjectContextKey), claims.Subject)
					c.Next()
					return
				}
			}
		}

		// Neither auth method worked
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "Provide a valid X-API-Key header or Authorization: Bearer <token>",
			Code:    http.StatusUnauthorized,
		})
		c.Abort() // Stop the middleware chain, don't call the handler
	}
}

// GetAPIKey retrieves the authenticated API key from the request context.
// Call this in your handlers after the auth middleware has run.
func GetAPIKey(c *gin.Context) *models.APIKey {
	val, exists := c.Get(string(apiKeyContextKey))
	if !exists {
		return nil
	}
	// Go Pattern: Type assertion with the comma-ok idiom won't panic if wrong type.
	key, ok := val.(*models.APIKey)
	if !ok {
		return nil
	}
	return key
}

// GetSubject returns the JWT subject of the request, or "".
func GetSubject(c *gin.Context) string {
	return c.GetString(string(subjectContextKey))
}

// Principal names the authenticated caller: "key:<id>" for an API key,
// "jwt:<subject>" for a bearer token, or "" when auth is off.
// History rows are owned by it and rate limit buckets are keyed on it.
func Principal(c *gin.Context) string {
	if apiKey := GetAPIKey(c); apiKey != nil {
		return "key:" + apiKey.ID
	}
	if sub := GetSubject(c); sub != "" {
		return "jwt:" + sub
	}
	return ""
}

// HashAPIKey creates a SHA-256 hash of an API key.
// We store hashes, not raw keys, same principle as password hashing.
func HashAPIKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
