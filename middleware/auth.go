package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	config "github.com/nayeem/cleanup-portal-go/config"
	services "github.com/nayeem/cleanup-portal-go/services"
)

const sessionKey = "session"

// AuthRequired enforces the bearer-token contract on protected routes.
// Tokens are HMAC-signed JWTs minted by the external auth provider;
// the server only verifies them and lifts the identity claims into a
// Session. A missing or invalid token means 401 and the client is
// expected to redirect to login.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionFromRequest(c, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// AuthOptional lifts the session when a valid token is present and
// passes an empty session through otherwise. Used on POST /issues so
// pre-login optimistic submissions still reach the validator, which
// attaches an empty reporter email instead of failing.
func AuthOptional(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, err := sessionFromRequest(c, cfg); err == nil {
			c.Set(sessionKey, session)
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by the auth middleware, or
// a zero Session when the request was anonymous.
func CurrentSession(c *gin.Context) services.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(services.Session); ok {
			return s
		}
	}
	return services.Session{}
}

func sessionFromRequest(c *gin.Context, cfg *config.Config) (services.Session, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return services.Session{}, fmt.Errorf("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return services.Session{}, fmt.Errorf("empty bearer token")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return services.Session{}, fmt.Errorf("invalid token: %w", err)
	}

	session := services.Session{
		Email:       claimString(claims, "email"),
		DisplayName: claimString(claims, "name"),
		PhotoURL:    claimString(claims, "picture"),
		Role:        claimString(claims, "role"),
	}
	if session.Email == "" {
		return services.Session{}, fmt.Errorf("token has no email claim")
	}
	return session, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}
