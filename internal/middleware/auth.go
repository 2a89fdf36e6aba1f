package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/arenaplay/scoreboard/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.parseToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth populates the caller's identity when a valid token is
// present and lets the request through either way. Used on the public
// leaderboard route, where authenticated callers additionally get their
// own rank in the response.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := m.parseToken(c); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) parseToken(c *gin.Context) (*service.TokenClaims, error) {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		return nil, fmt.Errorf("authorization required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &service.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(*service.TokenClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

func setClaims(c *gin.Context, claims *service.TokenClaims) {
	c.Set("user_id", claims.Subject)
	c.Set("username", claims.Username)
	c.Set("first_name", claims.FirstName)
}
