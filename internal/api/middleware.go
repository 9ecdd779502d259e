package api

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// ContextActorKey is the gin context key holding the authenticated domain.Actor.
const ContextActorKey = "actor"

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &service.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.UserID == "" || claims.Role == "" || claims.Issuer != service.TokenIssuer {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		// The actor goes on the gin context for handlers and on the request
		// context for the persistence layer's audit stamps.
		actor := claims.Actor()
		c.Set(ContextActorKey, actor)
		c.Request = c.Request.WithContext(domain.ContextWithActor(c.Request.Context(), actor))

		c.Next()
	}
}

// RoleMiddleware creates middleware to check if user has the required role(s).
// Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := actorFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}

		if !actor.HasRole(allowedRoles...) {
			abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: Role '%s' does not have permission", actor.Role))
			return
		}
		c.Next()
	}
}

// TimeoutMiddleware bounds every store call made while serving the request.
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Helper function to get the caller from context (used by handlers)
func actorFromContext(c *gin.Context) (domain.Actor, error) {
	raw, exists := c.Get(ContextActorKey)
	if !exists {
		return domain.Actor{}, errors.New("user not found in context")
	}
	actor, ok := raw.(domain.Actor)
	if !ok {
		return domain.Actor{}, errors.New("invalid user type in context")
	}
	return actor, nil
}

// mustActor returns the caller or aborts the request.
func mustActor(c *gin.Context) (domain.Actor, bool) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return domain.Actor{}, false
	}
	return actor, true
}
