package middleware

import (
	"strings"

	"foodie/internal/domain"
	"foodie/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type TokenVerifier interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// Authenticate resolves the caller from a bearer token when one is present.
// Anonymous or invalid callers pass through without an identity; services
// decide whether that is acceptable.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := resolveIdentity(c, verifier); id != nil {
			setIdentity(c, id)
		}
		c.Next()
	}
}

// IdentityFrom returns the caller resolved by Authenticate, or nil.
func IdentityFrom(c *gin.Context) *domain.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*domain.Identity)
	return id
}

func resolveIdentity(c *gin.Context, verifier TokenVerifier) *domain.Identity {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		return nil
	}

	id, err := IdentityFromToken(verifier, tokenStr)
	if err != nil {
		return nil
	}
	return id
}

// IdentityFromToken verifies a raw token and maps its claims onto an Identity.
// A token without a role claim belongs to a client.
func IdentityFromToken(verifier TokenVerifier, tokenStr string) (*domain.Identity, error) {
	claims, err := verifier.ValidateToken(tokenStr)
	if err != nil {
		return nil, err
	}

	role := domain.UserRole(claims.AppMetadata.Role)
	if role == "" {
		role = domain.RoleClient
	}
	return &domain.Identity{
		UserID: claims.UserID(),
		Email:  claims.Email,
		Role:   role,
	}, nil
}

func setIdentity(c *gin.Context, id *domain.Identity) {
	c.Set(identityKey, id)
	c.Set("user_id", id.UserID)
	c.Set("role", string(id.Role))
}
