package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/domain"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware validates bearer tokens and resolves the caller's identity.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Any failure yields the
// same 401 with a Bearer challenge; the internal cause is never surfaced.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return m.unauthorized(c)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return m.unauthorized(c)
	}

	claims, err := m.tokens.Validate(parts[1])
	if err != nil {
		return m.unauthorized(c)
	}

	// A token without a subject carries no identity; treat it as invalid.
	if claims.Subject == "" {
		return m.unauthorized(c)
	}

	c.Locals(identityKey, &domain.Identity{
		Username: claims.Subject,
		UserID:   claims.UserID,
	})
	return c.Next()
}

func (m *AuthMiddleware) unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return apperrors.NewUnauthorized("invalid authentication credentials")
}

// IdentityFromContext retrieves the authenticated identity set by Handle.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
