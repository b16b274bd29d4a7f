package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

const identityContextKey = "autoshop.identity"

// TokenVerifier turns a bearer token into a caller identity.
// *auth.TokenIssuer satisfies it.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// AuthMiddleware guards secured routes with bearer-token verification.
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware wires the verifier into the middleware.
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Handler parses the Authorization header and stores the identity in the
// request context for the handlers downstream.
func (m *AuthMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || m.verifier == nil {
			respondError(c, http.StatusUnauthorized, errors.New("authentication not configured"))
			c.Abort()
			return
		}
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			respondError(c, http.StatusUnauthorized, errors.New("missing bearer token"))
			c.Abort()
			return
		}
		identity, err := m.verifier.Verify(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the authenticated caller stored by the middleware.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	return identity, ok
}

func bearerToken(header string) string {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireIdentity fetches the caller or answers 401 when the middleware
// did not run. Handlers on secured routes call this first.
func requireIdentity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("caller identity missing"))
		return auth.Identity{}, false
	}
	return identity, true
}
