package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key under which parsed claims are stored.
const ClaimsKey = "claims"

// Middleware enforces bearer JWT tokens signed with HS256.
type Middleware struct {
	signingKey string
	issuer     string
	denylist   *Denylist
}

// NewMiddleware builds the auth middleware. denylist may be nil.
func NewMiddleware(signingKey, issuer string, denylist *Denylist) *Middleware {
	return &Middleware{signingKey: signingKey, issuer: issuer, denylist: denylist}
}

// Authenticated rejects requests without a valid bearer token.
func (m *Middleware) Authenticated() gin.HandlerFunc {
	return m.require("")
}

// RequireRole additionally rejects tokens whose role claim differs.
func (m *Middleware) RequireRole(role string) gin.HandlerFunc {
	return m.require(role)
}

func (m *Middleware) require(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := Parse(token, m.signingKey, m.issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if m.denylist.Contains(c.Request.Context(), token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}
		if role != "" && claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// BearerToken extracts the raw bearer token from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	authz := c.GetHeader("Authorization")
	if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(authz[len("bearer "):]), true
}

// ClaimsFrom returns the claims stored by the middleware, if any.
func ClaimsFrom(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}
