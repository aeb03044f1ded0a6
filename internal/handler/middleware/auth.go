package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"rategrid/internal/domain/identity"
	"rategrid/internal/pkg/cookie"
	"rategrid/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

const ctxPrincipalKey = "principal"

var roleHierarchy = map[identity.Role]int{
	identity.RoleFrontDesk:       1,
	identity.RolePropertyManager: 2,
	identity.RoleRevenueManager:  3,
	identity.RoleAdmin:           4,
}

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			slog.Warn("Token carries an unknown role", "role", claims.Role)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

// RequireRoleAtLeast gates a route on the role hierarchy
// front_desk < property_manager < revenue_manager < admin.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(p.Role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func hasMinimumRole(userRole, minRole identity.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

func setPrincipal(c *gin.Context, p identity.Principal) {
	c.Set(ctxPrincipalKey, p)
	claims := map[string]any{
		"user_id": p.UserID.String(),
		"role":    p.Role.String(),
	}
	if p.PropertyID != nil {
		claims["property_id"] = p.PropertyID.String()
	}
	c.Set("jwt_claims", claims)
}

func GetPrincipal(c *gin.Context) (identity.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return identity.Principal{}, false
	}

	p, ok := v.(identity.Principal)
	return p, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		return uuid.Nil, false
	}
	return p.UserID, true
}
