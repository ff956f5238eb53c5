package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/barbeariapro/barbearia-api/internal/config"
	"github.com/barbeariapro/barbearia-api/internal/domain/access"
)

const (
	ContextUserID       = "userID"
	ContextBarbershopID = "barbershopID"
	ContextIdentity     = "identity"
)

// AuthMiddleware valida o JWT e monta a Identity consumida pelo gate.
// As facetas de trial/onboarding viajam no token: cópias
// desnormalizadas feitas no login, para decidir rota sem ir ao banco.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok1 := claims["sub"].(float64)
		barbershopID, ok2 := claims["barbershopId"].(float64)
		role, ok3 := claims["role"].(string)
		if !ok1 || !ok2 || !ok3 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		slug, _ := claims["slug"].(string)
		onboardingDone, _ := claims["onboardingDone"].(bool)

		identity := &access.Identity{
			Role:           access.Role(role),
			TenantSlug:     slug,
			OnboardingDone: onboardingDone,
		}

		if exp, ok := claims["trialExpiresAt"].(float64); ok && exp > 0 {
			t := time.Unix(int64(exp), 0)
			identity.TrialExpiresAt = &t
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextBarbershopID, uint(barbershopID))
		c.Set(ContextIdentity, identity)

		c.Next()
	}
}

// IdentityFrom recupera a Identity colocada pelo AuthMiddleware.
// nil = requisição não autenticada.
func IdentityFrom(c *gin.Context) *access.Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*access.Identity)
	return id
}
