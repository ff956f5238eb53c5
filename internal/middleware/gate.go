package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barbeariapro/barbearia-api/internal/domain/access"
	"github.com/barbeariapro/barbearia-api/internal/metrics"
)

// GateMiddleware reavalia o access gate em toda navegação protegida.
// `logicalPath` é a rota lógica do app ("/{slug}/dashboard",
// "/initial-setup", ...); o placeholder {slug} é resolvido pela
// identidade. Veredito ≠ ALLOW vira 409 {"redirect": destino},
// consumido pelo roteador do front. Nunca cacheia: a expiração do
// trial pode virar entre uma navegação e outra.
func GateMiddleware(logicalPath string, allowed ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFrom(c)

		path := logicalPath
		if identity != nil {
			path = strings.ReplaceAll(path, "{slug}", identity.TenantSlug)
		}

		gate(c, identity, path, allowed)
	}
}

// GateOnboardingAware cobre os endpoints que servem tanto a tela de
// configuração inicial quanto a de ajustes do painel: o caminho
// lógico acompanha a fase da conta.
func GateOnboardingAware(allowed ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFrom(c)

		path := access.PathInitialSetup
		if identity != nil && identity.OnboardingDone {
			path = access.DashboardPath(identity.TenantSlug)
		}

		gate(c, identity, path, allowed)
	}
}

func gate(c *gin.Context, identity *access.Identity, path string, allowed []access.Role) {
	verdict := access.Decide(identity, path, allowed, time.Now())
	if verdict.Allowed() {
		c.Next()
		return
	}

	metrics.GateRedirects.WithLabelValues(verdict.Target).Inc()
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{
		"redirect": verdict.Target,
	})
}
