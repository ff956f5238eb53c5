package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbeariapro/barbearia-api/internal/config"
	"github.com/barbeariapro/barbearia-api/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "segredo-de-teste"}
}

func parseClaims(t *testing.T, cfg *config.Config, token string) jwt.MapClaims {
	t.Helper()

	parsed, err := jwt.Parse(token, func(_ *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

// A sessão é a foto do tenant no momento da emissão. Quem conclui o
// onboarding precisa receber um token novo com onboardingDone=true,
// senão o gate continua mandando de volta para o setup.
func TestSignTokenCarriesFreshTenantFacets(t *testing.T) {
	cfg := testConfig()
	trialEnd := time.Now().Add(7 * 24 * time.Hour)

	user := &models.User{
		ID:           3,
		BarbershopID: 9,
		Role:         models.RoleBarbearia,
	}
	shop := &models.Barbershop{
		ID:             9,
		Slug:           "navalha-de-ouro",
		OnboardingDone: false,
		TrialExpiresAt: &trialEnd,
	}

	before, err := signToken(cfg, user, shop)
	require.NoError(t, err)
	assert.Equal(t, false, parseClaims(t, cfg, before)["onboardingDone"])

	shop.OnboardingDone = true
	after, err := signToken(cfg, user, shop)
	require.NoError(t, err)

	claims := parseClaims(t, cfg, after)
	assert.Equal(t, true, claims["onboardingDone"])
	assert.Equal(t, "navalha-de-ouro", claims["slug"])
	assert.Equal(t, models.RoleBarbearia, claims["role"])
	assert.EqualValues(t, trialEnd.Unix(), claims["trialExpiresAt"])
}

func TestSignTokenAdminWithoutTenantFacets(t *testing.T) {
	cfg := testConfig()

	user := &models.User{ID: 1, Role: models.RoleAdmin}
	token, err := signToken(cfg, user, nil)
	require.NoError(t, err)

	claims := parseClaims(t, cfg, token)
	assert.NotContains(t, claims, "slug")
	assert.NotContains(t, claims, "onboardingDone")
	assert.NotContains(t, claims, "trialExpiresAt")
}
