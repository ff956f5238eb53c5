package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noon = time.Date(2030, time.June, 10, 12, 0, 0, 0, time.UTC)

func tenant(role Role, slug string, onboarded bool, trialEnd *time.Time) *Identity {
	return &Identity{
		Role:           role,
		TenantSlug:     slug,
		OnboardingDone: onboarded,
		TrialExpiresAt: trialEnd,
	}
}

func TestDecideWithoutIdentity(t *testing.T) {
	v := Decide(nil, "/joe/dashboard", []Role{RoleBarbearia}, noon)
	assert.Equal(t, Redirect(PathLogin), v)
}

func TestDecideOnboardingPending(t *testing.T) {
	id := tenant(RoleBarbearia, "joe", false, nil)

	t.Run("qualquer rota redireciona para o setup", func(t *testing.T) {
		v := Decide(id, "/joe/dashboard", []Role{RoleBarbearia}, noon)
		assert.Equal(t, Redirect(PathInitialSetup), v)
	})

	t.Run("o setup em si é liberado", func(t *testing.T) {
		v := Decide(id, PathInitialSetup, []Role{RoleBarbearia}, noon)
		assert.True(t, v.Allowed())
	})
}

func TestDecideOnboardingDoneLeavesSetup(t *testing.T) {
	id := tenant(RoleBarbearia, "joe", true, nil)

	v := Decide(id, PathInitialSetup, []Role{RoleBarbearia}, noon)
	assert.Equal(t, Redirect("/joe/dashboard"), v)
}

func TestDecideTrialExpired(t *testing.T) {
	yesterday := noon.Add(-24 * time.Hour)
	id := tenant(RoleBarbearia, "joe", true, &yesterday)

	v := Decide(id, "/joe/dashboard", []Role{RoleBarbearia}, noon)
	assert.Equal(t, Redirect(PathTrialExpired), v)
}

func TestDecideTrialStillActive(t *testing.T) {
	tomorrow := noon.Add(24 * time.Hour)
	id := tenant(RoleBarbeiro, "joe", true, &tomorrow)

	v := Decide(id, "/joe/dashboard", []Role{RoleBarbearia, RoleBarbeiro}, noon)
	assert.True(t, v.Allowed())
}

// Onboarding pendente tem precedência sobre trial expirado: a conta
// recém-criada sempre termina o setup antes de ver a tela de cobrança.
func TestDecideOnboardingBeforeTrial(t *testing.T) {
	yesterday := noon.Add(-24 * time.Hour)
	id := tenant(RoleBarbearia, "joe", false, &yesterday)

	v := Decide(id, "/joe/dashboard", []Role{RoleBarbearia}, noon)
	assert.Equal(t, Redirect(PathInitialSetup), v)
}

func TestDecideRoleNotAllowed(t *testing.T) {
	id := tenant(RoleBarbeiro, "joe", true, nil)

	v := Decide(id, "/joe/dashboard", []Role{RoleBarbearia}, noon)
	assert.Equal(t, Redirect(PathLogin), v)
}

// Admin da plataforma não tem tenant: regras de onboarding e trial não
// se aplicam.
func TestDecideAdminSkipsTenantRules(t *testing.T) {
	yesterday := noon.Add(-24 * time.Hour)
	id := &Identity{
		Role:           RoleAdmin,
		OnboardingDone: false,
		TrialExpiresAt: &yesterday,
	}

	v := Decide(id, "/admin", []Role{RoleAdmin}, noon)
	assert.True(t, v.Allowed())
}

func TestDecideNilTrialNeverExpires(t *testing.T) {
	id := tenant(RoleBarbearia, "joe", true, nil)

	v := Decide(id, "/joe/dashboard", []Role{RoleBarbearia}, noon)
	require.True(t, v.Allowed())
}

func TestVerdictHelpers(t *testing.T) {
	assert.True(t, Allow().Allowed())
	assert.False(t, Redirect(PathLogin).Allowed())
	assert.Equal(t, "/joe/dashboard", DashboardPath("joe"))
}
