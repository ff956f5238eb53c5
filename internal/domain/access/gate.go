package access

import "time"

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleBarbearia Role = "barbearia"
	RoleBarbeiro  Role = "barbeiro"
)

// IsTenantScoped informa se o papel pertence a uma barbearia.
// Admin da plataforma nunca passa pelas regras de trial/onboarding.
func (r Role) IsTenantScoped() bool {
	return r == RoleBarbearia || r == RoleBarbeiro
}

// ===============================
// Identity
// ===============================

// Identity é a foto da sessão autenticada usada pelo gate. Os campos de
// trial e onboarding são cópias desnormalizadas do tenant para decidir
// sem ir ao banco.
type Identity struct {
	Role           Role
	TenantSlug     string
	OnboardingDone bool
	TrialExpiresAt *time.Time
}

// ===============================
// Verdict
// ===============================

type VerdictKind int

const (
	KindAllow VerdictKind = iota
	KindRedirect
)

type Verdict struct {
	Kind   VerdictKind
	Target string
}

func Allow() Verdict {
	return Verdict{Kind: KindAllow}
}

func Redirect(target string) Verdict {
	return Verdict{Kind: KindRedirect, Target: target}
}

func (v Verdict) Allowed() bool {
	return v.Kind == KindAllow
}

// ===============================
// Destinations
// ===============================

const (
	PathLogin        = "/login"
	PathInitialSetup = "/initial-setup"
	PathTrialExpired = "/trial-expired"
)

func DashboardPath(slug string) string {
	return "/" + slug + "/dashboard"
}

// ===============================
// Decision
// ===============================

// Decide avalia as regras em ordem fixa: onboarding pendente vem antes
// da checagem de trial. A função é pura, sem estado nem relógio
// ambiente; `now` chega por parâmetro e o veredito nunca deve ser
// cacheado entre navegações, já que a expiração do trial pode virar
// com o tempo.
//
//  1. Sem identidade            → /login
//  2. Onboarding pendente       → /initial-setup (exceto nela mesma)
//  3. Onboarding feito          → /initial-setup vira /{slug}/dashboard
//  4. Trial expirado            → /trial-expired
//  5. Papel fora do allow-list  → /login
//  6. Caso contrário            → ALLOW
func Decide(id *Identity, path string, allowed []Role, now time.Time) Verdict {
	if id == nil {
		return Redirect(PathLogin)
	}

	if id.Role.IsTenantScoped() {
		if !id.OnboardingDone && path != PathInitialSetup {
			return Redirect(PathInitialSetup)
		}

		if id.OnboardingDone && path == PathInitialSetup {
			return Redirect(DashboardPath(id.TenantSlug))
		}

		if id.TrialExpiresAt != nil && id.TrialExpiresAt.Before(now) {
			return Redirect(PathTrialExpired)
		}
	}

	if !roleAllowed(id.Role, allowed) {
		return Redirect(PathLogin)
	}

	return Allow()
}

func roleAllowed(role Role, allowed []Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
