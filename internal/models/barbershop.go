package models

import "time"

type Barbershop struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64" json:"timezone"`

	// OnboardingDone substitui a heurística antiga de comparar o nome
	// com o placeholder gerado no cadastro.
	OnboardingDone bool `gorm:"default:false" json:"onboarding_done"`

	// nil = conta paga / sem trial
	TrialExpiresAt *time.Time `json:"trial_expires_at"`

	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`
	LogoURL           string `gorm:"size:255" json:"logo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
