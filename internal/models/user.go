package models

import "time"

const (
	RoleAdmin     = "admin"
	RoleBarbearia = "barbearia"
	RoleBarbeiro  = "barbeiro"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Zero para contas admin da plataforma.
	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'barbearia'" json:"role"`

	// Granularidade de slot do barbeiro, em minutos.
	SlotMinutes int  `gorm:"default:30" json:"slot_minutes"`
	Active      bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
