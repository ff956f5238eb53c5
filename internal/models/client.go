package models

import "time"

// Cliente sem login, vinculado à barbearia. O telefone normalizado é a
// única chave de deduplicação; o índice composto garante a unicidade
// mesmo sob cadastros simultâneos.
type Client struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index:idx_clients_shop_phone,unique" json:"barbershop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index:idx_clients_shop_phone,unique" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
