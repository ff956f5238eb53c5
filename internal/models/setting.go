package models

import "time"

// Configuração chave/valor de branding (nome do sistema, logo,
// e-mail de suporte). Leitura intensiva, cacheada em Redis.
type Setting struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index:idx_settings_shop_key,unique" json:"barbershop_id"`

	Key   string `gorm:"size:64;index:idx_settings_shop_key,unique;not null" json:"key"`
	Value string `gorm:"size:512" json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
