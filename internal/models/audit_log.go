package models

import "time"

// AuditLog é a trilha de auditoria por tenant. A escrita é assíncrona
// pelo dispatcher; a leitura é a listagem paginada do painel, sempre
// por barbearia e do mais recente para o mais antigo, daí o índice
// composto.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint   `gorm:"index:idx_audit_logs_shop_created,priority:1" json:"barbershop_id"`
	UserID       *uint  `json:"user_id"`
	Action       string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index:idx_audit_logs_shop_created,priority:2" json:"created_at"`
}
