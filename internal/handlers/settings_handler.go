package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/barbeariapro/barbearia-api/internal/audit"
	"github.com/barbeariapro/barbearia-api/internal/cache"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/httpresp"
	"github.com/barbeariapro/barbearia-api/internal/middleware"
	"github.com/barbeariapro/barbearia-api/internal/models"
)

// Chaves aceitas no branding. Qualquer outra é recusada para o kv
// não virar depósito de estado arbitrário do front.
var allowedSettingKeys = map[string]bool{
	"system_name":    true,
	"support_email":  true,
	"primary_color":  true,
	"welcome_text":   true,
	"booking_footer": true,
}

type SettingsHandler struct {
	db    *gorm.DB
	cache *cache.Client
	audit *audit.Dispatcher
}

func NewSettingsHandler(db *gorm.DB, cacheClient *cache.Client, dispatcher *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{db: db, cache: cacheClient, audit: dispatcher}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	if settings, ok := h.cache.GetSettings(c.Request.Context(), barbershopID); ok {
		httpresp.OK(c, settings)
		return
	}

	var rows []models.Setting
	if err := h.db.Where("barbershop_id = ?", barbershopID).Find(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Não foi possível carregar as configurações.")
		return
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	h.cache.SetSettings(c.Request.Context(), barbershopID, settings)
	httpresp.OK(c, settings)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corpo inválido, envie um objeto chave/valor.")
		return
	}

	for key := range req {
		if !allowedSettingKeys[key] {
			httperr.BadRequest(c, "invalid_setting_key", "Chave de configuração não reconhecida: "+key)
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range req {
			row := models.Setting{
				BarbershopID: barbershopID,
				Key:          key,
				Value:        value,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "barbershop_id"}, {Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_settings", "Não foi possível salvar as configurações.")
		return
	}

	h.cache.InvalidateSettings(c.Request.Context(), barbershopID)

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       audit.ActionSettingsUpdated,
		Entity:       "settings",
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
