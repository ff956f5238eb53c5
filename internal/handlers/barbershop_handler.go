package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariapro/barbearia-api/internal/audit"
	"github.com/barbeariapro/barbearia-api/internal/cache"
	"github.com/barbeariapro/barbearia-api/internal/config"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/middleware"
	"github.com/barbeariapro/barbearia-api/internal/models"
	"github.com/barbeariapro/barbearia-api/internal/timezone"
)

type BarbershopHandler struct {
	db     *gorm.DB
	config *config.Config
	cache  *cache.Client
	audit  *audit.Dispatcher
}

func NewBarbershopHandler(db *gorm.DB, cfg *config.Config, cacheClient *cache.Client, dispatcher *audit.Dispatcher) *BarbershopHandler {
	return &BarbershopHandler{db: db, config: cfg, cache: cacheClient, audit: dispatcher}
}

type UpdateBarbershopRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

// UpdateMeBarbershop também é a rota do setup inicial: a primeira troca
// do nome placeholder marca o onboarding como concluído. Flag
// dedicada, sem comparar string de nome depois disso.
func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	onboardingJustDone := false

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ser vazio.")
			return
		}
		if !shop.OnboardingDone && name != shop.Name {
			shop.OnboardingDone = true
			onboardingJustDone = true
		}
		shop.Name = name
	}

	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	h.cache.InvalidateShop(c.Request.Context(), shop.Slug)

	if onboardingJustDone {
		h.audit.Dispatch(audit.Event{
			BarbershopID: shop.ID,
			UserID:       &userID,
			Action:       audit.ActionOnboardingCompleted,
			Entity:       "barbershop",
			EntityID:     &shop.ID,
		})

		// O token em uso ainda diz onboardingDone=false e o gate
		// continuaria redirecionando para o setup. Reemite a sessão
		// com a foto atualizada do tenant.
		var user models.User
		if err := h.db.First(&user, userID).Error; err == nil {
			if token, err := signToken(h.config, &user, &shop); err == nil {
				c.JSON(http.StatusOK, gin.H{
					"barbershop": shop,
					"token":      token,
				})
				return
			}
		}
	}

	c.JSON(http.StatusOK, shop)
}
