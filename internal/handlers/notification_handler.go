package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/barbeariapro/barbearia-api/internal/domain/schedule"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/httpresp"
	"github.com/barbeariapro/barbearia-api/internal/middleware"
	"github.com/barbeariapro/barbearia-api/internal/timezone"
)

// NotificationHandler alimenta o sininho do painel: quantos
// agendamentos ainda vão acontecer hoje na barbearia.
type NotificationHandler struct {
	repo domain.Repository
}

func NewNotificationHandler(repo domain.Repository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) GetToday(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	shop, err := h.repo.GetBarbershopByID(c.Request.Context(), barbershopID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeShopNotFound, "Barbearia não encontrada.")
		return
	}

	now := timezone.NowIn(shop.Timezone)
	_, endOfDay := timezone.DayBounds(now)

	count, err := h.repo.CountScheduledBetween(c.Request.Context(), barbershopID, now, endOfDay)
	if err != nil {
		httperr.Internal(c, "failed_to_count", "Não foi possível contar os agendamentos.")
		return
	}

	httpresp.OK(c, gin.H{"upcoming_today": count})
}
