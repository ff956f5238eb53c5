package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariapro/barbearia-api/internal/cache"
	"github.com/barbeariapro/barbearia-api/internal/dto"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/httpresp"
	"github.com/barbeariapro/barbearia-api/internal/models"
	usecase "github.com/barbeariapro/barbearia-api/internal/usecase/schedule"
)

// PublicHandler atende a página de agendamento do cliente final,
// toda fora de autenticação e escopada pelo slug da barbearia.
type PublicHandler struct {
	db           *gorm.DB
	cache        *cache.Client
	availability *usecase.GetAvailability
	reserve      *usecase.ReserveSlot
}

func NewPublicHandler(
	db *gorm.DB,
	cacheClient *cache.Client,
	availability *usecase.GetAvailability,
	reserve *usecase.ReserveSlot,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		cache:        cacheClient,
		availability: availability,
		reserve:      reserve,
	}
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	slug := c.Param("slug")

	if shop, ok := h.cache.GetShop(c.Request.Context(), slug); ok {
		return shop, true
	}

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, httperr.CodeShopNotFound, "Barbearia não encontrada.")
		return nil, false
	}

	h.cache.SetShop(c.Request.Context(), &shop)
	return &shop, true
}

func (h *PublicHandler) GetProfile(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	httpresp.OK(c, gin.H{
		"name":     shop.Name,
		"slug":     shop.Slug,
		"phone":    shop.Phone,
		"address":  shop.Address,
		"timezone": shop.Timezone,
		"logo_url": shop.LogoURL,
		"branding": h.brandingSettings(c, shop.ID),
	})
}

func (h *PublicHandler) brandingSettings(c *gin.Context, barbershopID uint) map[string]string {
	if settings, ok := h.cache.GetSettings(c.Request.Context(), barbershopID); ok {
		return settings
	}

	var rows []models.Setting
	if err := h.db.Where("barbershop_id = ?", barbershopID).Find(&rows).Error; err != nil {
		return map[string]string{}
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	h.cache.SetSettings(c.Request.Context(), barbershopID, settings)
	return settings
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var barbers []models.User
	if err := h.db.
		Select("id", "name", "slot_minutes").
		Where("barbershop_id = ? AND active = ? AND role IN ?",
			shop.ID, true, []string{models.RoleBarbearia, models.RoleBarbeiro}).
		Order("name ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list", "Não foi possível listar os barbeiros.")
		return
	}

	type publicBarber struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		SlotMinutes int    `json:"slot_minutes"`
	}

	out := make([]publicBarber, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, publicBarber{ID: b.ID, Name: b.Name, SlotMinutes: b.SlotMinutes})
	}

	httpresp.List(c, out)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("barbershop_id = ? AND active = ?", shop.ID, true).
		Order("category ASC, name ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list", "Não foi possível listar os serviços.")
		return
	}

	httpresp.List(c, services)
}

// GetAvailability devolve a grade completa do dia: cada slot do
// expediente com status free ou booked, em ordem. O front pinta a
// grade direto, sem calcular nada.
func (h *PublicHandler) GetAvailability(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Barbeiro inválido.")
		return
	}

	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	date, err := parseDateInShop(shop, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida, use YYYY-MM-DD.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), usecase.AvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     uint(barberID),
		Date:         date,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	grid := make([]dto.SlotDTO, 0, len(slots))
	for _, s := range slots {
		grid = append(grid, dto.SlotDTO{
			Start:  s.Start.Format("15:04"),
			End:    s.End.Format("15:04"),
			Status: string(s.Status),
		})
	}

	httpresp.OK(c, gin.H{
		"date":  c.Query("date"),
		"slots": grid,
	})
}

type PublicAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

// CreateAppointment é a reserva feita pelo cliente final. Tudo que o
// navegador mandou é revalidado aqui; grade desatualizada vira 409 e
// o front recarrega os horários.
func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos para o agendamento.")
		return
	}

	ap, err := h.reserve.Execute(c.Request.Context(), usecase.ReserveSlotInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		Internal:     false,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"reference":  ap.Reference,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}
