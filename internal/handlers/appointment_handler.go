package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/httpresp"
	"github.com/barbeariapro/barbearia-api/internal/middleware"
	usecase "github.com/barbeariapro/barbearia-api/internal/usecase/schedule"
)

type AppointmentHandler struct {
	reserve     *usecase.ReserveSlot
	listByDate  *usecase.ListAppointmentsByDate
	listByMonth *usecase.ListAppointmentsByMonth
	cancel      *usecase.CancelAppointment
	complete    *usecase.CompleteAppointment
}

func NewAppointmentHandler(
	reserve *usecase.ReserveSlot,
	listByDate *usecase.ListAppointmentsByDate,
	listByMonth *usecase.ListAppointmentsByMonth,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		reserve:     reserve,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		cancel:      cancel,
		complete:    complete,
	}
}

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

// Create agenda pelo painel do próprio barbeiro: sem antecedência
// mínima, só não pode estar no passado.
func (h *AppointmentHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos para o agendamento.")
		return
	}

	ap, err := h.reserve.Execute(c.Request.Context(), usecase.ReserveSlotInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		Internal:     true,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida, use YYYY-MM-DD.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), barberID, barbershopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "Não foi possível listar os agendamentos.")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Informe year e month válidos.")
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), barberID, barbershopID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "Não foi possível listar os agendamentos.")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), barbershopID, barberID, uint(id))
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), barbershopID, barberID, uint(id))
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// writeScheduleError traduz os códigos de negócio da agenda para HTTP.
func writeScheduleError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeSlotConflict):
		httperr.Conflict(c, httperr.CodeSlotConflict, "Este horário acabou de ser reservado. Escolha outro.")
	case httperr.IsBusiness(err, httperr.CodeInvalidSlot):
		httperr.BadRequest(c, httperr.CodeInvalidSlot, "Horário fora da grade de atendimento.")
	case httperr.IsBusiness(err, httperr.CodeBarberNotFound):
		httperr.NotFound(c, httperr.CodeBarberNotFound, "Barbeiro não encontrado.")
	case httperr.IsBusiness(err, httperr.CodeShopNotFound):
		httperr.NotFound(c, httperr.CodeShopNotFound, "Barbearia não encontrada.")
	case httperr.IsBusiness(err, "past_date"):
		httperr.BadRequest(c, "past_date", "Não é possível agendar no passado.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Este horário não respeita a antecedência mínima.")
	case httperr.IsBusiness(err, "invalid_phone"):
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.Conflict(c, "invalid_state", "O agendamento não permite mais esta operação.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
	default:
		httperr.Internal(c, "internal_error", "Erro interno ao processar o agendamento.")
	}
}
