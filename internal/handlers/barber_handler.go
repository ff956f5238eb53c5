package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/barbeariapro/barbearia-api/internal/audit"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/middleware"
	"github.com/barbeariapro/barbearia-api/internal/models"
)

// Wrappers de gestão de conta: criar/alterar/remover barbeiros da
// barbearia. Operações finas sobre o banco, sem invariantes além de
// "propagar erro do remoto".

type BarberHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBarberHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *BarberHandler {
	return &BarberHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone"`
	SlotMinutes int    `json:"slot_minutes"`
}

type UpdateBarberRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	SlotMinutes *int    `json:"slot_minutes,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var barbers []models.User
	if err := h.db.
		Where(
			"barbershop_id = ? AND role IN ?",
			barbershopID,
			[]string{models.RoleBarbearia, models.RoleBarbeiro},
		).
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar barbeiro.")
		return
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = 30
	}

	barber := models.User{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleBarbeiro,
		SlotMinutes:  slotMinutes,
		Active:       true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       audit.ActionBarberCreated,
		Entity:       "user",
		EntityID:     &barber.ID,
	})

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var barber models.User
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&barber).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.SlotMinutes != nil {
		if *req.SlotMinutes <= 0 {
			httperr.BadRequest(c, "invalid_slot_minutes", "Granularidade deve ser positiva.")
			return
		}
		barber.SlotMinutes = *req.SlotMinutes
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	c.JSON(http.StatusOK, barber)
}

// Delete desativa a conta em vez de apagar: agendamentos históricos
// continuam apontando para o barbeiro.
func (h *BarberHandler) Delete(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var barber models.User
	if err := h.db.
		Where("id = ? AND barbershop_id = ? AND role = ?", id, barbershopID, models.RoleBarbeiro).
		First(&barber).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return
	}

	barber.Active = false
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_remove_barber", "Erro ao remover barbeiro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       audit.ActionBarberRemoved,
		Entity:       "user",
		EntityID:     &barber.ID,
	})

	c.Status(http.StatusNoContent)
}
