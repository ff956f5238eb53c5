package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/models"
)

// Endpoints administrativos da plataforma (role admin): gestão de
// contas fora do escopo de um tenant.

type AdminUserHandler struct {
	db *gorm.DB
}

func NewAdminUserHandler(db *gorm.DB) *AdminUserHandler {
	return &AdminUserHandler{db: db}
}

type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AdminUserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.
		Where("role = ?", models.RoleAdmin).
		Order("id ASC").
		Find(&users).Error; err != nil {

		httperr.Internal(c, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *AdminUserHandler) Create(c *gin.Context) {
	var req CreateAdminRequest
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
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar usuário.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		Active:       true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário.")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AdminUserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND role = ?", id, models.RoleAdmin).
		Delete(&models.User{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_user", "Erro ao remover usuário.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}
