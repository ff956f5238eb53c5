package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/barbeariapro/barbearia-api/internal/config"
	"github.com/barbeariapro/barbearia-api/internal/models"
	"github.com/barbeariapro/barbearia-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopSlug    string `json:"barbershop_slug" binding:"required"`
	BarbershopPhone   string `json:"barbershop_phone"`
	BarbershopAddress string `json:"barbershop_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register cria o tenant com nome placeholder ("Barbearia de <dono>") e
// onboarding pendente; o primeiro rename no setup inicial marca o
// onboarding como concluído. O trial começa a contar aqui.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.BarbershopSlug))

	var count int64
	h.db.Model(&models.Barbershop{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	trialEnd := time.Now().AddDate(0, 0, h.config.TrialDays)

	shop := models.Barbershop{
		Name:           placeholderShopName(req.Name),
		Slug:           slug,
		Phone:          req.BarbershopPhone,
		Address:        req.BarbershopAddress,
		OnboardingDone: false,
		TrialExpiresAt: &trialEnd,
	}

	if err := h.db.Create(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_barbershop"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		BarbershopID: shop.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleBarbearia,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := signToken(h.config, &user, &shop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":       userPayload(&user),
		"barbershop": shopPayload(&shop),
		"token":      token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Barbershop").
		Where("email = ? AND active = true", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := signToken(h.config, &user, &user.Barbershop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       userPayload(&user),
		"barbershop": shopPayload(&user.Barbershop),
		"token":      token,
	})
}

// --------- JWT ---------

// O token carrega as facetas que o gate precisa (slug, onboarding,
// trial) desnormalizadas na emissão: a sessão é a foto do tenant
// naquele instante. Quem muda essas facetas reemite o token.
func signToken(cfg *config.Config, user *models.User, shop *models.Barbershop) (string, error) {
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"barbershopId": user.BarbershopID,
		"role":         user.Role,
		"exp":          time.Now().Add(24 * time.Hour).Unix(),
		"iat":          time.Now().Unix(),
	}

	if user.Role != models.RoleAdmin && shop != nil {
		claims["slug"] = shop.Slug
		claims["onboardingDone"] = shop.OnboardingDone
		if shop.TrialExpiresAt != nil {
			claims["trialExpiresAt"] = shop.TrialExpiresAt.Unix()
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// --------- Helpers ---------

func placeholderShopName(ownerName string) string {
	first := strings.TrimSpace(ownerName)
	if i := strings.IndexByte(first, ' '); i > 0 {
		first = first[:i]
	}
	return fmt.Sprintf("Barbearia de %s", first)
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"phone":         user.Phone,
		"role":          user.Role,
		"barbershop_id": user.BarbershopID,
	}
}

func shopPayload(shop *models.Barbershop) gin.H {
	return gin.H{
		"id":               shop.ID,
		"name":             shop.Name,
		"slug":             shop.Slug,
		"phone":            shop.Phone,
		"address":          shop.Address,
		"onboarding_done":  shop.OnboardingDone,
		"trial_expires_at": shop.TrialExpiresAt,
		"logo_url":         shop.LogoURL,
	}
}
