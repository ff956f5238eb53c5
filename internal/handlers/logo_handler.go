package handlers

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariapro/barbearia-api/internal/audit"
	"github.com/barbeariapro/barbearia-api/internal/cache"
	"github.com/barbeariapro/barbearia-api/internal/httperr"
	"github.com/barbeariapro/barbearia-api/internal/httpresp"
	"github.com/barbeariapro/barbearia-api/internal/media"
	"github.com/barbeariapro/barbearia-api/internal/middleware"
	"github.com/barbeariapro/barbearia-api/internal/models"
	"github.com/barbeariapro/barbearia-api/internal/storage"
)

const maxLogoUploadBytes = 5 << 20 // 5MB

type LogoHandler struct {
	db      *gorm.DB
	storage *storage.S3Storage
	cache   *cache.Client
	audit   *audit.Dispatcher
}

func NewLogoHandler(
	db *gorm.DB,
	s3 *storage.S3Storage,
	cacheClient *cache.Client,
	dispatcher *audit.Dispatcher,
) *LogoHandler {
	return &LogoHandler{
		db:      db,
		storage: s3,
		cache:   cacheClient,
		audit:   dispatcher,
	}
}

// Upload recebe multipart (campo "logo"), converte para WebP 512x512
// e publica no bucket. A URL antiga continua válida até o próximo
// upload sobrescrever a mesma chave.
func (h *LogoHandler) Upload(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if !h.storage.Enabled() {
		httperr.Internal(c, "storage_disabled", "Upload de logo indisponível no momento.")
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo 'logo'.")
		return
	}
	if fileHeader.Size > maxLogoUploadBytes {
		httperr.BadRequest(c, "file_too_large", "O logo deve ter no máximo 5MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read", "Não foi possível ler o arquivo.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxLogoUploadBytes+1))
	if err != nil {
		httperr.Internal(c, "failed_to_read", "Não foi possível ler o arquivo.")
		return
	}

	processed, err := media.ProcessLogo(data)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida, envie PNG ou JPEG.")
		return
	}

	key := fmt.Sprintf("logos/%d/logo.webp", barbershopID)
	url, err := h.storage.Upload(c.Request.Context(), key, processed, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_upload", "Não foi possível enviar o logo.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeShopNotFound, "Barbearia não encontrada.")
		return
	}

	shop.LogoURL = url
	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_save", "Não foi possível salvar o logo.")
		return
	}

	h.cache.InvalidateShop(c.Request.Context(), shop.Slug)

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       audit.ActionLogoUpdated,
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})

	httpresp.OK(c, gin.H{"logo_url": url})
}
