package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/media"
)

// ======================================================
// HANDLER
// ======================================================

// MediaHandler recebe logo e avatar. uploader nil desliga os uploads.
type MediaHandler struct {
	repo     domain.Repository
	catalog  catalog.Repository
	uploader *media.Uploader
}

func NewMediaHandler(
	repo domain.Repository,
	catalog catalog.Repository,
	uploader *media.Uploader,
) *MediaHandler {
	return &MediaHandler{repo: repo, catalog: catalog, uploader: uploader}
}

// readImage lê o campo "file" do multipart com limite de tamanho.
func (h *MediaHandler) readImage(c *gin.Context) ([]byte, bool) {
	if h.uploader == nil {
		httperr.Unavailable(c, "uploads_disabled", "Upload de imagens indisponível.")
		return nil, false
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return nil, false
	}
	if fh.Size > media.MaxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Arquivo muito grande.")
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Arquivo inválido.")
		return nil, false
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, media.MaxUploadBytes+1))
	if err != nil || len(body) > media.MaxUploadBytes {
		httperr.BadRequest(c, "invalid_file", "Arquivo inválido.")
		return nil, false
	}
	return body, true
}

func uploadFailed(c *gin.Context, err error) {
	if errors.Is(err, media.ErrInvalidImage) {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida. Use PNG, JPEG ou WebP.")
		return
	}
	httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
}

// ======================================================
// LOGO
// ======================================================

func (h *MediaHandler) UploadLogo(c *gin.Context) {
	body, ok := h.readImage(c)
	if !ok {
		return
	}

	tenant, err := h.repo.GetTenant(c.Request.Context(), tenantFrom(c))
	if err != nil {
		fail(c, err)
		return
	}

	url, err := h.uploader.Logo(c.Request.Context(), tenant.ID, body)
	if err != nil {
		uploadFailed(c, err)
		return
	}

	tenant.LogoURL = url
	if err := h.catalog.SaveTenant(c.Request.Context(), tenant); err != nil {
		httperr.Internal(c, "failed_to_update_tenant", "Erro ao atualizar barbearia.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

// ======================================================
// AVATAR
// ======================================================

func (h *MediaHandler) UploadAvatar(c *gin.Context) {
	tenantID := tenantFrom(c)

	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	body, ok := h.readImage(c)
	if !ok {
		return
	}

	p, err := h.repo.GetProfessional(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if p.TenantID != tenantID {
		fail(c, httperr.TenantMismatch("professional_tenant_mismatch"))
		return
	}

	url, err := h.uploader.Avatar(c.Request.Context(), tenantID, body)
	if err != nil {
		uploadFailed(c, err)
		return
	}

	p.AvatarURL = url
	if err := h.catalog.SaveProfessional(c.Request.Context(), p); err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
