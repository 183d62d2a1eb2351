package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/middleware"
)

// --------------------------------------------------
// Contexto autenticado
// --------------------------------------------------

func tenantFrom(c *gin.Context) uint {
	return c.MustGet(middleware.ContextTenantID).(uint)
}

func actorFrom(c *gin.Context) *uint {
	id, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	uid := id.(uint)
	return &uid
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// --------------------------------------------------
// Erros
// --------------------------------------------------

func fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFoundResponse(c, "not_found", "Registro não encontrado.")
		return
	}
	httperr.FromError(c, err)
}
