package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/httpresp"
)

type ClientHandler struct {
	catalog catalog.Repository
}

func NewClientHandler(catalog catalog.Repository) *ClientHandler {
	return &ClientHandler{catalog: catalog}
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.catalog.ListClients(c.Request.Context(), tenantFrom(c), c.Query("query"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}
