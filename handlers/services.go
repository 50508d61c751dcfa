package handlers

import (
	"net/http"

	"rosa/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the service and cabin lists used by booking forms.
type CatalogHandler struct {
	CatalogSvc catalog.CatalogService
	Logger     *zap.Logger
}

func NewCatalogHandler(svc catalog.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{CatalogSvc: svc, Logger: logger}
}

// ListServices handles GET /api/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.CatalogSvc.ListServices(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListServices: failed to fetch services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to fetch services",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListCabins handles GET /api/cabanas.
func (h *CatalogHandler) ListCabins(c *gin.Context) {
	cabins, err := h.CatalogSvc.ListCabins(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListCabins: failed to fetch cabins", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to fetch cabins",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, cabins)
}
