package handlers

import (
	"errors"
	"net/http"

	"rosa/services/comanda"
	"rosa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ComandaHandler struct {
	ComandaSvc comanda.ComandaService
	Logger     *zap.Logger
}

func NewComandaHandler(svc comanda.ComandaService, logger *zap.Logger) *ComandaHandler {
	return &ComandaHandler{ComandaSvc: svc, Logger: logger}
}

// IssueComanda handles POST /api/admin/comandas.
func (h *ComandaHandler) IssueComanda(c *gin.Context) {
	var body struct {
		CabinName string `json:"cabinName" binding:"required"`
		GuestName string `json:"guestName"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		invalidBody(c, err)
		return
	}

	cmd, err := h.ComandaSvc.Issue(c.Request.Context(), body.CabinName, body.GuestName)
	switch {
	case errors.Is(err, comanda.ErrInvalidRequest), errors.Is(err, comanda.ErrUnknownCabin):
		utils.JSONError(c, http.StatusBadRequest, "invalid_comanda_request", err.Error())
		return
	case err != nil:
		h.Logger.Error("IssueComanda: failed to issue comanda", zap.String("cabin", body.CabinName), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to issue comanda")
		return
	}
	c.JSON(http.StatusCreated, cmd)
}
