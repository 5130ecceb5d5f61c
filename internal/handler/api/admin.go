package api

import (
	"net/http"

	resdto "github.com/DevasenapathiKS/mockomi-sub001/internal/handler/dto/response"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/handler/httperr"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes operational endpoints; the scheduled reaper covers
// normal operation, this is the manual trigger.
type AdminHandler struct {
	sweepCommands commands.SweepCommands
}

func NewAdminHandler(sweepCommands commands.SweepCommands) *AdminHandler {
	return &AdminHandler{sweepCommands: sweepCommands}
}

func (h *AdminHandler) SweepExpired(c *gin.Context) {
	expired, err := h.sweepCommands.SweepExpired(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.SweepResponse{Expired: expired})
}
