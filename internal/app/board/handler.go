package board

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetActiveBoards(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List boards
// @Description Get all active boards with their visible post counts
// @Tags Board
// @Accept json
// @Produce json
// @Success 200 {object} BoardListResponse
// @Router /api/boards [get]
func (h *handler) GetActiveBoards(c *gin.Context) {
	boards, err := h.service.GetActiveBoards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch boards"})
		return
	}
	c.JSON(http.StatusOK, BoardListResponse{Boards: boards})
}
