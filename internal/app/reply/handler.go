package reply

import (
	"net/http"

	"winntalks/internal/apperr"
	"winntalks/internal/app/user"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateReply(c *gin.Context)
	RemoveReply(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Reply to a post
// @Description Inserts the reply and updates the parent's counters atomically
// @Tags Reply
// @Accept json
// @Produce json
// @Param uuid path string true "Post UUID"
// @Param request body CreateReplyRequest true "Reply payload"
// @Success 201 {object} Reply
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/posts/{uuid}/replies [post]
func (h *handler) CreateReply(c *gin.Context) {
	var req CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reply body is required"})
		return
	}

	u, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "access token required"})
		return
	}

	reply, err := h.service.CreateReply(c.Request.Context(), c.Param("uuid"), u.ID, req.Body)
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindValidation:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case apperr.KindNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case apperr.KindLocked:
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "something went wrong on our end"})
		}
		return
	}

	c.JSON(http.StatusCreated, reply)
}

func (h *handler) RemoveReply(c *gin.Context) {
	if err := h.service.RemoveReply(c.Request.Context(), c.Param("uuid")); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "something went wrong on our end"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reply removed"})
}
