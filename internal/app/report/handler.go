package report

import (
	"net/http"
	"strconv"

	"winntalks/internal/apperr"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	ListReports(c *gin.Context)
	ResolveReport(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List reports
// @Tags Moderation
// @Produce json
// @Param unresolved query bool false "Only unresolved reports"
// @Success 200 {object} ReportListResponse
// @Router /api/reports [get]
func (h *handler) ListReports(c *gin.Context) {
	unresolvedOnly := c.Query("unresolved") == "true"

	reports, err := h.service.ListReports(c.Request.Context(), unresolvedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch reports"})
		return
	}
	c.JSON(http.StatusOK, ReportListResponse{Reports: reports})
}

func (h *handler) ResolveReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid report ID"})
		return
	}

	if err := h.service.ResolveReport(c.Request.Context(), id); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to resolve report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "report resolved"})
}
