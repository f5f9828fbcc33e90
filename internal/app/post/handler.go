package post

import (
	"net/http"

	"winntalks/internal/apperr"
	"winntalks/internal/app/user"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreatePost(c *gin.Context)
	GetPostByUUID(c *gin.Context)
	CastVote(c *gin.Context)
	ReportPost(c *gin.Context)
	RemovePost(c *gin.Context)
	PinPost(c *gin.Context)
	LockPost(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperr.KindLocked, apperr.KindForbidden:
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case apperr.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "something went wrong on our end"})
	}
}

// @Summary Create a post
// @Tags Post
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post payload"
// @Success 201 {object} Post
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/posts [post]
func (h *handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "board, title, and body are required"})
		return
	}

	u, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "access token required"})
		return
	}

	p, err := h.service.CreatePost(c.Request.Context(), req.BoardSlug, u.ID, req.Title, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary Get a post with its replies
// @Description Returns the post and its visible replies; each view increments the view counter
// @Tags Post
// @Produce json
// @Param uuid path string true "Post UUID"
// @Success 200 {object} PostDetailResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/posts/{uuid} [get]
func (h *handler) GetPostByUUID(c *gin.Context) {
	detail, err := h.service.GetPostByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary Vote on a post
// @Description Upserts the caller's vote; one vote per user per post, latest value wins
// @Tags Post
// @Accept json
// @Produce json
// @Param uuid path string true "Post UUID"
// @Param request body VoteRequest true "Vote payload, value must be -1 or 1"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /api/posts/{uuid}/vote [post]
func (h *handler) CastVote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "vote value is required"})
		return
	}

	u, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "access token required"})
		return
	}

	if err := h.service.CastVote(c.Request.Context(), c.Param("uuid"), u.ID, req.Value); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vote recorded"})
}

// @Summary Report a post
// @Description Anonymous reports are allowed; the reporter is recorded when authenticated
// @Tags Post
// @Accept json
// @Produce json
// @Param uuid path string true "Post UUID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /api/posts/{uuid}/report [post]
func (h *handler) ReportPost(c *gin.Context) {
	var req ReportRequest
	_ = c.ShouldBindJSON(&req)

	var reporterID *uint64
	if u, ok := user.FromContext(c); ok {
		reporterID = &u.ID
	}

	if err := h.service.ReportPost(c.Request.Context(), c.Param("uuid"), reporterID, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report submitted"})
}

// @Summary Remove a post
// @Description Soft delete; the post disappears from feeds and search but stays in storage
// @Tags Moderation
// @Produce json
// @Param uuid path string true "Post UUID"
// @Success 200 {object} map[string]string
// @Router /api/posts/{uuid} [delete]
func (h *handler) RemovePost(c *gin.Context) {
	if err := h.service.RemovePost(c.Request.Context(), c.Param("uuid")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post removed"})
}

func (h *handler) PinPost(c *gin.Context) {
	var req struct {
		Pinned *bool `json:"pinned" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "pinned flag is required"})
		return
	}
	if err := h.service.SetPinned(c.Request.Context(), c.Param("uuid"), *req.Pinned); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post updated"})
}

func (h *handler) LockPost(c *gin.Context) {
	var req struct {
		Locked *bool `json:"locked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "locked flag is required"})
		return
	}
	if err := h.service.SetLocked(c.Request.Context(), c.Param("uuid"), *req.Locked); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post updated"})
}
