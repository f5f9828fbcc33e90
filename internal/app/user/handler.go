package user

import (
	"net/http"

	"winntalks/internal/apperr"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Me(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Register a new account
// @Description Create a pseudonymous account; the username is generated server-side
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/auth/register [post]
func (h *handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindValidation:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case apperr.KindConflict:
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "registration failed, please try again"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindUnauthorized:
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		case apperr.KindForbidden:
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "login failed, please try again"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} User
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/me [get]
func (h *handler) Me(c *gin.Context) {
	u, ok := FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "access token required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
