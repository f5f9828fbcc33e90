package feed

import (
	"net/http"
	"strconv"

	"winntalks/internal/apperr"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Recent(c *gin.Context)
	Trending(c *gin.Context)
	Search(c *gin.Context)
	BoardPage(c *gin.Context)
}

type handler struct {
	service       Service
	recentLimit   int
	trendingLimit int
	searchLimit   int
	pageSize      int
}

func NewHandler(service Service, recentLimit, trendingLimit, searchLimit, pageSize int) Handler {
	return &handler{
		service:       service,
		recentLimit:   recentLimit,
		trendingLimit: trendingLimit,
		searchLimit:   searchLimit,
		pageSize:      pageSize,
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

// @Summary Recent posts
// @Description Homepage feed ordered by pin status, then last reply time
// @Tags Feed
// @Produce json
// @Param limit query int false "Max posts to return"
// @Success 200 {object} PostListResponse
// @Router /api/posts/recent [get]
func (h *handler) Recent(c *gin.Context) {
	posts, err := h.service.Recent(c.Request.Context(), intQuery(c, "limit", h.recentLimit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch recent posts"})
		return
	}
	c.JSON(http.StatusOK, PostListResponse{Posts: posts})
}

// @Summary Trending posts
// @Description Posts created within the hot window, ranked by heat score
// @Tags Feed
// @Produce json
// @Success 200 {object} PostListResponse
// @Router /api/posts/trending [get]
func (h *handler) Trending(c *gin.Context) {
	posts, err := h.service.Trending(c.Request.Context(), intQuery(c, "limit", h.trendingLimit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch trending posts"})
		return
	}
	c.JSON(http.StatusOK, PostListResponse{Posts: posts})
}

// @Summary Search posts
// @Description Case-insensitive substring match on title or body, newest first
// @Tags Feed
// @Produce json
// @Param q query string true "Search query, at least 2 characters"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/posts/search [get]
func (h *handler) Search(c *gin.Context) {
	query := c.Query("q")
	posts, err := h.service.Search(c.Request.Context(), query, intQuery(c, "limit", h.searchLimit))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "search failed"})
		return
	}
	c.JSON(http.StatusOK, SearchResponse{Results: posts, Query: query})
}

// @Summary Board page
// @Description Board details plus one page of its posts
// @Tags Feed
// @Produce json
// @Param slug path string true "Board slug"
// @Param page query int false "1-based page number"
// @Param sort query string false "Sort policy: recent or hot"
// @Success 200 {object} BoardPageResult
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{slug} [get]
func (h *handler) BoardPage(c *gin.Context) {
	page := intQuery(c, "page", 1)
	sort := c.DefaultQuery("sort", SortRecent)

	result, err := h.service.BoardPage(c.Request.Context(), c.Param("slug"), page, h.pageSize, sort)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch board"})
		return
	}
	c.JSON(http.StatusOK, result)
}
