package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateup/backend/internal/domain"
	"github.com/plateup/backend/internal/usecase"
)

const (
	// maxBatchNames caps the number of names accepted by the batch resolve endpoint
	maxBatchNames = 100
	// maxNameLength caps a single food name, in bytes
	maxNameLength = 256
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver domain.IconResolver
	table    *usecase.GlyphTable
	meals    *usecase.MealIconService
	maxLimit int
}

// HandlerConfig wires the handler to its services. Nil services make the
// corresponding endpoints answer 501.
type HandlerConfig struct {
	Resolver domain.IconResolver
	Table    *usecase.GlyphTable
	Meals    *usecase.MealIconService
	MaxLimit int
}

// NewHandler creates a new HTTP handler
func NewHandler(config HandlerConfig) *Handler {
	maxLimit := config.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 10
	}
	return &Handler{
		resolver: config.Resolver,
		table:    config.Table,
		meals:    config.Meals,
		maxLimit: maxLimit,
	}
}

// ResolveBatchRequest is the body of POST /icons/resolve
type ResolveBatchRequest struct {
	Names []string `json:"names" binding:"required,min=1"`
}

// TableEntry is a single glyph table row as exposed over HTTP
type TableEntry struct {
	Keyword  string       `json:"keyword"`
	Icon     domain.Glyph `json:"icon"`
	Category string       `json:"category"`
}

// MealIconsResponse is the body returned by POST /meals/icons
type MealIconsResponse struct {
	Icons       []domain.Glyph `json:"icons"`
	DisplayIcon domain.Glyph   `json:"displayIcon"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "plateup-icons",
		"version": "1.0.0",
	})
}

// ResolveIcon resolves the "name" query parameter. A missing name resolves
// like an empty one, to the default glyph.
func (h *Handler) ResolveIcon(c *gin.Context) {
	if h.resolver == nil {
		notConfigured(c, "icon resolver")
		return
	}
	name := c.Query("name")
	if err := checkNameLength(name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.resolver.Explain(name))
}

func checkNameLength(name string) error {
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name longer than %d bytes", domain.ErrInvalidRequest, maxNameLength)
	}
	return nil
}

// ResolveIcons resolves a batch of names, preserving request order
func (h *Handler) ResolveIcons(c *gin.Context) {
	if h.resolver == nil {
		notConfigured(c, "icon resolver")
		return
	}

	var req ResolveBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}
	if len(req.Names) > maxBatchNames {
		respondError(c, fmt.Errorf("%w: at most %d names per request", domain.ErrInvalidRequest, maxBatchNames))
		return
	}

	for _, name := range req.Names {
		if err := checkNameLength(name); err != nil {
			respondError(c, err)
			return
		}
	}

	results := make([]domain.Resolution, len(req.Names))
	for i, name := range req.Names {
		results[i] = h.resolver.Explain(name)
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GlyphTable lists the table in declared order, or in substring priority
// order with ?order=priority.
func (h *Handler) GlyphTable(c *gin.Context) {
	if h.table == nil {
		notConfigured(c, "glyph table")
		return
	}

	var entries []domain.GlyphEntry
	switch order := c.DefaultQuery("order", "declared"); order {
	case "declared":
		entries = h.table.Entries()
	case "priority":
		entries = h.table.ByPriority()
	default:
		respondError(c, fmt.Errorf("%w: unknown order %q", domain.ErrInvalidRequest, order))
		return
	}

	out := make([]TableEntry, len(entries))
	for i, e := range entries {
		out[i] = TableEntry{Keyword: e.Keyword, Icon: e.Glyph, Category: e.Category.String()}
	}

	c.JSON(http.StatusOK, gin.H{
		"default": domain.DefaultGlyph,
		"entries": out,
	})
}

// MealIcons summarises a meal posted as JSON. ?limit= caps the icon count and
// is clamped to the configured maximum.
func (h *Handler) MealIcons(c *gin.Context) {
	if h.meals == nil {
		notConfigured(c, "meal icon service")
		return
	}

	limit, err := h.parseLimit(c.Query("limit"))
	if err != nil {
		respondError(c, err)
		return
	}

	var meal domain.Meal
	if err := c.ShouldBindJSON(&meal); err != nil {
		respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	c.JSON(http.StatusOK, MealIconsResponse{
		Icons:       h.meals.MealIcons(&meal, limit),
		DisplayIcon: h.meals.DisplayIcon(&meal),
	})
}

// parseLimit returns 0 (service default) for an empty value
func (h *Handler) parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidRequest)
	}
	return min(limit, h.maxLimit), nil
}

func notConfigured(c *gin.Context, what string) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": what + " not configured",
	})
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
