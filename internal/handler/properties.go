package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/service"
)

// PropertyHandler handles catalog HTTP requests
type PropertyHandler struct {
	catalog      *service.Catalog
	defaultLimit int
	maxLimit     int
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(catalog *service.Catalog, defaultLimit, maxLimit int) *PropertyHandler {
	return &PropertyHandler{
		catalog:      catalog,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// List handles GET /api/v1/properties. Filter criteria are hydrated from
// the navigation query string; a content store outage degrades to an
// empty result set with the degraded flag raised, so clients render their
// empty state instead of an error page.
func (h *PropertyHandler) List(c *gin.Context) {
	start := time.Now()
	criteria := service.ParseCriteria(c.Request.URL.Query())

	results, err := h.catalog.Search(c.Request.Context(), criteria)
	if err != nil {
		log.Printf("Warning: property fetch failed: %v", err)
		c.JSON(http.StatusOK, model.PropertyListResponse{
			Results:  []model.Property{},
			Total:    0,
			Criteria: criteria,
			Degraded: true,
			Took:     time.Since(start).Milliseconds(),
		})
		return
	}

	total := len(results)
	limit, offset := h.pageBounds(c)
	if offset > len(results) {
		offset = len(results)
	}
	page := results[offset:]
	if len(page) > limit {
		page = page[:limit]
	}

	c.JSON(http.StatusOK, model.PropertyListResponse{
		Results:  page,
		Total:    total,
		Criteria: criteria,
		Took:     time.Since(start).Milliseconds(),
	})
}

// Featured handles GET /api/v1/properties/featured
func (h *PropertyHandler) Featured(c *gin.Context) {
	start := time.Now()

	results, err := h.catalog.Featured(c.Request.Context())
	if err != nil {
		log.Printf("Warning: featured fetch failed: %v", err)
		c.JSON(http.StatusOK, model.PropertyListResponse{
			Results:  []model.Property{},
			Total:    0,
			Criteria: model.DefaultCriteria(),
			Degraded: true,
			Took:     time.Since(start).Milliseconds(),
		})
		return
	}

	c.JSON(http.StatusOK, model.PropertyListResponse{
		Results:  results,
		Total:    len(results),
		Criteria: model.DefaultCriteria(),
		Took:     time.Since(start).Milliseconds(),
	})
}

// GetBySlug handles GET /api/v1/properties/:slug
func (h *PropertyHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing property slug"})
		return
	}

	property, err := h.catalog.BySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch property: " + err.Error()})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// Options handles GET /api/v1/filters/options. Always 200: each option
// source degrades independently.
func (h *PropertyHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.FilterOptions(c.Request.Context()))
}

func (h *PropertyHandler) pageBounds(c *gin.Context) (limit, offset int) {
	limit = queryInt(c, "limit", h.defaultLimit)
	if limit <= 0 {
		limit = h.defaultLimit
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	offset = queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
