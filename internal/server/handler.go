package server

import (
	"errors"

	"github.com/Wafik20/business-finder/internal/config"
	"github.com/Wafik20/business-finder/internal/enrich"
	"github.com/Wafik20/business-finder/internal/geocoder"
	"github.com/Wafik20/business-finder/internal/logger"
	"github.com/Wafik20/business-finder/internal/search"
	"github.com/Wafik20/business-finder/pkg/models"
	"github.com/gofiber/fiber/v2"
)

// SearchRequest is the JSON body for POST /v1/search
type SearchRequest struct {
	Location       string  `json:"location"`
	RadiusMiles    float64 `json:"radius_miles"`
	Keyword        string  `json:"keyword"`
	MaxResults     int     `json:"max_results"`
	Country        string  `json:"country"`
	Category       bool    `json:"category"`
	IncludeDetails bool    `json:"include_details"`
}

// SearchResponse is the JSON payload returned for a completed search
type SearchResponse struct {
	Count  int            `json:"count"`
	Places []models.Place `json:"places"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type SearchHandler struct {
	cfg          *config.Config
	orchestrator *search.Orchestrator
	enricher     *enrich.Enricher
}

func NewSearchHandler(cfg *config.Config, orchestrator *search.Orchestrator, enricher *enrich.Enricher) *SearchHandler {
	return &SearchHandler{
		cfg:          cfg,
		orchestrator: orchestrator,
		enricher:     enricher,
	}
}

// Search runs the full search pipeline for a single request
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	log := logger.GetLogger("server.search")

	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if req.Location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "location is required"})
	}
	if !req.Category && req.Keyword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "keyword is required unless category search is enabled"})
	}
	if req.RadiusMiles <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "radius_miles must be positive"})
	}

	ctx := c.UserContext()
	searchReq := search.Request{
		Location:    req.Location,
		RadiusMiles: req.RadiusMiles,
		Keyword:     req.Keyword,
		MaxResults:  req.MaxResults,
		Country:     req.Country,
	}

	var (
		places []models.Place
		err    error
	)
	if req.Category {
		places, err = h.orchestrator.SearchByCategory(ctx, searchReq, nil)
	} else {
		places, err = h.orchestrator.SearchBusinesses(ctx, searchReq, nil)
	}
	if err != nil {
		if errors.Is(err, geocoder.ErrLocationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "location not found",
				Details: err.Error(),
			})
		}
		log.Errorf("search failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "search failed"})
	}

	if req.IncludeDetails && h.enricher != nil {
		places, _ = h.enricher.Enrich(ctx, places, nil)
	}

	return c.JSON(SearchResponse{
		Count:  len(places),
		Places: places,
	})
}

// HealthCheck returns the health status of the API
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}

// ErrorHandler is the custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: message,
	})
}

// SetupRoutes wires the HTTP surface onto the Fiber app
func SetupRoutes(app *fiber.App, h *SearchHandler) {
	app.Get("/healthz", HealthCheck)
	app.Get("/v1/healthz", HealthCheck)

	app.Get("/metrics", PrometheusHandler())

	v1 := app.Group("/v1")
	v1.Post("/search", h.Search)
}
