package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Wafik20/business-finder/internal/config"
	"github.com/Wafik20/business-finder/internal/geocoder"
	"github.com/Wafik20/business-finder/internal/search"
	"github.com/Wafik20/business-finder/pkg/models"
	"github.com/gofiber/fiber/v2"
)

type fakeResolver struct{}

func (f *fakeResolver) Resolve(_ context.Context, location, _ string) (models.Coordinates, error) {
	if location == "Nowhere" {
		return models.Coordinates{}, geocoder.ErrLocationNotFound
	}
	return models.Coordinates{Lat: 40.7357, Lng: -74.1724}, nil
}

type fakeRunner struct {
	places []models.Place
}

func (f *fakeRunner) Run(_ context.Context, _ models.SearchTask, _ models.Coordinates, _ int, _ func(int, int)) []models.Place {
	return f.places
}

func testApp(places []models.Place) *fiber.App {
	cfg := &config.Config{
		Search: config.SearchConfig{
			MaxResults:         100,
			MaxRadiusMiles:     31,
			ConcurrentSearches: 1,
			BatchDelay:         time.Millisecond,
		},
	}
	orchestrator := search.New(cfg, &fakeResolver{}, &fakeRunner{places: places}, nil)
	h := NewSearchHandler(cfg, orchestrator, nil)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, h)
	return app
}

func postSearch(t *testing.T, app *fiber.App, body SearchRequest) (int, []byte) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Could not marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/v1/search", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Could not read response body: %v", err)
	}
	return resp.StatusCode, data
}

func TestSearchEndpoint(t *testing.T) {
	app := testApp([]models.Place{
		{ID: "a", Name: "A Auto", DistanceMiles: 1.2},
		{ID: "b", Name: "B Auto", DistanceMiles: 3.4},
	})

	status, body := postSearch(t, app, SearchRequest{
		Location: "Newark, NJ", RadiusMiles: 10, Keyword: "auto repair",
	})
	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if resp.Count != 2 || len(resp.Places) != 2 {
		t.Errorf("Expected 2 places, got count=%d len=%d", resp.Count, len(resp.Places))
	}
}

func TestSearchEndpointLocationNotFound(t *testing.T) {
	app := testApp(nil)

	status, body := postSearch(t, app, SearchRequest{
		Location: "Nowhere", RadiusMiles: 10, Keyword: "auto repair",
	})
	if status != fiber.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", status, body)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Invalid error body: %v", err)
	}
	if resp.Error != "location not found" {
		t.Errorf("Unexpected error message: %q", resp.Error)
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	app := testApp(nil)

	cases := []struct {
		name string
		req  SearchRequest
	}{
		{"missing location", SearchRequest{RadiusMiles: 10, Keyword: "auto repair"}},
		{"missing keyword", SearchRequest{Location: "Newark, NJ", RadiusMiles: 10}},
		{"zero radius", SearchRequest{Location: "Newark, NJ", Keyword: "auto repair"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := postSearch(t, app, tc.req)
			if status != fiber.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", status, body)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	app := testApp(nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}
