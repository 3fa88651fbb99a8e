package search

import (
	"testing"

	"github.com/Wafik20/business-finder/pkg/models"
)

func TestDeduplicateFirstSeenWins(t *testing.T) {
	places := []models.Place{
		{ID: "a", Name: "First A"},
		{ID: "b", Name: "Only B"},
		{ID: "a", Name: "Second A"},
		{ID: "c", Name: "Only C"},
		{ID: "b", Name: "Second B"},
	}

	unique := Deduplicate(places)
	if len(unique) != 3 {
		t.Fatalf("Expected 3 unique places, got %d", len(unique))
	}
	if unique[0].Name != "First A" || unique[1].Name != "Only B" || unique[2].Name != "Only C" {
		t.Errorf("First occurrence should win and order be preserved, got %v", unique)
	}
}

func TestFilterByRadiusBoundary(t *testing.T) {
	places := []models.Place{
		{ID: "inside", DistanceMiles: 9.9},
		{ID: "exact", DistanceMiles: 10.0},
		{ID: "outside", DistanceMiles: 10.1},
	}

	filtered := FilterByRadius(places, 10)
	if len(filtered) != 2 {
		t.Fatalf("Expected 2 places within radius, got %d", len(filtered))
	}
	// 경계값은 포함
	if filtered[1].ID != "exact" {
		t.Errorf("Boundary distance should be included, got %v", filtered)
	}
}

func TestSortByDistanceStable(t *testing.T) {
	places := []models.Place{
		{ID: "far", DistanceMiles: 8.0},
		{ID: "tie-1", DistanceMiles: 3.0},
		{ID: "near", DistanceMiles: 1.0},
		{ID: "tie-2", DistanceMiles: 3.0},
	}

	SortByDistance(places)

	order := []string{"near", "tie-1", "tie-2", "far"}
	for i, id := range order {
		if places[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, places[i].ID)
		}
	}
}
