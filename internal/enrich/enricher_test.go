package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Wafik20/business-finder/internal/config"
	"github.com/Wafik20/business-finder/pkg/models"
)

// fakeFetcher 테스트용 DetailFetcher
type fakeFetcher struct {
	mu      sync.Mutex
	calls   int
	details map[string]*models.PlaceDetails
	errs    map[string]error
}

func (f *fakeFetcher) GetDetails(_ context.Context, placeID string) (*models.PlaceDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.errs[placeID]; ok {
		return nil, err
	}
	return f.details[placeID], nil
}

func testConfig() *config.Config {
	return &config.Config{
		Search: config.SearchConfig{
			MaxDetailedResults: 1000,
			DetailBatchSize:    5,
		},
	}
}

func strPtr(s string) *string { return &s }

// TestEnrichFillIfBetter 상세 값이 있을 때만 덮어쓰는 병합 규칙 확인
func TestEnrichFillIfBetter(t *testing.T) {
	existing := "https://original.example.com"
	places := []models.Place{
		{ID: "keep", Name: "Keep Site", Website: &existing},
		{ID: "fill", Name: "Fill Site"},
	}

	fetcher := &fakeFetcher{details: map[string]*models.PlaceDetails{
		"keep": {Phone: strPtr("555-0100")}, // Website 없음: 기존 값 유지
		"fill": {Website: strPtr("https://detail.example.com")},
	}}

	enricher := New(testConfig(), fetcher, nil)
	enriched, stats := enricher.Enrich(context.Background(), places, nil)

	if stats.Enriched != 2 || stats.Failed != 0 {
		t.Fatalf("Expected 2 enriched / 0 failed, got %+v", stats)
	}

	if enriched[0].Website == nil || *enriched[0].Website != existing {
		t.Errorf("Existing website should survive nil detail, got %v", enriched[0].Website)
	}
	if enriched[0].Phone == nil || *enriched[0].Phone != "555-0100" {
		t.Errorf("Phone should be filled from detail, got %v", enriched[0].Phone)
	}
	if enriched[1].Website == nil || *enriched[1].Website != "https://detail.example.com" {
		t.Errorf("Empty website should be filled from detail, got %v", enriched[1].Website)
	}
}

// TestEnrichCap 상세 보강 상한을 넘는 레코드는 원본 그대로 통과
func TestEnrichCap(t *testing.T) {
	cfg := testConfig()
	cfg.Search.MaxDetailedResults = 10
	cfg.Search.DetailBatchSize = 4

	places := make([]models.Place, 15)
	details := map[string]*models.PlaceDetails{}
	for i := range places {
		id := fmt.Sprintf("p%02d", i)
		places[i] = models.Place{ID: id, Name: "Place " + id}
		details[id] = &models.PlaceDetails{Phone: strPtr("555-" + id)}
	}

	fetcher := &fakeFetcher{details: details}
	enricher := New(cfg, fetcher, nil)
	enriched, stats := enricher.Enrich(context.Background(), places, nil)

	if fetcher.calls != 10 {
		t.Errorf("Expected exactly 10 detail calls, got %d", fetcher.calls)
	}
	if stats.Total != 10 || stats.Enriched != 10 {
		t.Errorf("Expected stats 10/10, got %+v", stats)
	}
	if len(enriched) != 15 {
		t.Fatalf("Result length must match input, got %d", len(enriched))
	}
	for i := 10; i < 15; i++ {
		if enriched[i].Phone != nil {
			t.Errorf("Record %d beyond cap should be unmodified", i)
		}
	}
}

// TestEnrichFailureKeepsRecord 개별 조회 실패는 해당 레코드만 원본 유지
func TestEnrichFailureKeepsRecord(t *testing.T) {
	places := []models.Place{
		{ID: "ok", Name: "Ok Place"},
		{ID: "bad", Name: "Bad Place"},
	}
	fetcher := &fakeFetcher{
		details: map[string]*models.PlaceDetails{"ok": {Phone: strPtr("555-0199")}},
		errs:    map[string]error{"bad": errors.New("details unavailable")},
	}

	enricher := New(testConfig(), fetcher, nil)
	enriched, stats := enricher.Enrich(context.Background(), places, nil)

	if stats.Enriched != 1 || stats.Failed != 1 {
		t.Fatalf("Expected 1 enriched / 1 failed, got %+v", stats)
	}
	if enriched[0].Phone == nil {
		t.Error("Successful record should be enriched")
	}
	if enriched[1].Phone != nil || enriched[1].Name != "Bad Place" {
		t.Error("Failed record should be returned unmodified")
	}
}

// TestEnrichProgressRange 진행률 콜백은 95~100 구간에서만 호출
func TestEnrichProgressRange(t *testing.T) {
	places := []models.Place{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}
	fetcher := &fakeFetcher{details: map[string]*models.PlaceDetails{}}

	var mu sync.Mutex
	var percents []float64
	onProgress := func(p float64, _ string) {
		mu.Lock()
		percents = append(percents, p)
		mu.Unlock()
	}

	enricher := New(testConfig(), fetcher, nil)
	enricher.Enrich(context.Background(), places, onProgress)

	if len(percents) == 0 {
		t.Fatal("Expected progress callbacks")
	}
	for _, p := range percents {
		if p < 95 || p > 100 {
			t.Errorf("Progress %.2f outside detail phase range [95, 100]", p)
		}
	}
	if percents[len(percents)-1] != 100 {
		t.Errorf("Final progress should be 100, got %.2f", percents[len(percents)-1])
	}
}

// TestEnrichEmptyInput 입력이 없으면 조회 없이 즉시 반환
func TestEnrichEmptyInput(t *testing.T) {
	fetcher := &fakeFetcher{}
	enricher := New(testConfig(), fetcher, nil)

	enriched, stats := enricher.Enrich(context.Background(), nil, nil)
	if len(enriched) != 0 || fetcher.calls != 0 || stats.Total != 0 {
		t.Errorf("Empty input should short-circuit, got %d calls", fetcher.calls)
	}
}

// TestEnrichDefaultBatchSize 배치 크기 미설정 시 기본값으로 동작
func TestEnrichDefaultBatchSize(t *testing.T) {
	cfg := testConfig()
	cfg.Search.DetailBatchSize = 0

	places := make([]models.Place, 7)
	for i := range places {
		places[i] = models.Place{ID: fmt.Sprintf("p%d", i)}
	}
	fetcher := &fakeFetcher{details: map[string]*models.PlaceDetails{}}

	enricher := New(cfg, fetcher, nil)
	_, stats := enricher.Enrich(context.Background(), places, nil)

	if fetcher.calls != 7 || stats.Total != 7 {
		t.Errorf("Expected all 7 records processed with default batch size, got %d", fetcher.calls)
	}
}
