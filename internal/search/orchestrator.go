package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Wafik20/business-finder/internal/config"
	"github.com/Wafik20/business-finder/internal/geo"
	"github.com/Wafik20/business-finder/internal/logger"
	"github.com/Wafik20/business-finder/internal/telemetry"
	"github.com/Wafik20/business-finder/pkg/models"
)

// Resolver 위치 텍스트 → 좌표 변환 (GeoLocator)
type Resolver interface {
	Resolve(ctx context.Context, location, countryHint string) (models.Coordinates, error)
}

// TaskRunner 단일 검색 태스크 실행 (PlaceSearchClient)
type TaskRunner interface {
	Run(ctx context.Context, task models.SearchTask, center models.Coordinates, radiusMeters int, onPage func(page, count int)) []models.Place
}

// Request 검색 요청 파라미터
type Request struct {
	Location    string
	RadiusMiles float64
	Keyword     string
	MaxResults  int
	Country     string
}

// Orchestrator 검색 파이프라인 오케스트레이터
// geocode → 태스크 실행(배치 동시성) → 중복 제거 → 거리 필터 → 정렬 → 캡
type Orchestrator struct {
	cfg       *config.Config
	resolver  Resolver
	runner    TaskRunner
	telemetry *telemetry.Telemetry
}

// New 새로운 Orchestrator 생성
func New(cfg *config.Config, resolver Resolver, runner TaskRunner, tel *telemetry.Telemetry) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		resolver:  resolver,
		runner:    runner,
		telemetry: tel,
	}
}

// SearchBusinesses 자유 키워드 검색 (기본 진입점)
// 키워드 하나로 text search 태스크 1개를 실행
func (o *Orchestrator) SearchBusinesses(ctx context.Context, req Request, onProgress models.ProgressFunc) ([]models.Place, error) {
	tasks := []models.SearchTask{
		{Kind: models.TextSearch, Query: req.Keyword, Priority: 1},
	}
	return o.search(ctx, "keyword", req, tasks, onProgress)
}

// SearchByCategory 카테고리 기반 검색
// 설정된 place type별 nearby search + 키워드 동의어별 text search 합집합
func (o *Orchestrator) SearchByCategory(ctx context.Context, req Request, onProgress models.ProgressFunc) ([]models.Place, error) {
	var tasks []models.SearchTask
	for _, placeType := range o.cfg.Search.CategoryTypes {
		tasks = append(tasks, models.SearchTask{Kind: models.NearbySearch, Query: placeType, Priority: 1})
	}
	for _, keyword := range o.cfg.Search.CategoryKeywords {
		tasks = append(tasks, models.SearchTask{Kind: models.TextSearch, Query: keyword, Priority: 2})
	}
	return o.search(ctx, "category", req, tasks, onProgress)
}

// search 공통 파이프라인 실행
func (o *Orchestrator) search(ctx context.Context, entry string, req Request, tasks []models.SearchTask, onProgress models.ProgressFunc) ([]models.Place, error) {
	log := logger.GetLogger("search.orchestrator")
	runID := uuid.NewString()
	startTime := time.Now()

	log.Infof("===== 검색 시작 [%s]: location=%s radius=%.1fmi keyword=%s =====",
		runID[:8], req.Location, req.RadiusMiles, req.Keyword)

	if o.telemetry != nil {
		o.telemetry.IncrementSearchTotal(ctx, entry)
	}

	// 1. Geocode — 실패는 파이프라인 전체 중단
	report(onProgress, 5, "Getting coordinates for location...")

	center, err := o.resolver.Resolve(ctx, req.Location, req.Country)
	if err != nil {
		if o.telemetry != nil {
			o.telemetry.IncrementSearchErrors(ctx, entry)
		}
		return nil, fmt.Errorf("could not find coordinates for %q: %w", req.Location, err)
	}

	report(onProgress, 10, "Coordinates found, starting search...")

	// 2. 반경 변환 (설정된 최대 반경으로 클램프)
	radiusMiles := req.RadiusMiles
	if radiusMiles > o.cfg.Search.MaxRadiusMiles {
		log.Warnf("[%s] 요청 반경 %.1fmi가 최대치 %.1fmi 초과, 클램프",
			runID[:8], radiusMiles, o.cfg.Search.MaxRadiusMiles)
		radiusMiles = o.cfg.Search.MaxRadiusMiles
	}
	radiusMeters := geo.MilesToMeters(radiusMiles)

	// 3. 태스크 실행 (배치 동시성, 진행률 15→75)
	report(onProgress, 15, fmt.Sprintf("Starting %d searches...", len(tasks)))

	all := o.runTasks(ctx, tasks, center, radiusMeters, onProgress)

	report(onProgress, 85, "Processing results...")

	if len(all) == 0 {
		log.Infof("[%s] 검색 결과 없음", runID[:8])
		report(onProgress, 100, "No results found")
		return []models.Place{}, nil
	}

	// 4. 중복 제거 → 5. 거리 필터 → 6. 정렬
	unique := Deduplicate(all)
	filtered := FilterByRadius(unique, radiusMiles)

	report(onProgress, 90, fmt.Sprintf("Found %d unique results within %.1f miles", len(filtered), radiusMiles))

	SortByDistance(filtered)

	// 7. 결과 개수 캡 (요청값과 전역 상한 중 작은 쪽)
	max := req.MaxResults
	if max <= 0 || max > o.cfg.Search.MaxResults {
		max = o.cfg.Search.MaxResults
	}
	if len(filtered) > max {
		filtered = filtered[:max]
	}

	report(onProgress, 100, "Search completed!")

	if o.telemetry != nil {
		o.telemetry.AddPlacesFound(ctx, int64(len(filtered)))
		o.telemetry.RecordSearchDuration(ctx, time.Since(startTime), entry)
	}

	log.Infof("===== 검색 종료 [%s]: 수집 %d건 → 반환 %d건 (%.1fs) =====",
		runID[:8], len(all), len(filtered), time.Since(startTime).Seconds())

	return filtered, nil
}

// runTasks 태스크를 동시성 제한 배치로 실행
// 배치 내 태스크는 동시에 실행하고, 배치 전체를 기다린 뒤 다음 배치로 넘어간다
func (o *Orchestrator) runTasks(ctx context.Context, tasks []models.SearchTask, center models.Coordinates, radiusMeters int, onProgress models.ProgressFunc) []models.Place {
	log := logger.GetLogger("search.orchestrator")

	limit := o.cfg.Search.ConcurrentSearches
	if limit < 1 {
		limit = 1
	}

	var all []models.Place
	for i := 0; i < len(tasks); i += limit {
		end := i + limit
		if end > len(tasks) {
			end = len(tasks)
		}
		batch := tasks[i:end]

		progress := 15 + float64(i)/float64(len(tasks))*60
		report(onProgress, progress, fmt.Sprintf("Processing batch %d...", i/limit+1))

		// 배치 내 태스크 동시 실행, 인덱스 기반 수집으로 태스크 순서 유지
		results := make([][]models.Place, len(batch))
		var wg sync.WaitGroup
		for j := range batch {
			wg.Add(1)
			go func(j int, task models.SearchTask) {
				defer wg.Done()
				results[j] = o.runner.Run(ctx, task, center, radiusMeters, nil)
			}(j, batch[j])
		}
		wg.Wait()

		for _, r := range results {
			all = append(all, r...)
		}

		log.Infof("배치 %d 완료: 누적 %d건", i/limit+1, len(all))

		// Rate limiting: 배치 간 딜레이
		if end < len(tasks) {
			select {
			case <-ctx.Done():
				return all
			case <-time.After(o.cfg.Search.BatchDelay):
			}
		}
	}

	return all
}

// report nil-safe 진행률 보고
func report(onProgress models.ProgressFunc, percent float64, status string) {
	if onProgress != nil {
		onProgress(percent, status)
	}
}
