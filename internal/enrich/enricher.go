package enrich

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Wafik20/business-finder/internal/config"
	"github.com/Wafik20/business-finder/internal/logger"
	"github.com/Wafik20/business-finder/internal/telemetry"
	"github.com/Wafik20/business-finder/pkg/models"
)

// DetailFetcher 장소 상세 정보 조회 인터페이스
type DetailFetcher interface {
	GetDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error)
}

// Stats 상세 보강 실행 통계
type Stats struct {
	Total    int
	Enriched int
	Failed   int
}

// Enricher 검색 결과 상위 N건에 상세 정보를 채워 넣는 컴포넌트
type Enricher struct {
	cfg       *config.Config
	fetcher   DetailFetcher
	telemetry *telemetry.Telemetry
}

func New(cfg *config.Config, fetcher DetailFetcher, tel *telemetry.Telemetry) *Enricher {
	return &Enricher{
		cfg:       cfg,
		fetcher:   fetcher,
		telemetry: tel,
	}
}

// Enrich 거리순 정렬된 결과를 받아 상위 구간만 배치 단위로 보강
// 개별 조회 실패는 원본 레코드를 그대로 유지하고 전체 흐름은 계속한다.
func (e *Enricher) Enrich(ctx context.Context, places []models.Place, onProgress models.ProgressFunc) ([]models.Place, Stats) {
	log := logger.GetLogger("enrich.enricher")

	total := len(places)
	if total == 0 {
		return places, Stats{}
	}

	limit := total
	if e.cfg.Search.MaxDetailedResults > 0 && limit > e.cfg.Search.MaxDetailedResults {
		limit = e.cfg.Search.MaxDetailedResults
	}

	batchSize := e.cfg.Search.DetailBatchSize
	if batchSize <= 0 {
		batchSize = 5
	}

	log.Infof("===== 상세 보강 시작: 대상 %d건 / 전체 %d건 =====", limit, total)

	enriched := make([]models.Place, total)
	copy(enriched, places)

	var done, succeeded, failed int32

	for start := 0; start < limit; start += batchSize {
		end := start + batchSize
		if end > limit {
			end = limit
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				details, err := e.fetcher.GetDetails(ctx, enriched[idx].ID)
				if err != nil {
					atomic.AddInt32(&failed, 1)
					log.Warnf("상세 조회 실패 (id=%s): %v", enriched[idx].ID, err)
				} else {
					mergeDetails(&enriched[idx], details)
					atomic.AddInt32(&succeeded, 1)
				}

				completed := atomic.AddInt32(&done, 1)
				if onProgress != nil {
					percent := 95 + float64(completed)/float64(limit)*5
					onProgress(percent, "Fetching business details...")
				}
			}(i)
		}
		wg.Wait()

		if end < limit && e.cfg.Search.DetailDelay > 0 {
			select {
			case <-ctx.Done():
				log.Warnf("컨텍스트 취소로 상세 보강 중단: %d/%d건 완료", done, limit)
				stats := Stats{Total: int(done), Enriched: int(succeeded), Failed: int(failed)}
				e.recordStats(ctx, stats)
				return enriched, stats
			case <-time.After(e.cfg.Search.DetailDelay):
			}
		}
	}

	if onProgress != nil {
		onProgress(100, "Search completed!")
	}

	stats := Stats{Total: limit, Enriched: int(succeeded), Failed: int(failed)}
	e.recordStats(ctx, stats)
	log.Infof("===== 상세 보강 종료: 성공 %d / 실패 %d =====", stats.Enriched, stats.Failed)
	return enriched, stats
}

func (e *Enricher) recordStats(ctx context.Context, stats Stats) {
	if e.telemetry != nil {
		e.telemetry.RecordDetailStats(ctx, int64(stats.Total), int64(stats.Failed))
	}
}

// mergeDetails 상세 응답의 값이 유효할 때만 기존 필드를 덮어쓴다
func mergeDetails(place *models.Place, details *models.PlaceDetails) {
	if details == nil {
		return
	}
	if details.Address != nil && *details.Address != "" {
		place.Address = *details.Address
	}
	if details.Phone != nil && *details.Phone != "" {
		place.Phone = details.Phone
	}
	if details.Website != nil && *details.Website != "" {
		place.Website = details.Website
	}
	if details.Rating != nil {
		place.Rating = details.Rating
	}
	if details.RatingCount > 0 {
		place.RatingCount = details.RatingCount
	}
	if len(details.Categories) > 0 {
		place.Categories = details.Categories
	}
	if details.PrimaryCategory != nil && *details.PrimaryCategory != "" {
		place.PrimaryCategory = details.PrimaryCategory
	}
	if details.PriceLevel != nil {
		place.PriceLevel = details.PriceLevel
	}
	if details.BusinessStatus != nil && *details.BusinessStatus != "" {
		place.BusinessStatus = details.BusinessStatus
	}
	if len(details.Hours) > 0 {
		place.Hours = details.Hours
	}
}
