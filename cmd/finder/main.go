package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wafik20/business-finder/internal/config"
	"github.com/Wafik20/business-finder/internal/enrich"
	"github.com/Wafik20/business-finder/internal/export"
	"github.com/Wafik20/business-finder/internal/geocoder"
	"github.com/Wafik20/business-finder/internal/logger"
	"github.com/Wafik20/business-finder/internal/places"
	"github.com/Wafik20/business-finder/internal/search"
	"github.com/Wafik20/business-finder/internal/telemetry"
	"github.com/Wafik20/business-finder/pkg/models"
)

func main() {
	// 로거 초기화
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.GetLogger("main")

	// 컨텍스트 설정 (시그널 핸들링)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry 초기화
	tel, err := telemetry.New(ctx)
	if err != nil {
		log.Warnf("Telemetry 초기화 실패 (계속 실행): %v", err)
	} else {
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				log.Warnf("Telemetry shutdown 실패: %v", err)
			}
		}()
		log.Info("Telemetry 초기화 완료")
	}

	// CLI 인자 파싱
	location := flag.String("location", "", "검색 중심 위치 (주소, 도시, 우편번호)")
	radius := flag.Float64("radius", 10, "검색 반경 (마일)")
	keyword := flag.String("keyword", "", "검색 키워드")
	maxResults := flag.Int("max", 0, "최대 결과 수 (0이면 기본 상한)")
	country := flag.String("country", "", "국가 코드 힌트 (예: us)")
	category := flag.Bool("category", false, "설정된 업종 카테고리로 검색")
	details := flag.Bool("details", false, "상위 결과 상세 정보 보강")
	outPath := flag.String("out", "", "CSV 출력 파일 경로 (선택)")
	flag.Parse()

	if *location == "" {
		log.Error("검색 위치를 지정해주세요. 예: -location \"Newark, NJ\"")
		os.Exit(1)
	}
	if !*category && *keyword == "" {
		log.Error("키워드를 지정하거나 -category를 사용해주세요.")
		os.Exit(1)
	}

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Errorf("설정 로드 실패: %v", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("종료 시그널 수신, 정리 중...")
		cancel()
	}()

	// 컴포넌트 조립
	resolver, err := geocoder.New(cfg, tel)
	if err != nil {
		log.Errorf("Geocoder 초기화 실패: %v", err)
		os.Exit(1)
	}
	client := places.New(cfg, tel)
	orchestrator := search.New(cfg, resolver, client, tel)
	enricher := enrich.New(cfg, client, tel)

	req := search.Request{
		Location:    *location,
		RadiusMiles: *radius,
		Keyword:     *keyword,
		MaxResults:  *maxResults,
		Country:     *country,
	}

	onProgress := func(percent float64, status string) {
		log.Infof("[%3.0f%%] %s", percent, status)
	}

	log.Infof("========== 검색 시작: %q (반경 %.1fmi) ==========", *location, *radius)
	startTime := time.Now()

	var results []models.Place
	if *category {
		results, err = orchestrator.SearchByCategory(ctx, req, onProgress)
	} else {
		results, err = orchestrator.SearchBusinesses(ctx, req, onProgress)
	}
	if err != nil {
		log.Errorf("검색 실패: %v", err)
		os.Exit(1)
	}

	if *details && len(results) > 0 {
		var stats enrich.Stats
		results, stats = enricher.Enrich(ctx, results, onProgress)
		log.Infof("상세 보강 결과: 성공 %d / 실패 %d", stats.Enriched, stats.Failed)
	}

	log.Infof("총 %d건 검색 완료 (소요 %.1fs)", len(results), time.Since(startTime).Seconds())

	if *outPath != "" {
		if err := export.WriteCSV(*outPath, results); err != nil {
			log.Errorf("CSV 저장 실패: %v", err)
			os.Exit(1)
		}
	} else {
		for i, place := range results {
			log.Infof("%3d. %s (%.1fmi) - %s", i+1, place.Name, place.DistanceMiles, place.Address)
		}
	}

	log.Infof("========== 검색 종료: %q ==========", *location)
}
