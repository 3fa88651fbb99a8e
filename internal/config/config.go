package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// GoogleAPIConfig Google Maps / Places API 인증 설정
type GoogleAPIConfig struct {
	MapsAPIKey string
}

// SearchConfig 검색 파이프라인 관련 설정
type SearchConfig struct {
	MaxResults         int           // 최종 결과 상한 (전역 하드 캡)
	MaxDetailedResults int           // 상세 조회 대상 상한
	RequestDelay       time.Duration // 페이지 요청 간 딜레이
	BatchDelay         time.Duration // 검색 배치 간 딜레이
	DetailDelay        time.Duration // 상세 조회 배치 간 딜레이
	MaxRadiusMiles     float64       // 허용 최대 반경 (마일)
	MaxPagesPerSearch  int           // 태스크당 페이지 상한 (안전장치)
	ConcurrentSearches int           // 동시 실행 검색 태스크 수
	DetailBatchSize    int           // 상세 조회 배치 크기
	CategoryTypes      []string      // 카테고리 검색용 place type 목록
	CategoryKeywords   []string      // 카테고리 검색용 키워드 목록
}

// ServerConfig HTTP API 서버 설정
type ServerConfig struct {
	Port string
}

// Config 애플리케이션의 모든 설정을 통합 관리하는 메인 구조체
type Config struct {
	GoogleAPI GoogleAPIConfig
	Search    SearchConfig
	Server    ServerConfig
}

// Load 환경변수에서 설정을 로드
func Load() (*Config, error) {
	// .env 파일 로드 (없어도 에러 무시)
	_ = godotenv.Load()

	cfg := &Config{
		GoogleAPI: GoogleAPIConfig{
			MapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		},
		Search: SearchConfig{
			MaxResults:         getEnvInt("MAX_RESULTS", 10000),
			MaxDetailedResults: getEnvInt("MAX_DETAILED_RESULTS", 1000),
			RequestDelay:       time.Duration(getEnvInt("REQUEST_DELAY", 100)) * time.Millisecond,
			BatchDelay:         time.Duration(getEnvInt("BATCH_DELAY", 200)) * time.Millisecond,
			DetailDelay:        time.Duration(getEnvInt("DETAIL_DELAY", 100)) * time.Millisecond,
			MaxRadiusMiles:     getEnvFloat("MAX_RADIUS", 31),
			MaxPagesPerSearch:  getEnvInt("MAX_PAGES_PER_SEARCH", 500),
			ConcurrentSearches: getEnvInt("CONCURRENT_SEARCHES", 4),
			DetailBatchSize:    getEnvInt("DETAIL_BATCH_SIZE", 5),
			CategoryTypes:      getEnvList("CATEGORY_TYPES", "car_repair,car_dealer"),
			CategoryKeywords:   getEnvList("CATEGORY_KEYWORDS", "auto repair,collision repair,mechanic,auto body"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "3000"),
		},
	}

	return cfg, nil
}

// getEnv 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt 환경변수를 int로 가져오기
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// getEnvFloat 환경변수를 float64로 가져오기
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatVal
}

// getEnvList 쉼표로 구분된 환경변수를 slice로 가져오기
func getEnvList(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
