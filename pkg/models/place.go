package models

import "time"

// TaskKind 검색 태스크 종류
type TaskKind string

const (
	// NearbySearch 업종(type) 기반 주변 검색
	NearbySearch TaskKind = "nearby"
	// TextSearch 자유 키워드 텍스트 검색
	TextSearch TaskKind = "text"
)

// Coordinates 위경도 좌표 (geocode 결과, 생성 후 불변)
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchTask 단일 검색 태스크 (요청 1회당 생성, 실행 후 폐기)
type SearchTask struct {
	Kind     TaskKind
	Query    string
	Priority int
}

// DayHours 요일별 영업시간
type DayHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// Place 정규화된 업체 레코드
// ID(Google place ID)가 자연 키이며 중복 제거 기준
type Place struct {
	ID              string      `json:"place_id"`
	Name            string      `json:"name"`
	Address         string      `json:"address"`
	Location        Coordinates `json:"location"`
	Rating          *float64    `json:"rating"`
	RatingCount     int         `json:"rating_count"`
	Categories      []string    `json:"categories"`
	PrimaryCategory *string     `json:"primary_category"`
	PriceLevel      *int        `json:"price_level"`
	BusinessStatus  *string     `json:"business_status"`
	DistanceMiles   float64     `json:"distance_miles"`
	Phone           *string     `json:"phone"`
	Website         *string     `json:"website"`
	Hours           []DayHours  `json:"hours"`
	FetchedAt       time.Time   `json:"fetched_at"`
}

// PlaceDetails 상세 조회 API 응답 (모든 필드 nullable)
type PlaceDetails struct {
	Address         *string
	Phone           *string
	Website         *string
	Hours           []DayHours
	Rating          *float64
	RatingCount     int
	Categories      []string
	PrimaryCategory *string
	PriceLevel      *int
	BusinessStatus  *string
}

// ProgressFunc 파이프라인 진행률 콜백 (percent: 0~100)
type ProgressFunc func(percent float64, status string)
