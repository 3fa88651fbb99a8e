package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Wafik20/business-finder/internal/config"
	"github.com/Wafik20/business-finder/internal/geo"
	"github.com/Wafik20/business-finder/internal/logger"
	"github.com/Wafik20/business-finder/internal/telemetry"
	"github.com/Wafik20/business-finder/pkg/models"
)

const (
	defaultNearbyURL = "https://places.googleapis.com/v1/places:searchNearby"
	defaultTextURL   = "https://places.googleapis.com/v1/places:searchText"
	defaultDetailURL = "https://places.googleapis.com/v1/places"

	// maxResultCount 페이지당 최대 결과 수 (API 상한)
	maxResultCount = 20

	searchFieldMask = "places.id,places.displayName,places.formattedAddress,places.location," +
		"places.rating,places.userRatingCount,places.types,places.nationalPhoneNumber," +
		"places.websiteUri,places.regularOpeningHours,places.priceLevel,places.businessStatus," +
		"places.primaryType,places.primaryTypeDisplayName"

	detailFieldMask = "displayName,formattedAddress,nationalPhoneNumber,websiteUri," +
		"regularOpeningHours,rating,userRatingCount,types,priceLevel,businessStatus," +
		"primaryType,primaryTypeDisplayName"
)

// priceLevels Places API price level enum → 숫자 단계
var priceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

// Client Places API v1 클라이언트
type Client struct {
	cfg        *config.Config
	apiKey     string
	httpClient *http.Client
	telemetry  *telemetry.Telemetry

	nearbyURL string
	textURL   string
	detailURL string
}

// New 새로운 Client 생성
func New(cfg *config.Config, tel *telemetry.Telemetry) *Client {
	return &Client{
		cfg:    cfg,
		apiKey: cfg.GoogleAPI.MapsAPIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		telemetry: tel,
		nearbyURL: defaultNearbyURL,
		textURL:   defaultTextURL,
		detailURL: defaultDetailURL,
	}
}

// Run 단일 검색 태스크를 페이지네이션하며 실행
// 페이지 실패는 해당 태스크의 수집 중단 신호일 뿐이며, 그때까지 모은
// 부분 결과를 그대로 반환한다. 재시도는 하지 않는다.
func (c *Client) Run(ctx context.Context, task models.SearchTask, center models.Coordinates, radiusMeters int, onPage func(page, count int)) []models.Place {
	log := logger.GetLogger("places.client")

	var all []models.Place
	pageToken := ""
	maxPages := c.cfg.Search.MaxPagesPerSearch

	for page := 0; page < maxPages; page++ {
		select {
		case <-ctx.Done():
			log.Warnf("컨텍스트 취소, '%s' 태스크 중단 (수집: %d건)", task.Query, len(all))
			return all
		default:
		}

		resp, err := c.fetchPage(ctx, task, center, radiusMeters, pageToken)
		if err != nil {
			log.Warnf("'%s' 페이지 %d 요청 실패, 태스크 중단: %v", task.Query, page+1, err)
			break
		}

		for _, place := range resp.Places {
			all = append(all, normalizePlace(place, center))
		}

		if c.telemetry != nil {
			c.telemetry.AddPagesFetched(ctx, 1, string(task.Kind))
		}
		if onPage != nil {
			onPage(page+1, len(resp.Places))
		}

		// 다음 페이지 토큰이 없으면 종료
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken

		// Rate limiting: 페이지 간 딜레이
		select {
		case <-ctx.Done():
			return all
		case <-time.After(c.cfg.Search.RequestDelay):
		}
	}

	log.Infof("'%s' (%s) 태스크 완료: %d건 수집", task.Query, task.Kind, len(all))
	return all
}

// fetchPage 검색 페이지 1회 요청
func (c *Client) fetchPage(ctx context.Context, task models.SearchTask, center models.Coordinates, radiusMeters int, pageToken string) (*models.PlacesSearchResponse, error) {
	area := models.GoogleLocationArea{
		Circle: models.GoogleCircle{
			Center: models.GoogleLatLng{Latitude: center.Lat, Longitude: center.Lng},
			Radius: float64(radiusMeters),
		},
	}

	var url string
	var body interface{}

	switch task.Kind {
	case models.NearbySearch:
		url = c.nearbyURL
		body = models.NearbySearchRequest{
			LocationRestriction: area,
			IncludedTypes:       []string{task.Query},
			MaxResultCount:      maxResultCount,
			PageToken:           pageToken,
		}
	case models.TextSearch:
		url = c.textURL
		body = models.TextSearchRequest{
			TextQuery:      task.Query,
			MaxResultCount: maxResultCount,
			LocationBias:   area,
			PageToken:      pageToken,
		}
	default:
		return nil, fmt.Errorf("알 수 없는 태스크 종류: %s", task.Kind)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("요청 JSON 생성 실패: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 생성 실패: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("응답 status=%d", resp.StatusCode)
	}

	var result models.PlacesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("응답 JSON 파싱 실패: %w", err)
	}

	return &result, nil
}

// normalizePlace API 응답 엔트리를 내부 Place 레코드로 정규화
// 거리는 검색 중심점 기준으로 즉시 계산
func normalizePlace(p models.GooglePlace, center models.Coordinates) models.Place {
	place := models.Place{
		ID:          p.ID,
		Name:        "Unknown",
		Address:     p.FormattedAddress,
		RatingCount: p.UserRatingCount,
		Categories:  p.Types,
		Rating:      p.Rating,
		Hours:       parseWeekdayHours(p.RegularOpeningHours),
		FetchedAt:   time.Now(),
	}

	if p.DisplayName != nil && p.DisplayName.Text != "" {
		place.Name = p.DisplayName.Text
	}
	if p.Location != nil {
		place.Location = models.Coordinates{Lat: p.Location.Latitude, Lng: p.Location.Longitude}
		place.DistanceMiles = geo.DistanceMiles(center, place.Location)
	}
	if p.PrimaryType != "" {
		primary := p.PrimaryType
		place.PrimaryCategory = &primary
	}
	if level, ok := priceLevels[p.PriceLevel]; ok {
		place.PriceLevel = &level
	}
	if p.BusinessStatus != "" {
		status := p.BusinessStatus
		place.BusinessStatus = &status
	}
	if p.NationalPhoneNumber != "" {
		phone := p.NationalPhoneNumber
		place.Phone = &phone
	}
	if p.WebsiteURI != "" {
		website := p.WebsiteURI
		place.Website = &website
	}

	return place
}

// parseWeekdayHours weekdayDescriptions("Monday: 9 AM–5 PM")를 요일/시간 쌍으로 분리
func parseWeekdayHours(hours *models.GoogleOpeningHours) []models.DayHours {
	if hours == nil || len(hours.WeekdayDescriptions) == 0 {
		return nil
	}

	parsed := make([]models.DayHours, 0, len(hours.WeekdayDescriptions))
	for _, desc := range hours.WeekdayDescriptions {
		day, text, found := strings.Cut(desc, ": ")
		if !found {
			day, text = desc, ""
		}
		parsed = append(parsed, models.DayHours{Day: day, Hours: text})
	}
	return parsed
}
