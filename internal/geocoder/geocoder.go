package geocoder

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/Wafik20/business-finder/internal/config"
	"github.com/Wafik20/business-finder/internal/logger"
	"github.com/Wafik20/business-finder/internal/telemetry"
	"github.com/Wafik20/business-finder/pkg/models"
)

// ErrLocationNotFound geocoding 결과가 없을 때 반환
// 파이프라인 전체를 중단시키는 fatal 에러
var ErrLocationNotFound = errors.New("location not found")

// Geocoder 자유 텍스트 위치를 좌표로 변환
type Geocoder struct {
	client    *maps.Client
	telemetry *telemetry.Telemetry
}

// New 새로운 Geocoder 생성
func New(cfg *config.Config, tel *telemetry.Telemetry) (*Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(cfg.GoogleAPI.MapsAPIKey))
	if err != nil {
		return nil, fmt.Errorf("maps 클라이언트 생성 실패: %w", err)
	}

	return &Geocoder{
		client:    client,
		telemetry: tel,
	}, nil
}

// Resolve 위치 텍스트(도시, 주소, 우편번호)를 좌표로 변환
// countryHint가 있으면 해당 국가로 결과 제한, 재시도 없음
func (g *Geocoder) Resolve(ctx context.Context, location, countryHint string) (models.Coordinates, error) {
	log := logger.GetLogger("geocoder")

	req := &maps.GeocodingRequest{
		Address: location,
	}
	if countryHint != "" {
		req.Components = map[maps.Component]string{
			maps.ComponentCountry: countryHint,
		}
	}

	if g.telemetry != nil {
		g.telemetry.IncrementGeocodeCalls(ctx)
	}

	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocode 요청 실패 (%s): %w", location, err)
	}

	if len(results) == 0 {
		log.Warnf("Geocode 결과 없음: %s (국가: %s)", location, countryHint)
		return models.Coordinates{}, ErrLocationNotFound
	}

	loc := results[0].Geometry.Location
	coords := models.Coordinates{Lat: loc.Lat, Lng: loc.Lng}

	log.Infof("Geocode 완료: %s → (%.6f, %.6f)", location, coords.Lat, coords.Lng)
	return coords, nil
}
