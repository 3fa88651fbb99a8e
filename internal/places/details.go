package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Wafik20/business-finder/pkg/models"
)

// GetDetails 단일 place의 상세 정보 조회
// 실패 시 에러를 반환하며 재시도는 하지 않는다
func (c *Client) GetDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	url := fmt.Sprintf("%s/%s", c.detailURL, placeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 생성 실패: %w", err)
	}

	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", detailFieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("상세 조회 실패 (%s): status=%d", placeID, resp.StatusCode)
	}

	var place models.GooglePlace
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return nil, fmt.Errorf("응답 JSON 파싱 실패: %w", err)
	}

	return toDetails(place), nil
}

// toDetails 상세 응답을 PlaceDetails로 변환 (빈 값은 nil 유지)
func toDetails(p models.GooglePlace) *models.PlaceDetails {
	details := &models.PlaceDetails{
		Rating:      p.Rating,
		RatingCount: p.UserRatingCount,
		Categories:  p.Types,
		Hours:       parseWeekdayHours(p.RegularOpeningHours),
	}

	if p.FormattedAddress != "" {
		address := p.FormattedAddress
		details.Address = &address
	}
	if p.NationalPhoneNumber != "" {
		phone := p.NationalPhoneNumber
		details.Phone = &phone
	}
	if p.WebsiteURI != "" {
		website := p.WebsiteURI
		details.Website = &website
	}
	if p.PrimaryType != "" {
		primary := p.PrimaryType
		details.PrimaryCategory = &primary
	}
	if level, ok := priceLevels[p.PriceLevel]; ok {
		details.PriceLevel = &level
	}
	if p.BusinessStatus != "" {
		status := p.BusinessStatus
		details.BusinessStatus = &status
	}

	return details
}
