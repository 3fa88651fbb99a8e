package models

// Places API v1 요청/응답 구조체
// https://places.googleapis.com/v1 (searchNearby / searchText / place details)

// GoogleLatLng 요청 body용 좌표
type GoogleLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GoogleCircle 원형 검색 영역 (중심 + 반경 미터)
type GoogleCircle struct {
	Center GoogleLatLng `json:"center"`
	Radius float64      `json:"radius"`
}

// GoogleLocationArea locationRestriction / locationBias 공용
type GoogleLocationArea struct {
	Circle GoogleCircle `json:"circle"`
}

// NearbySearchRequest searchNearby 요청 body
type NearbySearchRequest struct {
	LocationRestriction GoogleLocationArea `json:"locationRestriction"`
	IncludedTypes       []string           `json:"includedTypes"`
	MaxResultCount      int                `json:"maxResultCount"`
	PageToken           string             `json:"pageToken,omitempty"`
}

// TextSearchRequest searchText 요청 body
type TextSearchRequest struct {
	TextQuery      string             `json:"textQuery"`
	MaxResultCount int                `json:"maxResultCount"`
	LocationBias   GoogleLocationArea `json:"locationBias"`
	PageToken      string             `json:"pageToken,omitempty"`
}

// GoogleLocalizedText displayName 등 로컬라이즈 텍스트
type GoogleLocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// GoogleOpeningHours regularOpeningHours 필드
type GoogleOpeningHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

// GooglePlace 검색/상세 응답의 place 엔트리
// 옵션 필드는 전부 포인터 또는 zero value 허용으로 둔다
type GooglePlace struct {
	ID                     string               `json:"id"`
	DisplayName            *GoogleLocalizedText `json:"displayName"`
	FormattedAddress       string               `json:"formattedAddress"`
	Location               *GoogleLatLng        `json:"location"`
	Rating                 *float64             `json:"rating"`
	UserRatingCount        int                  `json:"userRatingCount"`
	Types                  []string             `json:"types"`
	PrimaryType            string               `json:"primaryType"`
	PrimaryTypeDisplayName *GoogleLocalizedText `json:"primaryTypeDisplayName"`
	PriceLevel             string               `json:"priceLevel"`
	BusinessStatus         string               `json:"businessStatus"`
	NationalPhoneNumber    string               `json:"nationalPhoneNumber"`
	WebsiteURI             string               `json:"websiteUri"`
	RegularOpeningHours    *GoogleOpeningHours  `json:"regularOpeningHours"`
}

// PlacesSearchResponse searchNearby / searchText 응답
type PlacesSearchResponse struct {
	Places        []GooglePlace `json:"places"`
	NextPageToken string        `json:"nextPageToken"`
}
