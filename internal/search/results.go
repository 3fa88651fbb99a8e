package search

import (
	"sort"

	"github.com/Wafik20/business-finder/pkg/models"
)

// Deduplicate place ID 기준 중복 제거
// 먼저 나온 레코드가 살아남고 이후 중복은 버린다 (병합하지 않음)
func Deduplicate(places []models.Place) []models.Place {
	seen := make(map[string]bool, len(places))
	unique := make([]models.Place, 0, len(places))

	for _, p := range places {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		unique = append(unique, p)
	}
	return unique
}

// FilterByRadius 요청 반경을 실제 직선거리로 강제
// 업스트림의 반경 바이어스는 근사치라 여기서 정확히 거른다
func FilterByRadius(places []models.Place, radiusMiles float64) []models.Place {
	filtered := make([]models.Place, 0, len(places))
	for _, p := range places {
		if p.DistanceMiles <= radiusMiles {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SortByDistance 거리 오름차순 정렬 (동률은 삽입 순서 유지)
func SortByDistance(places []models.Place) {
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].DistanceMiles < places[j].DistanceMiles
	})
}
