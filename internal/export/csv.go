package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Wafik20/business-finder/internal/logger"
	"github.com/Wafik20/business-finder/pkg/models"
)

var csvHeader = []string{
	"name",
	"address",
	"phone",
	"website",
	"rating",
	"rating_count",
	"distance_miles",
	"categories",
	"business_status",
	"hours",
}

// WriteTo 검색 결과를 CSV 형식으로 기록
func WriteTo(w io.Writer, places []models.Place) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("CSV 헤더 기록 실패: %w", err)
	}

	for _, place := range places {
		if err := writer.Write(toRow(place)); err != nil {
			return fmt.Errorf("CSV 행 기록 실패 (id=%s): %w", place.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV 플러시 실패: %w", err)
	}
	return nil
}

// WriteCSV 검색 결과를 지정 경로의 CSV 파일로 저장
func WriteCSV(path string, places []models.Place) error {
	log := logger.GetLogger("export.csv")

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("CSV 파일 생성 실패 (%s): %w", path, err)
	}
	defer file.Close()

	if err := WriteTo(file, places); err != nil {
		return err
	}

	log.Infof("CSV 저장 완료: %s (%d건)", path, len(places))
	return nil
}

func toRow(place models.Place) []string {
	rating := ""
	if place.Rating != nil {
		rating = strconv.FormatFloat(*place.Rating, 'f', 1, 64)
	}
	ratingCount := ""
	if place.RatingCount > 0 {
		ratingCount = strconv.Itoa(place.RatingCount)
	}
	status := ""
	if place.BusinessStatus != nil {
		status = *place.BusinessStatus
	}

	hours := make([]string, 0, len(place.Hours))
	for _, day := range place.Hours {
		hours = append(hours, day.Day+": "+day.Hours)
	}

	return []string{
		place.Name,
		place.Address,
		strOrEmpty(place.Phone),
		strOrEmpty(place.Website),
		rating,
		ratingCount,
		strconv.FormatFloat(place.DistanceMiles, 'f', 1, 64),
		strings.Join(place.Categories, "; "),
		status,
		strings.Join(hours, " | "),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
