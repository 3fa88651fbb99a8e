package geo

import (
	"math"

	"github.com/Wafik20/business-finder/internal/logger"
	"github.com/Wafik20/business-finder/pkg/models"
)

const (
	// MetersPerMile 1마일당 미터
	MetersPerMile = 1609.34
	// EarthRadiusMiles 지구 반지름 (마일)
	EarthRadiusMiles = 3959.0
	// MaxProviderRadiusMeters Places API가 허용하는 최대 반경 (미터)
	MaxProviderRadiusMeters = 50000
	// milesPerKilometer 1킬로미터당 마일
	milesPerKilometer = 0.621371
)

// MilesToMeters 마일을 미터로 변환
// Places API 최대치(50000m)를 초과하면 경고 로그 후 최대값으로 클램프
func MilesToMeters(miles float64) int {
	meters := int(miles * MetersPerMile)
	if meters > MaxProviderRadiusMeters {
		log := logger.GetLogger("geo")
		log.Warnf("반경 %.1f마일(%d미터)이 Places API 최대치 %d미터를 초과, 최대값으로 클램프",
			miles, meters, MaxProviderRadiusMeters)
		return MaxProviderRadiusMeters
	}
	return meters
}

// KilometersToMiles 킬로미터를 마일로 변환
func KilometersToMiles(km float64) float64 {
	return km * milesPerKilometer
}

// MilesToKilometers 마일을 킬로미터로 변환
func MilesToKilometers(miles float64) float64 {
	return miles / milesPerKilometer
}

// DistanceMiles 두 좌표 사이 great-circle 거리 (마일)
// 소수점 1자리로 반올림
func DistanceMiles(a, b models.Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(EarthRadiusMiles*c*10) / 10
}

// toRadians 각도를 라디안으로 변환
func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
