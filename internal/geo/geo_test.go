package geo

import (
	"testing"

	"github.com/Wafik20/business-finder/pkg/models"
)

// TestMilesToMeters 반경 변환 및 클램프 테스트
func TestMilesToMeters(t *testing.T) {
	testCases := []struct {
		miles    float64
		expected int
	}{
		{1, 1609},
		{31, 49889},       // 클램프 직전 최대 반경
		{40, 50000},       // API 최대치로 클램프
		{1000, 50000},     // 극단값도 클램프
		{0.5, 804},
	}

	for _, tc := range testCases {
		got := MilesToMeters(tc.miles)
		if got != tc.expected {
			t.Errorf("MilesToMeters(%.1f): expected %d, got %d", tc.miles, tc.expected, got)
		}
	}
}

// TestUnitConversions 마일↔킬로미터 변환 테스트
func TestUnitConversions(t *testing.T) {
	miles := KilometersToMiles(10)
	if miles < 6.2 || miles > 6.3 {
		t.Errorf("KilometersToMiles(10): expected ~6.21, got %f", miles)
	}

	km := MilesToKilometers(10)
	if km < 16.0 || km > 16.2 {
		t.Errorf("MilesToKilometers(10): expected ~16.09, got %f", km)
	}

	// 왕복 변환은 원래 값으로 돌아와야 함
	roundTrip := KilometersToMiles(MilesToKilometers(25))
	if roundTrip < 24.99 || roundTrip > 25.01 {
		t.Errorf("round trip: expected ~25, got %f", roundTrip)
	}
}

// TestDistanceMiles 거리 계산 테스트
func TestDistanceMiles(t *testing.T) {
	// 뉴욕 → 필라델피아 (약 80마일)
	nyc := models.Coordinates{Lat: 40.7128, Lng: -74.0060}
	philly := models.Coordinates{Lat: 39.9526, Lng: -75.1652}

	dist := DistanceMiles(nyc, philly)
	if dist < 75 || dist > 85 {
		t.Errorf("NYC → Philadelphia: expected ~80 miles, got %.1f", dist)
	}

	// 같은 좌표는 거리 0
	if d := DistanceMiles(nyc, nyc); d != 0 {
		t.Errorf("same point: expected 0, got %.1f", d)
	}

	t.Logf("NYC → Philadelphia: %.1f miles", dist)
}

// TestDistanceMilesRounding 소수 1자리 반올림 확인
func TestDistanceMilesRounding(t *testing.T) {
	a := models.Coordinates{Lat: 40.7128, Lng: -74.0060}
	b := models.Coordinates{Lat: 40.7614, Lng: -73.9776}

	dist := DistanceMiles(a, b)
	if dist*10 != float64(int(dist*10)) {
		t.Errorf("expected distance rounded to 1 decimal, got %v", dist)
	}
}
