package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMomentSimpleUDL(t *testing.T) {
	assert.InDelta(t, 22.5, MomentSimpleUDL(5, 6), 1e-9)
	assert.InDelta(t, 10.0, MomentSimpleUDL(5, 4), 1e-9)
}

func TestMomentSimpleUDLMonotonic(t *testing.T) {
	base := MomentSimpleUDL(5, 6)
	assert.Greater(t, MomentSimpleUDL(6, 6), base)
	assert.Greater(t, MomentSimpleUDL(5, 7), base)
}

func TestMomentSimplePointCenter(t *testing.T) {
	assert.InDelta(t, 15.0, MomentSimplePointCenter(10, 6), 1e-9)
}

func TestMomentPointOffset(t *testing.T) {
	// Midspan offset equals the PL/4 case.
	assert.InDelta(t, MomentSimplePointCenter(10, 6), MomentPointOffset(10, 6, 3), 1e-9)
	// P=12, L=6, a=2: M = 12*2*4/6 = 16.
	assert.InDelta(t, 16.0, MomentPointOffset(12, 6, 2), 1e-9)
}

func TestMomentCombined(t *testing.T) {
	loads := []PointLoad{
		{MagnitudeKN: 10, PositionM: 3}, // 15 kNm
		{MagnitudeKN: 12, PositionM: 2}, // 16 kNm, governs
	}
	assert.InDelta(t, 22.5+16.0, MomentCombined(5, 6, loads), 1e-9)
	// No point loads: plain UDL moment.
	assert.InDelta(t, 22.5, MomentCombined(5, 6, nil), 1e-9)
}

func TestMomentContinuousApprox(t *testing.T) {
	assert.InDelta(t, 0.8*22.5, MomentContinuousApprox(5, 6), 1e-9)
}

func TestShearSimpleUDL(t *testing.T) {
	assert.InDelta(t, 15.0, ShearSimpleUDL(5, 6), 1e-9)
}

func TestShearPointOffset(t *testing.T) {
	// P=12 at a=2 on L=6: R_left = 8, R_right = 4.
	assert.InDelta(t, 8.0, ShearPointOffset(12, 6, 2), 1e-9)
	// Mirrored position gives the same governing reaction.
	assert.InDelta(t, 8.0, ShearPointOffset(12, 6, 4), 1e-9)
}

func TestShearCombined(t *testing.T) {
	loads := []PointLoad{{MagnitudeKN: 12, PositionM: 2}}
	// V_udl = 15, R_left = 8, R_right = 4 → governing 23.
	assert.InDelta(t, 23.0, ShearCombined(5, 6, loads), 1e-9)
}

func TestDeflectionSimpleUDL(t *testing.T) {
	// 5 kN/m over 6 m, 300x45 LVL: E=13800 MPa, I=101,250,000 mm⁴.
	got := DeflectionSimpleUDL(5, 6, 13800, 101_250_000)
	want := 5.0 * 5.0 * math.Pow(6000, 4) / (384.0 * 13800 * 101_250_000)
	assert.InDelta(t, want, got, 1e-6)
	assert.InDelta(t, 60.39, got, 0.01)
}

func TestDeflectionSimplePointCenter(t *testing.T) {
	got := DeflectionSimplePointCenter(10, 6, 13800, 101_250_000)
	want := 10_000.0 * math.Pow(6000, 3) / (48.0 * 13800 * 101_250_000)
	assert.InDelta(t, want, got, 1e-6)
}

func TestDeflectionLimit(t *testing.T) {
	assert.InDelta(t, 20.0, DeflectionLimit(6, 300), 1e-9)
	assert.InDelta(t, 24.0, DeflectionLimit(6, 250), 1e-9)
}

func TestUtilizationRatio(t *testing.T) {
	assert.InDelta(t, 0.75, UtilizationRatio(15, 20), 1e-9)
	assert.True(t, math.IsInf(UtilizationRatio(15, 0), 1))
	assert.True(t, math.IsInf(UtilizationRatio(0, 0), 1))
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		util float64
		want Status
	}{
		{0.0, StatusPass},
		{0.8999, StatusPass},
		{0.90, StatusWarning},
		{0.9999, StatusWarning},
		{1.00, StatusFail},
		{1.1, StatusFail},
		{math.Inf(1), StatusFail},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.util), "utilization %v", c.util)
	}
}

func TestZeroCapacityClassifiesFail(t *testing.T) {
	for _, demand := range []float64{0, 1, 15, 1e6} {
		assert.Equal(t, StatusFail, Classify(UtilizationRatio(demand, 0)))
	}
}
