// Package formula holds the closed-form elastic beam statics used by the
// calculation engine. Every function is pure: a result depends only on its
// arguments. Units are explicit in each signature (kN, kN/m, m, MPa, mm⁴).
package formula

import "math"

// PointLoad is a concentrated load on a simply supported span, positioned
// from the left support.
type PointLoad struct {
	MagnitudeKN float64 `json:"magnitude_kn"`
	PositionM   float64 `json:"position_m"`
}

// ContinuousMomentFactor is the conservative reduction applied to the
// simple-beam moment when a member runs over more than two supports.
// Proper continuous beam analysis is not implemented; the span is treated
// as simply supported and the moment scaled by this factor, shear is left
// unmodified. See MomentContinuousApprox.
const ContinuousMomentFactor = 0.8

// MomentSimpleUDL returns the midspan moment M = wL²/8 (kNm) for a simply
// supported span under a uniformly distributed load w (kN/m) over L (m).
func MomentSimpleUDL(w, L float64) float64 {
	return w * L * L / 8.0
}

// MomentSimplePointCenter returns M = PL/4 (kNm) for a point load P (kN)
// at midspan.
func MomentSimplePointCenter(P, L float64) float64 {
	return P * L / 4.0
}

// MomentPointOffset returns M = Pab/L (kNm) under a point load P (kN) at
// distance a (m) from the left support, b = L-a.
func MomentPointOffset(P, L, a float64) float64 {
	b := L - a
	return P * a * b / L
}

// MomentCombined superimposes the UDL midspan moment with the governing
// point-load moment. The peaks do not strictly coincide, so the result is
// a conservative estimate rather than the exact combined diagram maximum.
func MomentCombined(w, L float64, loads []PointLoad) float64 {
	m := MomentSimpleUDL(w, L)
	var worst float64
	for _, p := range loads {
		if mp := MomentPointOffset(p.MagnitudeKN, L, p.PositionM); mp > worst {
			worst = mp
		}
	}
	return m + worst
}

// MomentContinuousApprox is the fallback for members over more than two
// supports: simple-beam moment times ContinuousMomentFactor.
func MomentContinuousApprox(w, L float64) float64 {
	return ContinuousMomentFactor * MomentSimpleUDL(w, L)
}

// ShearSimpleUDL returns the support shear V = wL/2 (kN).
func ShearSimpleUDL(w, L float64) float64 {
	return w * L / 2.0
}

// ShearSimplePointCenter returns V = P/2 (kN) for a midspan point load.
func ShearSimplePointCenter(P, L float64) float64 {
	return P / 2.0
}

// ShearPointOffset returns the larger support reaction from a point load P
// at distance a from the left support: max(Pb/L, Pa/L).
func ShearPointOffset(P, L, a float64) float64 {
	b := L - a
	r1 := P * b / L
	r2 := P * a / L
	return math.Max(r1, r2)
}

// ShearCombined sums the UDL support shear with the accumulated point-load
// reactions and returns the governing support.
func ShearCombined(w, L float64, loads []PointLoad) float64 {
	v := ShearSimpleUDL(w, L)
	var rLeft, rRight float64
	for _, p := range loads {
		b := L - p.PositionM
		rLeft += p.MagnitudeKN * b / L
		rRight += p.MagnitudeKN * p.PositionM / L
	}
	return math.Max(v+rLeft, v+rRight)
}

// DeflectionSimpleUDL returns the midspan deflection δ = 5wL⁴/(384EI) in
// mm. w is in kN/m (numerically equal to N/mm), L in m, E in MPa, I in mm⁴.
func DeflectionSimpleUDL(w, L, E, I float64) float64 {
	wNmm := w // 1 kN/m = 1 N/mm
	Lmm := L * 1000.0
	return 5.0 * wNmm * math.Pow(Lmm, 4) / (384.0 * E * I)
}

// DeflectionSimplePointCenter returns δ = PL³/(48EI) in mm for a midspan
// point load P (kN).
func DeflectionSimplePointCenter(P, L, E, I float64) float64 {
	pN := P * 1000.0
	Lmm := L * 1000.0
	return pN * math.Pow(Lmm, 3) / (48.0 * E * I)
}

// DeflectionLimit returns the allowable deflection L/ratio in mm for a
// span L in m (ratio 300 gives L/300).
func DeflectionLimit(L, ratio float64) float64 {
	return L * 1000.0 / ratio
}

// UtilizationRatio returns demand/capacity. A zero capacity yields +Inf
// rather than a division fault; Classify maps it to FAIL.
func UtilizationRatio(demand, capacity float64) float64 {
	if capacity == 0 {
		return math.Inf(1)
	}
	return demand / capacity
}
