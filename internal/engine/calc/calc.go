// Package calc orchestrates a complete member check: demands from the
// beam formulas, capacities from the NZS3603 factor tables, utilization
// ratios and a certified, timestamped result. Evaluate is pure apart from
// reading the clock; persistence is the caller's concern.
package calc

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stevepenney/LBDesign/internal/engine/formula"
	"github.com/stevepenney/LBDesign/internal/engine/nzs3603"
	"github.com/stevepenney/LBDesign/internal/engine/section"
)

// SupportPinned is the only support type currently defined.
const SupportPinned = "pinned"

// Support is one support along the span.
type Support struct {
	PositionM float64 `json:"position_m"`
	Type      string  `json:"type"`
}

// Conditions selects the modification factors. Empty fields resolve to
// the documented defaults (medium_term, dry, normal).
type Conditions struct {
	LoadDuration nzs3603.LoadDuration `json:"load_duration,omitempty"`
	Moisture     nzs3603.Moisture     `json:"moisture,omitempty"`
	Temperature  nzs3603.Temperature  `json:"temperature,omitempty"`
}

// Input is the full description of one member check. Dead and live loads
// are pressures (kPa) when SpacingM is set, otherwise line loads (kN/m).
// Section may be raw dimensions for on-the-fly property computation;
// SectionProps with Material is the catalog path. When neither is given
// the placeholder 300x45 LVL section is assumed.
type Input struct {
	MemberType string              `json:"member_type"`
	SpanM      float64             `json:"span_m"`
	SpacingM   float64             `json:"spacing_m,omitempty"`
	DeadLoad   float64             `json:"dead_load"`
	LiveLoad   float64             `json:"live_load"`
	PointLoads []formula.PointLoad `json:"point_loads,omitempty"`
	Supports   []Support           `json:"supports,omitempty"`

	Section      *section.Section    `json:"section,omitempty"`
	SectionProps *section.Properties `json:"section_props,omitempty"`
	Material     *nzs3603.Material   `json:"material,omitempty"`

	Conditions Conditions `json:"conditions"`
}

// Controlling factor names, in comparison precedence order.
const (
	ControlBending    = "Bending"
	ControlShear      = "Shear"
	ControlDeflection = "Deflection"
)

// OverstressSentinel replaces an infinite utilization ratio in stored and
// serialized results (encoding/json cannot represent +Inf). Classification
// happens before the cap, so the status is still FAIL.
const OverstressSentinel = 999.0

// Result is the certified outcome of one member check. It is created once
// per Evaluate call and never mutated; a recalculation produces a new
// Result.
type Result struct {
	DemandMomentKNM    float64 `json:"demand_moment_knm"`
	DemandShearKN      float64 `json:"demand_shear_kn"`
	DemandDeflectionMM float64 `json:"demand_deflection_mm"`

	CapacityMomentKNM float64 `json:"capacity_moment_knm"`
	CapacityShearKN   float64 `json:"capacity_shear_kn"`
	DeflectionLimitMM float64 `json:"deflection_limit_mm"`

	UtilizationMoment     float64 `json:"utilization_moment"`
	UtilizationShear      float64 `json:"utilization_shear"`
	UtilizationDeflection float64 `json:"utilization_deflection"`
	MaxUtilization        float64 `json:"max_utilization"`

	Status            formula.Status `json:"status"`
	ControllingFactor string         `json:"controlling_factor"`

	Factors          nzs3603.Factors    `json:"factors"`
	Section          section.Properties `json:"section"`
	Material         nzs3603.Material   `json:"material"`
	ContinuousApprox bool               `json:"continuous_approx"`
	Advisories       []string           `json:"advisories,omitempty"`

	CalcVersion   string    `json:"calc_version"`
	Standard      string    `json:"standard"`
	CertifiedDate string    `json:"certified_date"`
	CalcDate      time.Time `json:"calc_date"`
}

// Evaluate runs the complete check. All input validation happens before
// any formula executes: it either returns a full Result or an error, never
// a partial result.
func Evaluate(in Input) (Result, error) {
	if in.SpanM <= 0 {
		return Result{}, fmt.Errorf("span must be positive, got %g", in.SpanM)
	}
	// A nil Supports means the default simply supported span; an explicit
	// list must describe at least both ends.
	if in.Supports != nil && len(in.Supports) < 2 {
		return Result{}, fmt.Errorf("unsupported support configuration: need at least 2 supports, got %d", len(in.Supports))
	}
	for i, s := range in.Supports {
		if s.Type != "" && s.Type != SupportPinned {
			return Result{}, fmt.Errorf("support %d: unknown type %q", i+1, s.Type)
		}
	}
	for i, p := range in.PointLoads {
		if p.PositionM < 0 || p.PositionM > in.SpanM {
			return Result{}, fmt.Errorf("point load %d position %g m outside span 0..%g m", i+1, p.PositionM, in.SpanM)
		}
	}

	// Pressure loads become line loads when a tributary spacing is given;
	// otherwise the inputs are already kN/m.
	wDead := in.DeadLoad
	wLive := in.LiveLoad
	if in.SpacingM > 0 {
		wDead = in.DeadLoad * in.SpacingM
		wLive = in.LiveLoad * in.SpacingM
	}
	wTotal := wDead + wLive

	props, material, advisories, err := resolveSection(in)
	if err != nil {
		return Result{}, err
	}

	factors, err := nzs3603.ResolveFactors(in.Conditions.LoadDuration, in.Conditions.Moisture, in.Conditions.Temperature)
	if err != nil {
		return Result{}, err
	}

	// Demands. Members over more than two supports fall back to the
	// conservative continuous-beam approximation (UDL only).
	continuous := len(in.Supports) > 2
	var mStar, vStar float64
	switch {
	case continuous:
		mStar = formula.MomentContinuousApprox(wTotal, in.SpanM)
		vStar = formula.ShearSimpleUDL(wTotal, in.SpanM)
	case len(in.PointLoads) > 0:
		mStar = formula.MomentCombined(wTotal, in.SpanM, in.PointLoads)
		vStar = formula.ShearCombined(wTotal, in.SpanM, in.PointLoads)
	default:
		mStar = formula.MomentSimpleUDL(wTotal, in.SpanM)
		vStar = formula.ShearSimpleUDL(wTotal, in.SpanM)
	}

	// Serviceability uses the live-load line load only; sustained dead
	// load is excluded from the short-term deflection check.
	deltaStar := formula.DeflectionSimpleUDL(wLive, in.SpanM, material.EMPa, props.IxxMM4)
	deltaLimit := formula.DeflectionLimit(in.SpanM, deflectionRatio(in.MemberType))

	phiMn := nzs3603.MomentCapacity(props.ZxxMM3, material.FbMPa, factors, nzs3603.PhiBending)
	phiVn := nzs3603.ShearCapacity(props.AShearMM2, material.FsMPa, factors, nzs3603.PhiShear)

	utilM := formula.UtilizationRatio(mStar, phiMn)
	utilV := formula.UtilizationRatio(vStar, phiVn)
	utilD := formula.UtilizationRatio(deltaStar, deltaLimit)

	maxUtil := math.Max(utilM, math.Max(utilV, utilD))
	status := formula.Classify(maxUtil)

	var controlling string
	switch {
	case utilM >= utilV && utilM >= utilD:
		controlling = ControlBending
	case utilV >= utilD:
		controlling = ControlShear
	default:
		controlling = ControlDeflection
	}

	return Result{
		DemandMomentKNM:    round2(mStar),
		DemandShearKN:      round2(vStar),
		DemandDeflectionMM: round2(deltaStar),

		CapacityMomentKNM: round2(phiMn),
		CapacityShearKN:   round2(phiVn),
		DeflectionLimitMM: round2(deltaLimit),

		UtilizationMoment:     round3(capped(utilM)),
		UtilizationShear:      round3(capped(utilV)),
		UtilizationDeflection: round3(capped(utilD)),
		MaxUtilization:        round3(capped(maxUtil)),

		Status:            status,
		ControllingFactor: controlling,

		Factors:          factors,
		Section:          props,
		Material:         material,
		ContinuousApprox: continuous,
		Advisories:       advisories,

		CalcVersion:   nzs3603.Version,
		Standard:      nzs3603.Standard,
		CertifiedDate: nzs3603.CertifiedDate,
		CalcDate:      time.Now().UTC(),
	}, nil
}

// resolveSection picks the section properties and material for the check:
// catalog-supplied properties first, then raw dimensions, then the
// placeholder 300x45 LVL section.
func resolveSection(in Input) (section.Properties, nzs3603.Material, []string, error) {
	material := nzs3603.MaterialLVL
	if in.Material != nil {
		material = *in.Material
	}

	switch {
	case in.SectionProps != nil:
		return *in.SectionProps, material, nil, nil
	case in.Section != nil:
		props, advisories, err := in.Section.Properties()
		if err != nil {
			return section.Properties{}, nzs3603.Material{}, nil, err
		}
		return props, material, advisories, nil
	default:
		placeholder := section.Section{Kind: section.Rectangular, DepthMM: 300, WidthMM: 45}
		props, _, err := placeholder.Properties()
		if err != nil {
			return section.Properties{}, nzs3603.Material{}, nil, err
		}
		return props, material, nil, nil
	}
}

// deflectionRatio picks the span/deflection limit from the member type
// keyword: floors and joists get L/300, rafters and roofs L/250, anything
// else defaults to the floor limit.
func deflectionRatio(memberType string) float64 {
	t := strings.ToLower(memberType)
	switch {
	case strings.Contains(t, "floor") || strings.Contains(t, "joist"):
		return nzs3603.DeflectionRatioFloor
	case strings.Contains(t, "rafter") || strings.Contains(t, "roof"):
		return nzs3603.DeflectionRatioRoof
	default:
		return nzs3603.DeflectionRatioFloor
	}
}

func capped(util float64) float64 {
	if math.IsInf(util, 1) || util > OverstressSentinel {
		return OverstressSentinel
	}
	return util
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
