package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevepenney/LBDesign/internal/engine/formula"
	"github.com/stevepenney/LBDesign/internal/engine/nzs3603"
	"github.com/stevepenney/LBDesign/internal/engine/section"
)

func TestEvaluateEndToEnd300x45LVL(t *testing.T) {
	// 6 m floor joist, 5 kN/m total line load (4 dead + 1 live), default
	// 300x45 LVL placeholder, medium-term/dry/normal.
	res, err := Evaluate(Input{
		MemberType: "floor_joist",
		SpanM:      6,
		DeadLoad:   4,
		LiveLoad:   1,
	})
	require.NoError(t, err)

	assert.InDelta(t, 22.5, res.DemandMomentKNM, 1e-9)
	assert.InDelta(t, 15.0, res.DemandShearKN, 1e-9)
	assert.InDelta(t, 23.33, res.CapacityMomentKNM, 0.005)
	assert.InDelta(t, 35.64, res.CapacityShearKN, 0.005)
	assert.InDelta(t, 20.0, res.DeflectionLimitMM, 1e-9)
	assert.InDelta(t, 12.08, res.DemandDeflectionMM, 0.01)

	assert.InDelta(t, 0.9645, res.UtilizationMoment, 0.001)
	assert.Equal(t, formula.StatusWarning, res.Status)
	assert.Equal(t, ControlBending, res.ControllingFactor)

	assert.Equal(t, "1.0.0", res.CalcVersion)
	assert.Equal(t, "NZS3603:1993", res.Standard)
	assert.Equal(t, "2024-11-27", res.CertifiedDate)
	assert.False(t, res.CalcDate.IsZero())
	assert.False(t, res.ContinuousApprox)
}

func TestEvaluateSpacingConvertsPressureLoads(t *testing.T) {
	// 0.5 + 1.5 kPa at 600 crs → 1.2 kN/m line load.
	res, err := Evaluate(Input{
		MemberType: "floor_joist",
		SpanM:      6,
		SpacingM:   0.6,
		DeadLoad:   0.5,
		LiveLoad:   1.5,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.2*36/8, res.DemandMomentKNM, 1e-9)
	assert.InDelta(t, 1.2*6/2, res.DemandShearKN, 1e-9)
}

func TestEvaluateCombinedPointLoads(t *testing.T) {
	res, err := Evaluate(Input{
		MemberType: "beam",
		SpanM:      6,
		DeadLoad:   4,
		LiveLoad:   1,
		PointLoads: []formula.PointLoad{{MagnitudeKN: 10, PositionM: 3}},
	})
	require.NoError(t, err)
	// Superposed midspan estimate: 22.5 + 15 = 37.5 kNm.
	assert.InDelta(t, 37.5, res.DemandMomentKNM, 1e-9)
	// 15 + 5 = 20 kN at either support.
	assert.InDelta(t, 20.0, res.DemandShearKN, 1e-9)
	assert.Equal(t, formula.StatusFail, res.Status)
}

func TestEvaluateContinuousApproximation(t *testing.T) {
	supports := []Support{
		{PositionM: 0, Type: SupportPinned},
		{PositionM: 3, Type: SupportPinned},
		{PositionM: 6, Type: SupportPinned},
	}
	res, err := Evaluate(Input{
		MemberType: "beam",
		SpanM:      6,
		DeadLoad:   4,
		LiveLoad:   1,
		Supports:   supports,
	})
	require.NoError(t, err)
	assert.True(t, res.ContinuousApprox)
	// Moment scaled by 0.8, shear unmodified.
	assert.InDelta(t, 0.8*22.5, res.DemandMomentKNM, 1e-9)
	assert.InDelta(t, 15.0, res.DemandShearKN, 1e-9)
}

func TestEvaluateSingleSupportRejected(t *testing.T) {
	_, err := Evaluate(Input{
		MemberType: "beam",
		SpanM:      6,
		LiveLoad:   1,
		Supports:   []Support{{PositionM: 0, Type: SupportPinned}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "support configuration")
}

func TestEvaluateEmptySupportsRejected(t *testing.T) {
	// An explicit empty list is a degenerate configuration, not a request
	// for the default span.
	_, err := Evaluate(Input{
		MemberType: "beam",
		SpanM:      6,
		LiveLoad:   1,
		Supports:   []Support{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "support configuration")

	// Omitted supports still resolve to the simply supported default.
	res, err := Evaluate(Input{MemberType: "beam", SpanM: 6, LiveLoad: 1})
	require.NoError(t, err)
	assert.False(t, res.ContinuousApprox)
}

func TestEvaluateUnknownSupportType(t *testing.T) {
	_, err := Evaluate(Input{
		MemberType: "beam",
		SpanM:      6,
		LiveLoad:   1,
		Supports: []Support{
			{PositionM: 0, Type: SupportPinned},
			{PositionM: 6, Type: "fixed"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "fixed"`)

	// An empty type defaults to pinned.
	res, err := Evaluate(Input{
		MemberType: "beam",
		SpanM:      6,
		LiveLoad:   1,
		Supports:   []Support{{PositionM: 0}, {PositionM: 6}},
	})
	require.NoError(t, err)
	assert.False(t, res.ContinuousApprox)
}

func TestEvaluatePointLoadOutsideSpan(t *testing.T) {
	_, err := Evaluate(Input{
		MemberType: "beam",
		SpanM:      6,
		LiveLoad:   1,
		PointLoads: []formula.PointLoad{{MagnitudeKN: 10, PositionM: 7}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside span")
}

func TestEvaluateNonPositiveSpan(t *testing.T) {
	_, err := Evaluate(Input{MemberType: "beam", SpanM: 0, LiveLoad: 1})
	require.Error(t, err)
}

func TestEvaluateUnknownConditionRejected(t *testing.T) {
	_, err := Evaluate(Input{
		MemberType: "beam",
		SpanM:      6,
		LiveLoad:   1,
		Conditions: Conditions{LoadDuration: "sometimes"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load duration")
}

func TestEvaluateInvalidSectionAborts(t *testing.T) {
	s := &section.Section{Kind: section.Rectangular, DepthMM: -300, WidthMM: 45}
	_, err := Evaluate(Input{MemberType: "beam", SpanM: 6, LiveLoad: 1, Section: s})
	var verr *section.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestEvaluateZeroCapacityFails(t *testing.T) {
	mat := nzs3603.Material{EMPa: 13800, FbMPa: 0, FsMPa: 5.5}
	res, err := Evaluate(Input{
		MemberType: "floor",
		SpanM:      6,
		DeadLoad:   4,
		LiveLoad:   1,
		Material:   &mat,
	})
	require.NoError(t, err)
	assert.Equal(t, formula.StatusFail, res.Status)
	assert.Equal(t, ControlBending, res.ControllingFactor)
	assert.InDelta(t, OverstressSentinel, res.UtilizationMoment, 1e-9)
}

func TestEvaluateDeflectionUsesLiveLoadOnly(t *testing.T) {
	heavyDead, err := Evaluate(Input{MemberType: "floor", SpanM: 6, DeadLoad: 10, LiveLoad: 1})
	require.NoError(t, err)
	lightDead, err := Evaluate(Input{MemberType: "floor", SpanM: 6, DeadLoad: 1, LiveLoad: 1})
	require.NoError(t, err)
	assert.InDelta(t, lightDead.DemandDeflectionMM, heavyDead.DemandDeflectionMM, 1e-9)
}

func TestEvaluateDeflectionRatioByMemberType(t *testing.T) {
	cases := []struct {
		memberType string
		limit      float64
	}{
		{"floor_joist", 20.0},
		{"joist", 20.0},
		{"rafter", 24.0},
		{"roof_beam", 24.0},
		{"lintel", 20.0}, // default
	}
	for _, c := range cases {
		res, err := Evaluate(Input{MemberType: c.memberType, SpanM: 6, LiveLoad: 1})
		require.NoError(t, err)
		assert.InDelta(t, c.limit, res.DeflectionLimitMM, 1e-9, "member type %s", c.memberType)
	}
}

func TestEvaluateControllingTiePrecedence(t *testing.T) {
	// Zero loads give three zero ratios; bending wins the tie.
	res, err := Evaluate(Input{MemberType: "beam", SpanM: 6})
	require.NoError(t, err)
	assert.Equal(t, ControlBending, res.ControllingFactor)
	assert.Equal(t, formula.StatusPass, res.Status)
}

func TestEvaluateCatalogSectionPath(t *testing.T) {
	props := section.Properties{
		AGrossMM2: 7980, AShearMM2: 2310,
		IxxMM4: 101_619_000, ZxxMM3: 677_460,
	}
	mat := nzs3603.Material{EMPa: 13800, FbMPa: 48, FsMPa: 5.5}
	res, err := Evaluate(Input{
		MemberType:   "floor",
		SpanM:        4,
		LiveLoad:     2,
		SectionProps: &props,
		Material:     &mat,
	})
	require.NoError(t, err)
	assert.InDelta(t, props.AShearMM2, res.Section.AShearMM2, 1e-9)
	// Shear capacity from the web area: 0.72*5.5*2310/1000.
	assert.InDelta(t, 9.15, res.CapacityShearKN, 0.005)
}

func TestEvaluateAdvisorySurfaced(t *testing.T) {
	s := &section.Section{Kind: section.Rectangular, DepthMM: 45, WidthMM: 300}
	res, err := Evaluate(Input{MemberType: "beam", SpanM: 2, LiveLoad: 0.5, Section: s})
	require.NoError(t, err)
	require.Len(t, res.Advisories, 1)
	assert.Contains(t, res.Advisories[0], "depth is less than width")
}
