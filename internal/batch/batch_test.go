package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevepenney/LBDesign/internal/engine/calc"
)

func TestCalculateBatch(t *testing.T) {
	in := Input{Items: []calc.Input{
		{MemberType: "floor_joist", SpanM: 6, DeadLoad: 4, LiveLoad: 1},
		{MemberType: "rafter", SpanM: 3, DeadLoad: 0.5, LiveLoad: 0.5},
	}}
	out, err := Calculate(in)
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.InDelta(t, 22.5, out.Results[0].DemandMomentKNM, 1e-9)
}

func TestCalculateBatchEmpty(t *testing.T) {
	_, err := Calculate(Input{})
	require.Error(t, err)
}

func TestCalculateBatchFailsOnInvalidItem(t *testing.T) {
	in := Input{Items: []calc.Input{
		{MemberType: "beam", SpanM: 6, LiveLoad: 1},
		{MemberType: "beam", SpanM: -1, LiveLoad: 1},
	}}
	_, err := Calculate(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 2")
}
