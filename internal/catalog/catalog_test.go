package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevepenney/LBDesign/internal/engine/calc"
	"github.com/stevepenney/LBDesign/internal/engine/section"
	"github.com/stevepenney/LBDesign/internal/repo"
)

type fakeProductRepo struct {
	products []repo.Product
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, p repo.Product) (int, error) {
	f.products = append(f.products, p)
	return len(f.products), nil
}

func (f *fakeProductRepo) GetByCode(ctx context.Context, code string) (repo.Product, error) {
	for _, p := range f.products {
		if p.ProductCode == code {
			return p, nil
		}
	}
	return repo.Product{}, assert.AnError
}

func (f *fakeProductRepo) ListActive(ctx context.Context, productType string) ([]repo.Product, error) {
	var out []repo.Product
	for _, p := range f.products {
		if p.IsActive && (productType == "" || p.ProductType == productType) {
			out = append(out, p)
		}
	}
	return out, nil
}

func lvl300x45() repo.Product {
	return repo.Product{
		ProductCode: "LVL-E13-300x45",
		Description: "E13 LVL 300x45",
		ProductType: repo.ProductLVL,
		DepthMM:     300,
		WidthMM:     45,
		EMPa:        13800,
		FbMPa:       48,
		FsMPa:       5.5,
		IsActive:    true,
	}
}

func lw300() repo.Product {
	return repo.Product{
		ProductCode:       "LW300",
		Description:       "Lumberworx LW300 I-beam",
		ProductType:       repo.ProductIBeam,
		DepthMM:           300,
		WidthTopMM:        63,
		WidthBottomMM:     63,
		FlangeThicknessMM: 45,
		WebThicknessMM:    11,
		EMPa:              13800,
		FbMPa:             48,
		FsMPa:             5.5,
		IsActive:          true,
	}
}

func TestSectionForIBeam(t *testing.T) {
	s, err := SectionFor(lw300())
	require.NoError(t, err)
	assert.Equal(t, section.IBeam, s.Kind)
	assert.InDelta(t, 11, s.WebThicknessMM, 1e-9)
}

func TestSectionForUnknownType(t *testing.T) {
	p := lvl300x45()
	p.ProductType = "STEEL"
	_, err := SectionFor(p)
	require.Error(t, err)
}

func TestPropertiesRecomputed(t *testing.T) {
	props, err := Properties(lvl300x45())
	require.NoError(t, err)
	assert.InDelta(t, 13500, props.AGrossMM2, 0.01)
	assert.InDelta(t, 675_000, props.ZxxMM3, 0.01)

	ibeam, err := Properties(lw300())
	require.NoError(t, err)
	assert.InDelta(t, 2310, ibeam.AShearMM2, 0.01) // web only
}

func TestLookup(t *testing.T) {
	svc := &Service{Products: &fakeProductRepo{products: []repo.Product{lvl300x45()}}}

	props, mat, err := svc.Lookup(context.Background(), "LVL-E13-300x45")
	require.NoError(t, err)
	assert.InDelta(t, 101_250_000, props.IxxMM4, 0.01)
	assert.InDelta(t, 13800, mat.EMPa, 1e-9)

	_, _, err = svc.Lookup(context.Background(), "missing")
	require.Error(t, err)
}

func TestRecommendFiltersToPassing(t *testing.T) {
	small := lvl300x45()
	small.ProductCode = "LVL-90x45"
	small.DepthMM = 90 // far too small for the check below

	svc := &Service{Products: &fakeProductRepo{products: []repo.Product{small, lvl300x45(), lw300()}}}

	in := calc.Input{
		MemberType: "floor_joist",
		SpanM:      4,
		DeadLoad:   1,
		LiveLoad:   1,
	}
	recs, err := svc.Recommend(context.Background(), in, "", 5)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.NotEqual(t, "LVL-90x45", r.ProductCode)
		assert.Less(t, r.MaxUtilization, 0.9)
	}
}
