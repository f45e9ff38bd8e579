// Package catalog maps stored products onto engine inputs and recommends
// catalog members that pass a given check.
package catalog

import (
	"context"
	"fmt"

	"github.com/stevepenney/LBDesign/internal/engine/calc"
	"github.com/stevepenney/LBDesign/internal/engine/formula"
	"github.com/stevepenney/LBDesign/internal/engine/nzs3603"
	"github.com/stevepenney/LBDesign/internal/engine/section"
	"github.com/stevepenney/LBDesign/internal/repo"
)

// SectionFor converts a catalog product into the section geometry the
// engine computes properties from. Unknown product types are an error.
func SectionFor(p repo.Product) (section.Section, error) {
	switch p.ProductType {
	case repo.ProductIBeam:
		return section.Section{
			Kind:              section.IBeam,
			DepthMM:           p.DepthMM,
			WidthTopMM:        p.WidthTopMM,
			WidthBottomMM:     p.WidthBottomMM,
			FlangeThicknessMM: p.FlangeThicknessMM,
			WebThicknessMM:    p.WebThicknessMM,
		}, nil
	case repo.ProductSolidTimber, repo.ProductLVL, repo.ProductGlulam:
		return section.Section{
			Kind:    section.Rectangular,
			DepthMM: p.DepthMM,
			WidthMM: p.WidthMM,
		}, nil
	default:
		return section.Section{}, fmt.Errorf("unknown product type %q", p.ProductType)
	}
}

// MaterialFor returns the product's characteristic material values.
func MaterialFor(p repo.Product) nzs3603.Material {
	return nzs3603.Material{
		EMPa:  p.EMPa,
		FbMPa: p.FbMPa,
		FsMPa: p.FsMPa,
		FtMPa: p.FtMPa,
		FcMPa: p.FcMPa,
	}
}

// Properties returns the validated section properties for a product,
// recomputed from the raw dimensions.
func Properties(p repo.Product) (section.Properties, error) {
	s, err := SectionFor(p)
	if err != nil {
		return section.Properties{}, err
	}
	props, _, err := s.Properties()
	return props, err
}

// Service resolves product codes against the catalog repository.
type Service struct {
	Products repo.ProductRepository
}

// Lookup resolves a product code to a validated section-properties +
// material pair for the engine.
func (s *Service) Lookup(ctx context.Context, code string) (section.Properties, nzs3603.Material, error) {
	p, err := s.Products.GetByCode(ctx, code)
	if err != nil {
		return section.Properties{}, nzs3603.Material{}, fmt.Errorf("product %q: %w", code, err)
	}
	props, err := Properties(p)
	if err != nil {
		return section.Properties{}, nzs3603.Material{}, fmt.Errorf("product %q: %w", code, err)
	}
	return props, MaterialFor(p), nil
}

// Recommendation is one passing candidate for a member check.
type Recommendation struct {
	ProductCode    string  `json:"product_code"`
	Description    string  `json:"description"`
	AGrossMM2      float64 `json:"a_gross_mm2"`
	MaxUtilization float64 `json:"max_utilization"`
}

// Recommend runs the check against every active product of the requested
// type and returns the ones that PASS. The repository orders products by
// gross area, so the lightest candidates come first.
func (s *Service) Recommend(ctx context.Context, in calc.Input, productType string, limit int) ([]Recommendation, error) {
	products, err := s.Products.ListActive(ctx, productType)
	if err != nil {
		return nil, err
	}

	var recs []Recommendation
	for _, p := range products {
		props, err := Properties(p)
		if err != nil {
			continue // bad catalog row, skip
		}
		mat := MaterialFor(p)

		candidate := in
		candidate.Section = nil
		candidate.SectionProps = &props
		candidate.Material = &mat

		res, err := calc.Evaluate(candidate)
		if err != nil {
			return nil, err
		}
		if res.Status != formula.StatusPass {
			continue
		}
		recs = append(recs, Recommendation{
			ProductCode:    p.ProductCode,
			Description:    p.Description,
			AGrossMM2:      props.AGrossMM2,
			MaxUtilization: res.MaxUtilization,
		})
		if limit > 0 && len(recs) >= limit {
			break
		}
	}
	return recs, nil
}
