// Package importer bulk-loads catalog products from CSV or XLSX files.
// Section properties are recomputed from raw dimensions on every row;
// rows that fail validation are reported and skipped, the rest load.
//
// Column layout (header row expected):
//
//	product_code, description, manufacturer, product_type, depth, width,
//	width_top, width_bottom, flange_thickness, web_thickness,
//	E, f_b, f_s, durability_class
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stevepenney/LBDesign/internal/engine/section"
	"github.com/stevepenney/LBDesign/internal/repo"
)

// Summary reports the outcome of a bulk import.
type Summary struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}

// ParseRow builds a Product from one record, recomputing the derived
// section properties through the engine.
func ParseRow(row []string) (repo.Product, error) {
	if len(row) < 13 {
		return repo.Product{}, fmt.Errorf("expected at least 13 columns, got %d", len(row))
	}

	p := repo.Product{
		ProductCode:  strings.TrimSpace(row[0]),
		Description:  strings.TrimSpace(row[1]),
		Manufacturer: strings.TrimSpace(row[2]),
		ProductType:  strings.TrimSpace(row[3]),
		IsActive:     true,
	}
	if p.ProductCode == "" {
		return repo.Product{}, fmt.Errorf("product code is required")
	}
	if len(row) > 13 {
		p.DurabilityClass = strings.TrimSpace(row[13])
	}

	var err error
	if p.DepthMM, err = optFloat(row[4]); err != nil {
		return repo.Product{}, fmt.Errorf("depth: %w", err)
	}
	if p.WidthMM, err = optFloat(row[5]); err != nil {
		return repo.Product{}, fmt.Errorf("width: %w", err)
	}
	if p.WidthTopMM, err = optFloat(row[6]); err != nil {
		return repo.Product{}, fmt.Errorf("width_top: %w", err)
	}
	if p.WidthBottomMM, err = optFloat(row[7]); err != nil {
		return repo.Product{}, fmt.Errorf("width_bottom: %w", err)
	}
	if p.FlangeThicknessMM, err = optFloat(row[8]); err != nil {
		return repo.Product{}, fmt.Errorf("flange_thickness: %w", err)
	}
	if p.WebThicknessMM, err = optFloat(row[9]); err != nil {
		return repo.Product{}, fmt.Errorf("web_thickness: %w", err)
	}
	if p.EMPa, err = reqFloat(row[10], "E"); err != nil {
		return repo.Product{}, err
	}
	if p.FbMPa, err = reqFloat(row[11], "f_b"); err != nil {
		return repo.Product{}, err
	}
	if p.FsMPa, err = reqFloat(row[12], "f_s"); err != nil {
		return repo.Product{}, err
	}

	var s section.Section
	switch p.ProductType {
	case repo.ProductIBeam:
		s = section.Section{
			Kind:              section.IBeam,
			DepthMM:           p.DepthMM,
			WidthTopMM:        p.WidthTopMM,
			WidthBottomMM:     p.WidthBottomMM,
			FlangeThicknessMM: p.FlangeThicknessMM,
			WebThicknessMM:    p.WebThicknessMM,
		}
	case repo.ProductSolidTimber, repo.ProductLVL, repo.ProductGlulam:
		s = section.Section{Kind: section.Rectangular, DepthMM: p.DepthMM, WidthMM: p.WidthMM}
	default:
		return repo.Product{}, fmt.Errorf("unknown product type %q", p.ProductType)
	}

	props, _, err := s.Properties()
	if err != nil {
		return repo.Product{}, err
	}
	p.IxxMM4 = props.IxxMM4
	p.IyyMM4 = props.IyyMM4
	p.ZxxMM3 = props.ZxxMM3
	p.ZyyMM3 = props.ZyyMM3
	p.AGrossMM2 = props.AGrossMM2
	p.AShearMM2 = props.AShearMM2

	return p, nil
}

// ImportRows inserts parsed rows, skipping and reporting bad ones.
// rowOffset is the file row number of the first record (2 when a header
// was skipped).
func ImportRows(ctx context.Context, products repo.ProductRepository, rows [][]string, rowOffset int) Summary {
	var sum Summary
	for i, row := range rows {
		rowNum := rowOffset + i
		if len(row) == 0 {
			continue
		}
		p, err := ParseRow(row)
		if err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if _, err := products.CreateProduct(ctx, p); err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		sum.Imported++
	}
	return sum
}

// ImportCSV reads the whole CSV stream (header row required) and loads it.
func ImportCSV(ctx context.Context, products repo.ProductRepository, r io.Reader) (Summary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Summary{}, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) < 2 {
		return Summary{}, fmt.Errorf("no data rows")
	}
	return ImportRows(ctx, products, records[1:], 2), nil
}

func optFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func reqFloat(s, name string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
