// Package report renders a certified calculation result as a PDF.
package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/stevepenney/LBDesign/internal/engine/calc"
)

type Input struct {
	Project string     `json:"project"`
	Author  string     `json:"author"`
	Title   string     `json:"title"`
	Member  string     `json:"member"`
	Notes   string     `json:"notes"`
	Input   calc.Input `json:"input"`
}

type Handler struct{}

// Generate runs the posted check and streams a PDF report of it.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Member Design Report"
	}

	res, err := calc.Evaluate(input.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Member: %s", input.Member))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Result: %s (controlling: %s)", res.Status, res.ControllingFactor))
	pdf.Ln(10)

	writeCheck(pdf, "Bending", fmt.Sprintf("M* = %.2f kNm", res.DemandMomentKNM),
		fmt.Sprintf("phiMn = %.2f kNm", res.CapacityMomentKNM), res.UtilizationMoment)
	writeCheck(pdf, "Shear", fmt.Sprintf("V* = %.2f kN", res.DemandShearKN),
		fmt.Sprintf("phiVn = %.2f kN", res.CapacityShearKN), res.UtilizationShear)
	writeCheck(pdf, "Deflection", fmt.Sprintf("delta = %.2f mm", res.DemandDeflectionMM),
		fmt.Sprintf("limit = %.2f mm", res.DeflectionLimitMM), res.UtilizationDeflection)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Factors: k1=%.2f  k4=%.2f  k6=%.2f", res.Factors.K1, res.Factors.K4, res.Factors.K6))
	pdf.Ln(6)
	if res.ContinuousApprox {
		pdf.Cell(0, 6, "Note: continuous member approximated as simply supported (moment x 0.8).")
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("%s  v%s  certified %s", res.Standard, res.CalcVersion, res.CertifiedDate))
	pdf.Ln(10)

	if input.Notes != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func writeCheck(pdf *gofpdf.Fpdf, name, demand, capacity string, util float64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(40, 6, name)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(55, 6, demand)
	pdf.Cell(55, 6, capacity)
	pdf.Cell(0, 6, fmt.Sprintf("ratio = %.3f", util))
	pdf.Ln(7)
}
