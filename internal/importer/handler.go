package importer

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stevepenney/LBDesign/internal/repo"
)

const maxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Repo repo.ProductRepository
}

// Products accepts a CSV or XLSX upload in the "file" form field and bulk
// loads the catalog from it.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var sum Summary
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			http.Error(w, "Invalid file", http.StatusBadRequest)
			return
		}
		defer f.Close()

		sheet := f.GetSheetName(0)
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			http.Error(w, "Empty sheet", http.StatusBadRequest)
			return
		}
		sum = ImportRows(r.Context(), h.Repo, rows[1:], 2)
	default:
		sum, err = ImportCSV(r.Context(), h.Repo, file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sum)
}
