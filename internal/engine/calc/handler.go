package calc

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stevepenney/LBDesign/internal/engine/section"
)

type Handler struct{}

// maxPointLoads caps the request payload; stored beams carry the same two
// point-load columns.
const maxPointLoads = 2

// Preview runs a calculation without persisting anything. Validation
// problems come back as 400 with the engine's message.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.PointLoads) > maxPointLoads {
		http.Error(w, "At most 2 point loads are supported", http.StatusBadRequest)
		return
	}

	res, err := Evaluate(input)
	if err != nil {
		var verr *section.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"error": "invalid section", "problems": verr.Problems})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
