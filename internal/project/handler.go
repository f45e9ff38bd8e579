// Package project exposes the JSON API over stored projects and beams,
// including the calculate action that runs the engine on a stored beam.
package project

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stevepenney/LBDesign/internal/auth"
	"github.com/stevepenney/LBDesign/internal/catalog"
	"github.com/stevepenney/LBDesign/internal/engine/calc"
	"github.com/stevepenney/LBDesign/internal/engine/formula"
	"github.com/stevepenney/LBDesign/internal/repo"
)

type Handler struct {
	Projects repo.ProjectRepository
	Beams    repo.BeamRepository
	Catalog  *catalog.Service
}

// ownedProject loads a project and enforces ownership. A nil return means
// the response has already been written.
func (h *Handler) ownedProject(w http.ResponseWriter, r *http.Request, projectID int) *repo.Project {
	p, err := h.Projects.GetProject(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return nil
		}
		log.Printf("GetProject error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return nil
	}
	if p.UserID != auth.UserIDFromContext(r.Context()) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return nil
	}
	return &p
}

func pathID(r *http.Request, name string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[name])
	return id
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.ListProjectsByUser(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		log.Printf("ListProjectsByUser error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var p repo.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if p.Name == "" {
		http.Error(w, "Project name is required", http.StatusBadRequest)
		return
	}
	if p.Region == "" {
		p.Region = "new_zealand"
	}
	p.UserID = auth.UserIDFromContext(r.Context())

	id, err := h.Projects.CreateProject(r.Context(), p)
	if err != nil {
		log.Printf("CreateProject error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p := h.ownedProject(w, r, pathID(r, "id"))
	if p == nil {
		return
	}
	beams, err := h.Beams.ListBeamsByProject(r.Context(), p.ID)
	if err != nil {
		log.Printf("ListBeamsByProject error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"project": p, "beams": beams})
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	p := h.ownedProject(w, r, pathID(r, "id"))
	if p == nil {
		return
	}
	if err := h.Projects.DeleteProject(r.Context(), p.ID); err != nil {
		log.Printf("DeleteProject error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateBeam(w http.ResponseWriter, r *http.Request) {
	p := h.ownedProject(w, r, pathID(r, "id"))
	if p == nil {
		return
	}

	var b repo.Beam
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if b.Name == "" || b.MemberType == "" || b.SpanM <= 0 {
		http.Error(w, "Name, member type and a positive span are required", http.StatusBadRequest)
		return
	}
	b.ProjectID = p.ID

	id, err := h.Beams.CreateBeam(r.Context(), b)
	if err != nil {
		log.Printf("CreateBeam error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

// ownedBeam loads a beam and enforces ownership through its project.
func (h *Handler) ownedBeam(w http.ResponseWriter, r *http.Request) *repo.Beam {
	b, err := h.Beams.GetBeam(r.Context(), pathID(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Beam not found", http.StatusNotFound)
			return nil
		}
		log.Printf("GetBeam error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return nil
	}
	if h.ownedProject(w, r, b.ProjectID) == nil {
		return nil
	}
	return &b
}

func (h *Handler) GetBeam(w http.ResponseWriter, r *http.Request) {
	b := h.ownedBeam(w, r)
	if b == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func (h *Handler) UpdateBeam(w http.ResponseWriter, r *http.Request) {
	b := h.ownedBeam(w, r)
	if b == nil {
		return
	}

	var in repo.Beam
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	in.ID = b.ID
	in.ProjectID = b.ProjectID
	if in.Name == "" || in.MemberType == "" || in.SpanM <= 0 {
		http.Error(w, "Name, member type and a positive span are required", http.StatusBadRequest)
		return
	}

	if err := h.Beams.UpdateBeam(r.Context(), in); err != nil {
		log.Printf("UpdateBeam error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteBeam(w http.ResponseWriter, r *http.Request) {
	b := h.ownedBeam(w, r)
	if b == nil {
		return
	}
	if err := h.Beams.DeleteBeam(r.Context(), b.ID); err != nil {
		log.Printf("DeleteBeam error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Calculate runs the engine on a stored beam and stamps the certified
// result into the row. A selected product, if set, supplies the section
// and material from the catalog.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	b := h.ownedBeam(w, r)
	if b == nil {
		return
	}

	in := calcInput(*b)
	if b.SelectedProductCode != "" {
		props, mat, err := h.Catalog.Lookup(r.Context(), b.SelectedProductCode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		in.SectionProps = &props
		in.Material = &mat
	}

	res, err := calc.Evaluate(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.Beams.SaveResults(r.Context(), b.ID, repo.BeamResults{
		DemandMomentKNM:       res.DemandMomentKNM,
		DemandShearKN:         res.DemandShearKN,
		DemandDeflectionMM:    res.DemandDeflectionMM,
		CapacityMomentKNM:     res.CapacityMomentKNM,
		CapacityShearKN:       res.CapacityShearKN,
		DeflectionLimitMM:     res.DeflectionLimitMM,
		UtilizationMoment:     res.UtilizationMoment,
		UtilizationShear:      res.UtilizationShear,
		UtilizationDeflection: res.UtilizationDeflection,
		CalcStatus:            string(res.Status),
		CalcVersion:           res.CalcVersion,
		CalcDate:              res.CalcDate,
	})
	if err != nil {
		log.Printf("SaveResults error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// calcInput maps a stored beam row onto an engine input.
func calcInput(b repo.Beam) calc.Input {
	var points []formula.PointLoad
	if b.PointLoad1KN != 0 {
		points = append(points, formula.PointLoad{MagnitudeKN: b.PointLoad1KN, PositionM: b.PointLoad1Position})
	}
	if b.PointLoad2KN != 0 {
		points = append(points, formula.PointLoad{MagnitudeKN: b.PointLoad2KN, PositionM: b.PointLoad2Position})
	}
	return calc.Input{
		MemberType: b.MemberType,
		SpanM:      b.SpanM,
		SpacingM:   b.SpacingM,
		DeadLoad:   b.DeadLoad,
		LiveLoad:   b.LiveLoad,
		PointLoads: points,
	}
}
