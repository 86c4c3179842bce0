// Package handlers implements the HTTP endpoints of the SMILES pipeline.
package handlers

import (
	"encoding/json"
	"net/http"

	appchem "github.com/turtacn/SmilesKit/internal/application/chem"
	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SmilesKit/pkg/errors"
	chemtypes "github.com/turtacn/SmilesKit/pkg/types/chem"
)

// ChemHandler handles HTTP requests for the parse / canonical / rings
// operations.
type ChemHandler struct {
	svc *appchem.Service
	log logging.Logger
}

// NewChemHandler creates a ChemHandler.
func NewChemHandler(svc *appchem.Service, log logging.Logger) *ChemHandler {
	return &ChemHandler{svc: svc, log: log.Named("http")}
}

// SMILESRequest is the request body shared by all three endpoints.
type SMILESRequest struct {
	SMILES string `json:"smiles"`
}

// MoleculeDTO is the wire form of one parsed molecule.
type MoleculeDTO struct {
	Atoms     int  `json:"atoms"`
	Bonds     int  `json:"bonds"`
	RingCount int  `json:"ring_count"`
	Invalid   bool `json:"invalid,omitempty"`
}

// ParseResponse is the response body of POST /api/v1/smiles/parse.
type ParseResponse struct {
	Molecules   []MoleculeDTO          `json:"molecules"`
	Diagnostics []chemtypes.Diagnostic `json:"diagnostics,omitempty"`
}

// CanonicalResponse is the response body of POST /api/v1/smiles/canonical.
type CanonicalResponse struct {
	Canonical   string                 `json:"canonical"`
	Diagnostics []chemtypes.Diagnostic `json:"diagnostics,omitempty"`
}

// RingDTO is the wire form of one SSSR ring.
type RingDTO struct {
	Atoms []int `json:"atoms"`
	Size  int   `json:"size"`
}

// RingsResponse is the response body of POST /api/v1/smiles/rings.
type RingsResponse struct {
	Molecules   []RingsMoleculeDTO     `json:"molecules"`
	Diagnostics []chemtypes.Diagnostic `json:"diagnostics,omitempty"`
}

// RingsMoleculeDTO groups ring data per molecule.
type RingsMoleculeDTO struct {
	SSSR      []RingDTO                  `json:"sssr"`
	Relations [][]chemtypes.RingRelation `json:"relations"`
}

// decodeSMILESRequest reads and validates the shared request body.
func decodeSMILESRequest(w http.ResponseWriter, r *http.Request) (SMILESRequest, bool) {
	var req SMILESRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.CodeInvalidParam, "invalid request body")
		return req, false
	}
	if req.SMILES == "" {
		writeError(w, http.StatusBadRequest, errors.CodeInvalidParam, "smiles is required")
		return req, false
	}
	return req, true
}

// Parse handles POST /api/v1/smiles/parse
func (h *ChemHandler) Parse(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSMILESRequest(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Parse(r.Context(), req.SMILES)
	if err != nil {
		h.logError(err)
		writeAppError(w, err, nil)
		return
	}

	resp := ParseResponse{Diagnostics: result.Diagnostics}
	for _, m := range result.Molecules {
		resp.Molecules = append(resp.Molecules, MoleculeDTO{
			Atoms:     m.AtomCount(),
			Bonds:     m.BondCount(),
			RingCount: m.CyclomaticNumber(),
			Invalid:   m.Invalid,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Canonical handles POST /api/v1/smiles/canonical
func (h *ChemHandler) Canonical(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSMILESRequest(w, r)
	if !ok {
		return
	}

	canonical, diags, err := h.svc.Canonical(r.Context(), req.SMILES)
	if err != nil {
		h.logError(err)
		writeAppError(w, err, diags)
		return
	}
	writeJSON(w, http.StatusOK, CanonicalResponse{Canonical: canonical, Diagnostics: diags})
}

// Rings handles POST /api/v1/smiles/rings
func (h *ChemHandler) Rings(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSMILESRequest(w, r)
	if !ok {
		return
	}

	infos, diags, err := h.svc.AnalyzeRings(r.Context(), req.SMILES)
	if err != nil {
		h.logError(err)
		writeAppError(w, err, diags)
		return
	}
	relations, _, err := h.svc.RingRelations(r.Context(), req.SMILES)
	if err != nil {
		h.logError(err)
		writeAppError(w, err, diags)
		return
	}

	resp := RingsResponse{Diagnostics: diags}
	for i, info := range infos {
		dto := RingsMoleculeDTO{Relations: relations[i]}
		for _, ring := range info.SSSR {
			dto.SSSR = append(dto.SSSR, RingDTO{Atoms: ringAtoms(ring), Size: len(ring)})
		}
		resp.Molecules = append(resp.Molecules, dto)
	}
	writeJSON(w, http.StatusOK, resp)
}

func ringAtoms(r graph.Ring) []int {
	return append([]int(nil), r...)
}

// logError records server-side failures; client errors stay out of the log.
func (h *ChemHandler) logError(err error) {
	if errors.GetCode(err).HTTPStatus() >= http.StatusInternalServerError {
		h.log.Error("request failed", logging.Err(err))
	}
}
