package handlers

import (
	"encoding/json"
	"net/http"

	"megapicks-go/database"
	"megapicks-go/models"

	"github.com/go-playground/validator/v10"
)

// contestantRequest is the wire shape of a league member
type contestantRequest struct {
	ID     string `json:"id" validate:"required"`
	Handle string `json:"handle" validate:"required"`
}

// ContestantHandler manages the league roster
type ContestantHandler struct {
	contestantRepo *database.MongoContestantRepository
	validate       *validator.Validate
}

// NewContestantHandler creates a new contestant handler
func NewContestantHandler(contestantRepo *database.MongoContestantRepository) *ContestantHandler {
	return &ContestantHandler{
		contestantRepo: contestantRepo,
		validate:       validator.New(),
	}
}

// Upsert handles PUT /api/contestants
func (h *ContestantHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req contestantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	contestant := &models.Contestant{ID: req.ID, Handle: req.Handle}
	if err := h.contestantRepo.Upsert(r.Context(), contestant); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contestant)
}

// List handles GET /api/contestants
func (h *ContestantHandler) List(w http.ResponseWriter, r *http.Request) {
	contestants, err := h.contestantRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contestants)
}
