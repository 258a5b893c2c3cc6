package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"megapicks-go/logging"
	"megapicks-go/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// submissionRequest is the wire shape of a weekly entry
type submissionRequest struct {
	ContestantID string                 `json:"contestant_id" validate:"required"`
	Season       int                    `json:"season" validate:"required,min=2020"`
	Week         int                    `json:"week" validate:"required,min=1,max=18"`
	Picks        []services.PickChoice  `json:"picks" validate:"required,min=1,dive"`
	ParlayLegs   []services.LegChoice   `json:"parlay_legs" validate:"required,min=1,dive"`
}

// SubmissionHandler handles weekly entry submission and retrieval
type SubmissionHandler struct {
	submissions *services.SubmissionService
	validate    *validator.Validate
	logger      *logging.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissions *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		validate:    validator.New(),
		logger:      logging.WithPrefix("SubmissionHandler"),
	}
}

// Submit handles POST /api/submissions
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	submission, err := h.submissions.Submit(r.Context(), services.SubmissionRequest{
		ContestantID: req.ContestantID,
		Season:       req.Season,
		Week:         req.Week,
		Picks:        req.Picks,
		ParlayLegs:   req.ParlayLegs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submission)
}

// seasonWeekVars parses the {season} and {week} route variables
func seasonWeekVars(r *http.Request) (int, int, bool) {
	vars := mux.Vars(r)
	season, err := strconv.Atoi(vars["season"])
	if err != nil {
		return 0, 0, false
	}
	week, err := strconv.Atoi(vars["week"])
	if err != nil {
		return 0, 0, false
	}
	return season, week, true
}
