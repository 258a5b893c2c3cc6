package handlers

import (
	"net/http"
	"strconv"

	"megapicks-go/database"
	"megapicks-go/logging"
	"megapicks-go/services"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
)

// ContestHandler serves the read side of the contest (games, standings,
// pots, ledger) and the manual grading and settlement triggers.
type ContestHandler struct {
	gameRepo       *database.MongoGameRepository
	submissionRepo *database.MongoSubmissionRepository
	potRepo        *database.MongoPotRepository
	payoutRepo     *database.MongoPayoutRepository
	standings      *services.StandingsService
	grading        *services.GradingService
	payouts        *services.PayoutService
	logger         *logging.Logger
}

// NewContestHandler creates a new contest handler
func NewContestHandler(
	gameRepo *database.MongoGameRepository,
	submissionRepo *database.MongoSubmissionRepository,
	potRepo *database.MongoPotRepository,
	payoutRepo *database.MongoPayoutRepository,
	standings *services.StandingsService,
	grading *services.GradingService,
	payouts *services.PayoutService,
) *ContestHandler {
	return &ContestHandler{
		gameRepo:       gameRepo,
		submissionRepo: submissionRepo,
		potRepo:        potRepo,
		payoutRepo:     payoutRepo,
		standings:      standings,
		grading:        grading,
		payouts:        payouts,
		logger:         logging.WithPrefix("ContestHandler"),
	}
}

// GetGames handles GET /api/games/{season}/{week}
func (h *ContestHandler) GetGames(w http.ResponseWriter, r *http.Request) {
	season, week, ok := seasonWeekVars(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "season and week must be integers"})
		return
	}
	games, err := h.gameRepo.FindByWeek(r.Context(), season, week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// GetWeekSubmissions handles GET /api/submissions/{season}/{week}
func (h *ContestHandler) GetWeekSubmissions(w http.ResponseWriter, r *http.Request) {
	season, week, ok := seasonWeekVars(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "season and week must be integers"})
		return
	}
	submissions, err := h.submissionRepo.FindAllByWeek(r.Context(), season, week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

// GetStandings handles GET /api/standings/{season}
func (h *ContestHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonVar(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "season must be an integer"})
		return
	}
	standings, err := h.standings.GetStandings(r.Context(), season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

// GetPots handles GET /api/pots/{season}
func (h *ContestHandler) GetPots(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonVar(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "season must be an integer"})
		return
	}
	pots, err := h.potRepo.FindBySeason(r.Context(), season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pots)
}

// GetPayouts handles GET /api/payouts/{season}
func (h *ContestHandler) GetPayouts(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonVar(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "season must be an integer"})
		return
	}
	payouts, err := h.payoutRepo.FindBySeason(r.Context(), season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payouts)
}

// GradeWeek handles POST /api/grade/{season}/{week}, a manual regrade trigger
func (h *ContestHandler) GradeWeek(w http.ResponseWriter, r *http.Request) {
	season, week, ok := seasonWeekVars(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "season and week must be integers"})
		return
	}
	if err := h.grading.ProcessWeek(r.Context(), season, week); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "graded"})
}

// SettleWeek handles POST /api/settle/{season}/{week}
func (h *ContestHandler) SettleWeek(w http.ResponseWriter, r *http.Request) {
	season, week, ok := seasonWeekVars(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "season and week must be integers"})
		return
	}
	payouts, err := h.payouts.SettleWeek(r.Context(), season, week)
	if err != nil {
		if errors.Is(err, services.ErrWeekNotGraded) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payouts)
}

// SettleSeason handles POST /api/settle/{season}
func (h *ContestHandler) SettleSeason(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonVar(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "season must be an integer"})
		return
	}
	payouts, err := h.payouts.SettleSeason(r.Context(), season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payouts)
}

func seasonVar(r *http.Request) (int, bool) {
	season, err := strconv.Atoi(mux.Vars(r)["season"])
	return season, err == nil
}
