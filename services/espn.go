package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"megapicks-go/logging"
	"megapicks-go/models"

	"github.com/cockroachdb/errors"
)

// ESPNService fetches NFL scores and betting lines from ESPN's public
// scoreboard API and converts them into feed snapshots.
type ESPNService struct {
	client  *http.Client
	baseURL string
	logger  *logging.Logger
}

// NewESPNService creates a new ESPN service
func NewESPNService() *ESPNService {
	return &ESPNService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard",
		logger:  logging.WithPrefix("ESPN"),
	}
}

// ESPN API response structures
type espnResponse struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Week         espnWeek          `json:"week"`
	Season       espnSeason        `json:"season"`
	Status       espnStatus        `json:"status"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnSeason struct {
	Year int `json:"year"`
	Type int `json:"type"`
}

type espnWeek struct {
	Number int `json:"number"`
}

type espnStatus struct {
	Type         espnStatusType `json:"type"`
	Period       int            `json:"period"`
	DisplayClock string         `json:"displayClock,omitempty"`
}

type espnStatusType struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}

type espnCompetition struct {
	Competitors []espnCompetitor `json:"competitors"`
	Odds        []espnOdds       `json:"odds,omitempty"`
	Situation   *espnSituation   `json:"situation,omitempty"`
}

type espnCompetitor struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"`
	Team     espnTeam `json:"team"`
}

type espnTeam struct {
	Abbreviation string `json:"abbreviation"`
}

type espnOdds struct {
	Details      string       `json:"details"` // e.g. "KC -3.5"
	OverUnder    float64      `json:"overUnder"`
	Spread       float64      `json:"spread"`
	HomeTeamOdds espnTeamOdds `json:"homeTeamOdds"`
	AwayTeamOdds espnTeamOdds `json:"awayTeamOdds"`
}

type espnTeamOdds struct {
	MoneyLine float64 `json:"moneyLine"`
}

type espnSituation struct {
	Down                  int    `json:"down,omitempty"`
	YardLine              int    `json:"yardLine,omitempty"`
	Distance              int    `json:"distance,omitempty"`
	IsRedZone             bool   `json:"isRedZone"`
	ShortDownDistanceText string `json:"shortDownDistanceText,omitempty"`
	Possession            string `json:"possession,omitempty"`
}

// GetScoreboard fetches the current season's scoreboard
func (e *ESPNService) GetScoreboard(ctx context.Context) ([]models.GameSnapshot, error) {
	return e.GetScoreboardForYear(ctx, time.Now().Year())
}

// GetScoreboardForYear fetches the regular-season scoreboard for a season.
// The date range runs July through the following January to capture Week 18.
func (e *ESPNService) GetScoreboardForYear(ctx context.Context, year int) ([]models.GameSnapshot, error) {
	url := fmt.Sprintf("%s?dates=%d0701-%d0131&limit=1000", e.baseURL, year, year+1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building scoreboard request")
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching scoreboard")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("scoreboard API returned status %d", resp.StatusCode)
	}

	var scoreboard espnResponse
	if err := json.NewDecoder(resp.Body).Decode(&scoreboard); err != nil {
		return nil, errors.Wrap(err, "decoding scoreboard response")
	}

	snapshots := e.convertEvents(scoreboard.Events)
	e.logger.Debugf("Fetched %d events, converted %d regular-season games", len(scoreboard.Events), len(snapshots))
	return snapshots, nil
}

func (e *ESPNService) convertEvents(events []espnEvent) []models.GameSnapshot {
	snapshots := make([]models.GameSnapshot, 0, len(events))
	for _, event := range events {
		// Regular season only (type 2)
		if event.Season.Type != 2 {
			continue
		}
		if len(event.Competitions) == 0 || len(event.Competitions[0].Competitors) < 2 {
			continue
		}
		snapshots = append(snapshots, e.convertEvent(event))
	}
	return snapshots
}

func (e *ESPNService) convertEvent(event espnEvent) models.GameSnapshot {
	competition := event.Competitions[0]

	kickoff, err := time.Parse("2006-01-02T15:04Z", event.Date)
	if err != nil {
		kickoff, err = time.Parse(time.RFC3339, event.Date)
		if err != nil {
			e.logger.Warnf("Could not parse date %q for game %s: %v", event.Date, event.ID, err)
		}
	}

	snapshot := models.GameSnapshot{
		ID:          event.ID,
		Season:      event.Season.Year,
		Week:        event.Week.Number,
		KickoffTime: kickoff,
		Status:      string(convertGameStatus(event.Status)),
		Quarter:     quarterLabel(event.Status),
	}

	for _, competitor := range competition.Competitors {
		score, _ := strconv.Atoi(competitor.Score)
		if competitor.HomeAway == "home" {
			snapshot.HomeTeam = competitor.Team.Abbreviation
			snapshot.HomeScore = score
		} else {
			snapshot.AwayTeam = competitor.Team.Abbreviation
			snapshot.AwayScore = score
		}
	}

	if len(competition.Odds) > 0 {
		odds := competition.Odds[0]
		snapshot.SpreadCurrent = homeRelativeSpread(odds, snapshot.HomeTeam)
		snapshot.TotalCurrent = odds.OverUnder
		snapshot.HomeMoneyline = odds.HomeTeamOdds.MoneyLine
		snapshot.AwayMoneyline = odds.AwayTeamOdds.MoneyLine
	}

	if situation := competition.Situation; situation != nil {
		snapshot.Possession = situation.Possession
		snapshot.YardLine = situation.YardLine
		snapshot.Down = situation.Down
		snapshot.Distance = situation.Distance
		snapshot.IsRedzone = situation.IsRedZone
		snapshot.TimeRemaining = event.Status.DisplayClock
	}

	return snapshot
}

// homeRelativeSpread normalizes ESPN's line onto the home team: negative
// means the home team is favored. The numeric spread field is already
// home-relative; the details string ("KC -3.5") names the favorite and is
// the fallback when the numeric field is absent.
func homeRelativeSpread(odds espnOdds, homeTeam string) float64 {
	if odds.Spread != 0 {
		return odds.Spread
	}
	favorite, line, ok := parseSpreadDetails(odds.Details)
	if !ok {
		return 0
	}
	if favorite == homeTeam {
		return line
	}
	return -line
}

// parseSpreadDetails parses a details string like "KC -3.5" into the
// favorite's abbreviation and line. "EVEN" and unparseable strings report
// false.
func parseSpreadDetails(details string) (string, float64, bool) {
	fields := strings.Fields(strings.TrimSpace(details))
	if len(fields) != 2 {
		return "", 0, false
	}
	line, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || line >= 0 {
		return "", 0, false
	}
	return fields[0], line, true
}

func convertGameStatus(status espnStatus) models.GameStatus {
	switch strings.ToLower(status.Type.State) {
	case "in":
		return models.GameStatusInProgress
	case "post":
		return models.GameStatusFinal
	default:
		return models.GameStatusScheduled
	}
}

func quarterLabel(status espnStatus) string {
	if status.Period == 0 {
		return ""
	}
	if status.Period > 4 {
		return "OT"
	}
	return fmt.Sprintf("Q%d", status.Period)
}

// HealthCheck verifies the scoreboard API is reachable
func (e *ESPNService) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, e.baseURL, nil)
	if err != nil {
		return false
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
