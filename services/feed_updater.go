package services

import (
	"context"
	"time"

	"megapicks-go/config"
	"megapicks-go/database"
	"megapicks-go/logging"
	"megapicks-go/models"

	"github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
)

// pollTimeout bounds one full poll cycle, feed fetch included
const pollTimeout = 60 * time.Second

// FeedUpdater polls the score/odds feed on a schedule, upserts games,
// captures line-movement snapshots, and fires week regrading when a game
// reaches its final score.
type FeedUpdater struct {
	feed         *ESPNService
	gameRepo     *database.MongoGameRepository
	snapshotRepo *database.MongoLineSnapshotRepository
	grading      *GradingService
	cfg          config.FeedConfig
	season       int
	scheduler    gocron.Scheduler
	logger       *logging.Logger
}

// NewFeedUpdater creates a new feed updater
func NewFeedUpdater(
	feed *ESPNService,
	gameRepo *database.MongoGameRepository,
	snapshotRepo *database.MongoLineSnapshotRepository,
	grading *GradingService,
	cfg config.FeedConfig,
	season int,
) *FeedUpdater {
	return &FeedUpdater{
		feed:         feed,
		gameRepo:     gameRepo,
		snapshotRepo: snapshotRepo,
		grading:      grading,
		cfg:          cfg,
		season:       season,
		logger:       logging.WithPrefix("FeedUpdater"),
	}
}

// Start schedules the poll loop and runs one poll immediately so the games
// collection is populated before the first interval elapses.
func (u *FeedUpdater) Start() error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrap(err, "creating feed scheduler")
	}

	interval := time.Duration(u.cfg.PollSeconds) * time.Second
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(u.poll),
	)
	if err != nil {
		return errors.Wrap(err, "scheduling feed poll")
	}

	u.scheduler = scheduler
	scheduler.Start()
	u.logger.Infof("Feed polling started: every %s for season %d", interval, u.season)

	go u.poll()
	return nil
}

// Stop shuts the poll scheduler down
func (u *FeedUpdater) Stop() {
	if u.scheduler == nil {
		return
	}
	if err := u.scheduler.Shutdown(); err != nil {
		u.logger.Errorf("Feed scheduler shutdown: %v", err)
	}
	u.logger.Info("Feed polling stopped")
}

func (u *FeedUpdater) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	snapshots, err := u.feed.GetScoreboardForYear(ctx, u.season)
	if err != nil {
		u.logger.Errorf("Feed poll failed: %v", err)
		return
	}

	finalizedWeeks := make(map[int]bool)
	updated := 0
	for _, snapshot := range snapshots {
		week, finalized, err := u.applySnapshot(ctx, &snapshot)
		if err != nil {
			u.logger.Errorf("Could not apply snapshot for game %s: %v", snapshot.ID, err)
			continue
		}
		updated++
		if finalized {
			finalizedWeeks[week] = true
		}
	}

	for week := range finalizedWeeks {
		if err := u.grading.ProcessWeek(ctx, u.season, week); err != nil {
			u.logger.Errorf("Regrading season %d week %d failed: %v", u.season, week, err)
		}
	}

	u.logger.Debugf("Feed poll applied %d/%d games, %d week(s) regraded",
		updated, len(snapshots), len(finalizedWeeks))
}

// applySnapshot upserts one game and reports whether this poll saw it reach
// its final score for the first time.
func (u *FeedUpdater) applySnapshot(ctx context.Context, snapshot *models.GameSnapshot) (int, bool, error) {
	existing, err := u.gameRepo.FindByID(ctx, snapshot.ID)
	if err != nil {
		return 0, false, err
	}

	game := snapshot.ToGame()
	if err := u.gameRepo.Upsert(ctx, game); err != nil {
		return 0, false, err
	}

	u.captureStageSnapshots(ctx, existing, game)

	finalized := game.IsFinal() && (existing == nil || !existing.IsFinal())
	return game.Week, finalized, nil
}

// captureStageSnapshots appends the once-per-game open and lock snapshots:
// open on the first sighting of a line, lock when the game leaves the
// scheduled state.
func (u *FeedUpdater) captureStageSnapshots(ctx context.Context, existing, game *models.Game) {
	if !game.HasLine() {
		return
	}

	u.captureStage(ctx, game, models.SnapshotStageOpen)

	kickedOff := game.Status != models.GameStatusScheduled &&
		(existing == nil || existing.Status == models.GameStatusScheduled)
	if kickedOff {
		u.captureStage(ctx, game, models.SnapshotStageLock)
	}
}

func (u *FeedUpdater) captureStage(ctx context.Context, game *models.Game, stage models.SnapshotStage) {
	has, err := u.snapshotRepo.HasStage(ctx, game.ID, stage)
	if err != nil {
		u.logger.Warnf("Could not check %s snapshot for game %s: %v", stage, game.ID, err)
		return
	}
	if has {
		return
	}
	if err := u.snapshotRepo.Append(ctx, models.NewLineSnapshot(game, stage)); err != nil {
		u.logger.Warnf("Could not append %s snapshot for game %s: %v", stage, game.ID, err)
	}
}
