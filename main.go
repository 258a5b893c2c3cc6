package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"megapicks-go/config"
	"megapicks-go/database"
	"megapicks-go/handlers"
	"megapicks-go/logging"
	"megapicks-go/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Loading configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Prefix:      cfg.Logging.Prefix,
		Development: cfg.IsDevelopment(),
	})
	cfg.LogConfiguration()

	db, err := database.NewMongoConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
	})
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	// Repositories
	gameRepo := database.NewMongoGameRepository(db)
	submissionRepo := database.NewMongoSubmissionRepository(db)
	contestantRepo := database.NewMongoContestantRepository(db)
	standingRepo := database.NewMongoStandingRepository(db)
	snapshotRepo := database.NewMongoLineSnapshotRepository(db)
	potRepo := database.NewMongoPotRepository(db)
	payoutRepo := database.NewMongoPayoutRepository(db)

	// Services
	rules := cfg.HouseRules()
	validationService := services.NewValidationService(rules)
	submissionService := services.NewSubmissionService(
		validationService, submissionRepo, gameRepo, contestantRepo, snapshotRepo, rules)
	standingsService := services.NewStandingsService(submissionRepo, contestantRepo, standingRepo)
	gradingService := services.NewGradingService(gameRepo, submissionRepo, standingsService, rules)
	payoutService := services.NewPayoutService(submissionRepo, standingRepo, potRepo, payoutRepo, rules)

	// Feed polling
	espnService := services.NewESPNService()
	feedUpdater := services.NewFeedUpdater(
		espnService, gameRepo, snapshotRepo, gradingService, cfg.Feed, cfg.App.CurrentSeason)
	if cfg.Feed.Enabled {
		if err := feedUpdater.Start(); err != nil {
			logging.Fatalf("Starting feed updater: %v", err)
		}
		defer feedUpdater.Stop()
	} else {
		logging.Warn("Feed polling disabled; games must be loaded manually")
	}

	// Handlers
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	contestantHandler := handlers.NewContestantHandler(contestantRepo)
	contestHandler := handlers.NewContestHandler(
		gameRepo, submissionRepo, potRepo, payoutRepo, standingsService, gradingService, payoutService)

	// Routes
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.TestConnection(); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/contestants", contestantHandler.Upsert).Methods("PUT")
	api.HandleFunc("/contestants", contestantHandler.List).Methods("GET")
	api.HandleFunc("/submissions", submissionHandler.Submit).Methods("POST")
	api.HandleFunc("/submissions/{season}/{week}", contestHandler.GetWeekSubmissions).Methods("GET")
	api.HandleFunc("/games/{season}/{week}", contestHandler.GetGames).Methods("GET")
	api.HandleFunc("/standings/{season}", contestHandler.GetStandings).Methods("GET")
	api.HandleFunc("/pots/{season}", contestHandler.GetPots).Methods("GET")
	api.HandleFunc("/payouts/{season}", contestHandler.GetPayouts).Methods("GET")
	api.HandleFunc("/grade/{season}/{week}", contestHandler.GradeWeek).Methods("POST")
	api.HandleFunc("/settle/{season}/{week}", contestHandler.SettleWeek).Methods("POST")
	api.HandleFunc("/settle/{season}", contestHandler.SettleSeason).Methods("POST")

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logging.Infof("Server starting on %s", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logging.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Errorf("Server shutdown: %v", err)
	}
}
