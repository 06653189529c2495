package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assessment-service/internal/app"
	"assessment-service/internal/config"
	"assessment-service/internal/domain"
	"assessment-service/internal/infra/memory"
	pgstore "assessment-service/internal/infra/postgres"
	redisstore "assessment-service/internal/infra/redis"
	transport "assessment-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the assessment server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, domain.DurationSeconds*time.Second+time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.BankLoader = memory.NewStaticBankLoader(sampleBanks())
	if pool != nil {
		loader = pgstore.NewBankLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	var bank app.QuestionBank
	if redisClient != nil {
		bank = redisstore.NewQuestionBank(redisClient, loader, bankTTL)
	} else {
		bank = memory.NewQuestionBank(loader, bankTTL)
	}

	var attempts app.AttemptRepository
	if redisClient != nil {
		attempts = redisstore.NewAttemptStore(redisClient, redisTTL)
	} else {
		attempts = memory.NewAttemptStore()
	}

	var sections app.SectionRepository
	var results app.ResultRepository
	if pool != nil {
		sections = pgstore.NewSectionStore(pool)
		results = pgstore.NewResultStore(pool)
	} else {
		sections = memory.NewSectionStore(sampleSections()...)
		results = memory.NewResultStore()
	}

	service := app.NewAttemptService(sections, bank, attempts, results)
	wsHandler := transport.NewWSHandler(service)
	restHandler := transport.NewRESTHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/results", restHandler.ServeResults)
	mux.HandleFunc("/sections", restHandler.ServeSections)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting assessment service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func sampleSections() []domain.Section {
	return []domain.Section{
		{ID: "html", Name: "HTML", Description: "HyperText Markup Language Assessment", Active: true},
		{ID: "css", Name: "CSS", Description: "Cascading Style Sheets Assessment", Active: true},
		{ID: "javascript", Name: "JavaScript", Description: "JavaScript Programming Assessment", Active: true},
	}
}

// sampleBanks provides minimal question data; swap the loader with the
// Postgres-backed one in production.
func sampleBanks() map[string][]domain.Question {
	return map[string][]domain.Question{
		"html": {
			{
				ID:            "html-q1",
				SectionID:     "html",
				Text:          "Which tag defines a hyperlink?",
				Options:       []string{"<a>", "<link>", "<href>", "<url>"},
				CorrectOption: 0,
			},
			{
				ID:            "html-q2",
				SectionID:     "html",
				Text:          "Which attribute holds the link target?",
				Options:       []string{"src", "href", "to", "target"},
				CorrectOption: 1,
			},
		},
		"css": {
			{
				ID:            "css-q1",
				SectionID:     "css",
				Text:          "Which property sets the text color?",
				Options:       []string{"font-color", "text-style", "color", "foreground"},
				CorrectOption: 2,
			},
		},
		"javascript": {
			{
				ID:            "javascript-q1",
				SectionID:     "javascript",
				Text:          "Which keyword declares a block-scoped variable?",
				Options:       []string{"var", "let", "def", "dim"},
				CorrectOption: 1,
			},
		},
	}
}
