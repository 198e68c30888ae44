package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smartspend/backend/internal/cli"
	"github.com/smartspend/backend/internal/config"
	"github.com/smartspend/backend/pkg/auth"
	"github.com/smartspend/backend/pkg/insight"
	"github.com/smartspend/backend/pkg/ledger"
	"github.com/smartspend/backend/pkg/storage"
	"google.golang.org/genai"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create data directory
	err = os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	db, err := storage.OpenSQLite(filepath.Join(cfg.DataDir, "smartspend.db"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// A failed first save still leaves a usable ledger, the
	// healthz endpoint reports it until a save succeeds
	store, err := ledger.Open(ctx, db, ledger.WithResetOnCorrupt(cfg.ResetOnCorrupt))
	if errors.Is(err, ledger.ErrPersistence) {
		log.Error().Err(err).Msg("ledger could not be saved")
	} else if err != nil {
		log.Fatal().Msg(err.Error())
	}

	gate, err := auth.New(db, cfg.JWTSecret)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	var models insight.Models
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		models = client.Models
	} else {
		log.Info().Msg("GEMINI_API_KEY is not set, insights are disabled")
	}

	app := &cli.App{
		Config:   cfg,
		Ledger:   store,
		Auth:     gate,
		Insights: insight.New(models, cfg.GeminiModel, cfg.InsightTimeout),
		Health:   db,
	}

	commander := subcommands.NewCommander(flag.CommandLine, filepath.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, app)

	flag.Parse()

	// Without a subcommand, serve the API
	if flag.NArg() == 0 {
		if err := flag.CommandLine.Parse([]string{"serve"}); err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	status := commander.Execute(ctx)
	stop()
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("closing the database")
	}
	os.Exit(int(status))
}
