package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/vinyasa-go"
	"github.com/benjamonnguyen/vinyasa-go/composer"
	"github.com/benjamonnguyen/vinyasa-go/sqlite"
)

const (
	RepoURL = "https://github.com/benjamonnguyen/vinyasa-go"
	Version = "0.1.0"
)

var (
	dbPathFlag   string
	debugFlag    bool
	composerFlag string
)

var rootCmd = &cobra.Command{
	Use:     "vinyasa",
	Short:   "Compose and practice timed yoga sequences",
	Long:    "Builds pose sequences that fit a target duration from a local catalog and plays them back with a per-pose countdown.",
	Version: Version,

	// main logs the error once
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPathFlag, "db", "d", "", "Database path (default: $"+vinyasa.DatabasePathKey+" or ~/.vinyasa/vinyasa.db)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&composerFlag, "composer", "", "Composition strategy: anchored or stochastic (default: $"+vinyasa.ComposerKey+")")
}

func main() {
	log.SetReportTimestamp(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

// app holds the wired dependencies of a single command run.
type app struct {
	cfg       vinyasa.Config
	db        *sql.DB
	tx        transactor.Transactor
	poses     vinyasa.PoseRepo
	sequences SequenceManager
	composer  composer.Strategy
}

func openApp() (*app, error) {
	cfg, err := vinyasa.LoadConfig(os.Getenv("VINYASA_ENV") != "dev")
	if err != nil {
		return nil, err
	}
	if dbPathFlag != "" {
		cfg.DatabasePath = dbPathFlag
	}
	if composerFlag != "" {
		cfg.Composer = composerFlag
	}
	if debugFlag {
		cfg.LogLevel = log.DebugLevel
	}
	log.SetLevel(cfg.LogLevel)

	strategy, err := composer.ByName(cfg.Composer, composer.DefaultPicker())
	if err != nil {
		return nil, err
	}

	log.Debug("opening db", "path", cfg.DatabasePath)
	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	tx, dbGetter := txStdLib.NewTransactor(
		db,
		txStdLib.NestedTransactionsSavepoints,
	)
	poseRepo := sqlite.NewPoseRepo(dbGetter, log.Default())
	sequenceRepo := sqlite.NewSequenceRepo(dbGetter, log.Default())

	return &app{
		cfg:       cfg,
		db:        db,
		tx:        tx,
		poses:     poseRepo,
		sequences: NewSequenceManager(poseRepo, sequenceRepo, tx, log.Default()),
		composer:  strategy,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		log.Error("failed to close db", "err", err)
	}
}
