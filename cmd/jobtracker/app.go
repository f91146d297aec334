package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/jobtracker/internal/config"
	"github.com/rpggio/jobtracker/internal/csvio"
	"github.com/rpggio/jobtracker/internal/domain/activity"
	"github.com/rpggio/jobtracker/internal/domain/company"
	"github.com/rpggio/jobtracker/internal/importer"
	"github.com/rpggio/jobtracker/internal/mcp"
	"github.com/rpggio/jobtracker/internal/sqlite"
	"github.com/rpggio/jobtracker/internal/store"
)

// app holds the services shared by every command.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sqlite.DB
	logFile   io.Closer
	companies *company.Service
	imports   *importer.Service
	activity  *activity.Service
}

// newApp opens the database and wires the services. Logs go to logOut unless
// a log file is configured.
func newApp(cfg config.Config, logOut io.Writer) (*app, error) {
	a := &app{cfg: cfg}

	logWriter := logOut
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.logFile = file
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.db = db
	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	st := store.New(sqlite.NewBlobRepository(db),
		store.WithKey(cfg.Storage.Key),
		store.WithLogger(a.logger),
	)
	a.activity = activity.NewService(sqlite.NewActivityRepository(db), a.logger)
	a.companies = company.NewService(st, a.activity, a.logger)
	a.imports = importer.NewService(st, csvio.NewCodec(), a.activity, a.logger)
	return a, nil
}

func (a *app) services() mcp.Services {
	return mcp.Services{
		Companies: a.companies,
		Imports:   a.imports,
		Activity:  a.activity,
	}
}

// Close releases the database and log file.
func (a *app) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}

// loadApp reads configuration and builds the app for a command.
func loadApp(logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return newApp(cfg, logOut)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
