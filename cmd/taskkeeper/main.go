package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskkeeper/internal/config"
	"github.com/sandeepkv93/taskkeeper/internal/logging"
	"github.com/sandeepkv93/taskkeeper/internal/notify"
	"github.com/sandeepkv93/taskkeeper/internal/session"
	"github.com/sandeepkv93/taskkeeper/internal/storage"
	"github.com/sandeepkv93/taskkeeper/internal/update"
	"github.com/sandeepkv93/taskkeeper/internal/workspace"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskkeeper failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config.toml (default ~/.config/taskkeeper/config.toml)")
	owner := flag.String("owner", "", "sign in as this owner id")
	seed := flag.Bool("seed", false, "create sample tasks and notes when the workspace is empty")
	writeConfig := flag.Bool("write-config", false, "write the effective config to the config path and exit")
	flag.Parse()

	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	if *owner != "" {
		cfg.Session.Owner = *owner
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *writeConfig {
		if err := cfg.SaveTo(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	repo, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	sess, err := session.New(cfg.Session.Owner, cfg.Session.DisplayName)
	if err != nil {
		return err
	}

	dispatcher := notify.NewDispatcher(cfg.Notifications.Buffer, cfg.Notifications.ToastTTL())
	dispatcher.Start()
	defer dispatcher.Stop()

	sinks := notify.Fanout{dispatcher, notify.LogSink{Logger: logger.Named("toast")}}
	if cfg.Notifications.Desktop {
		sinks = append(sinks, notify.NewDesktopSink(logger.Named("desktop")))
	}

	ws, err := workspace.New(workspace.Options{
		Repo:    repo,
		Session: sess,
		Sink:    sinks,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer ws.Close()

	if *seed {
		n, err := ws.Seed(context.Background())
		if err != nil {
			return fmt.Errorf("seeding workspace: %w", err)
		}
		logger.Info("seeded workspace", zap.Int("created", n))
	}

	program := tea.NewProgram(update.NewModel(ws, dispatcher.C()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	if dropped := dispatcher.Dropped(); dropped > 0 {
		logger.Warn("toasts dropped", zap.Uint64("count", dropped))
	}
	return nil
}
