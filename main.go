package main

import (
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/figochat/desktop/autolaunch"
	"github.com/figochat/desktop/config"
	"github.com/figochat/desktop/i18n"
	"github.com/figochat/desktop/internal/app"
	"github.com/figochat/desktop/updater"
)

const appName = "FigoChat"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func isDev() bool {
	return os.Getenv("FIGOCHAT_ENV") == "development"
}

func setupLogger(dev bool) *slog.Logger {
	level := slog.LevelInfo
	if dev {
		level = slog.LevelDebug
	}
	switch strings.ToLower(os.Getenv("FIGOCHAT_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// checkServerURL resets a stored server address the window cannot load.
func checkServerURL(store *config.Store) {
	raw := store.String(config.KeyServerURL)
	if u, err := url.Parse(raw); err == nil && u.IsAbs() && u.Host != "" {
		return
	}
	slog.Warn("invalid server url, using default", "url", raw)
	if err := store.Set(config.KeyServerURL, config.DefaultServerURL); err != nil {
		slog.Error("reset server url", "error", err)
	}
}

func feedURL() string {
	if u := os.Getenv("FIGOCHAT_UPDATE_URL"); u != "" {
		return u
	}
	return updater.DefaultFeedURL
}

func main() {
	dev := isDev()
	logger := setupLogger(dev)
	slog.Info("starting app", "version", version, "commit", commit, "date", date)

	store, err := config.OpenDefault()
	if err != nil {
		slog.Error("open config", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("close config", "error", err)
		}
	}()
	checkServerURL(store)

	opts := app.Options{
		Name:        appName,
		Version:     version,
		Dev:         dev,
		StartHidden: autolaunch.StartedHidden(os.Args[1:]),
		FeedURL:     feedURL(),
		Store:       store,
		Printer:     i18n.Default(),
		Logger:      logger,
	}
	if launcher, err := autolaunch.New("figochat", appName); err != nil {
		slog.Warn("login item unavailable", "error", err)
	} else {
		opts.LoginItem = launcher
	}

	a, err := app.New(opts)
	if err != nil {
		slog.Error("create app", "error", err)
		return
	}

	if err := a.Run(); err != nil {
		slog.Error("run app", "error", err)
	}

	if a.RelaunchRequested() {
		if err := app.Relaunch(); err != nil {
			slog.Error("relaunch", "error", err)
		}
	}
}
