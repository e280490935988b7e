package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	appdiscovery "playbud-discovery/internal/app/discovery"
	"playbud-discovery/internal/booking"
	"playbud-discovery/internal/config"
	"playbud-discovery/internal/geomap"
	"playbud-discovery/internal/providers"
	"playbud-discovery/internal/providers/fixture"
	"playbud-discovery/internal/providers/playbud"
	"playbud-discovery/internal/session"
	"playbud-discovery/internal/store"
	"playbud-discovery/internal/tui"
)

const appName = "findgame"

var version = "dev"

func printUsage(out *os.File) {
	fmt.Fprintf(out, "Usage: %s [--version]\n", appName)
}

func handleArgs(args []string) bool {
	if len(args) == 0 {
		return true
	}
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			printUsage(os.Stdout)
			return false
		case "-v", "--version", "version":
			fmt.Printf("%s %s\n", appName, version)
			return false
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", arg)
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}
	return false
}

// newLogger keeps log lines off the terminal the TUI owns. Set FINDGAME_LOG
// to a file path to capture them.
func newLogger() *slog.Logger {
	out := io.Writer(io.Discard)
	if path := os.Getenv("FINDGAME_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}
	return slog.New(slog.NewTextHandler(out, nil))
}

func buildProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	var base providers.DataProvider
	switch strings.ToLower(cfg.Provider) {
	case "fixture":
		base = fixture.New()
	default:
		base = playbud.NewClient(playbud.Config{
			BaseURL: cfg.Playbud.BaseURL,
			APIKey:  cfg.Playbud.APIKey,
		})
	}
	return providers.NewRetryingProvider(base, logger, cfg.Playbud.MaxAttempts, cfg.Playbud.RetryBackoff)
}

func main() {
	if !handleArgs(os.Args[1:]) {
		return
	}

	// Optional .env; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := newLogger()

	provider := buildProvider(cfg, logger)
	st := store.NewMemoryStore()
	service := appdiscovery.NewService(st, time.Local)

	sessions := session.NewManager(playbud.NewClient(playbud.Config{
		BaseURL: cfg.Playbud.BaseURL,
		APIKey:  cfg.Playbud.APIKey,
	}), logger)
	if token := os.Getenv("PLAYBUD_ACCESS_TOKEN"); token != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := sessions.Init(ctx, token, os.Getenv("PLAYBUD_REFRESH_TOKEN")); err != nil {
			fmt.Fprintf(os.Stderr, "sign-in failed, continuing as guest: %v\n", err)
		}
		cancel()
	}
	workflow := booking.NewWorkflow(sessions, provider, provider, logger, nil)

	app := tui.New(tui.Config{
		Provider:  provider,
		Store:     st,
		Service:   service,
		Workflow:  workflow,
		Map: geomap.Config{
			AccessToken:   cfg.Map.AccessToken,
			DefaultCenter: &geomap.LngLat{Lng: cfg.Map.DefaultCenterLng, Lat: cfg.Map.DefaultCenterLat},
		},
		ListLimit: cfg.ListLimit,
	})

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
