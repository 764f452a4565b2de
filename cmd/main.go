package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/linkedin-connect/internal/auth"
	"github.com/yourusername/linkedin-connect/internal/config"
	"github.com/yourusername/linkedin-connect/internal/driver"
	"github.com/yourusername/linkedin-connect/internal/logger"
	"github.com/yourusername/linkedin-connect/internal/selectors"
	"github.com/yourusername/linkedin-connect/internal/session"
	st "github.com/yourusername/linkedin-connect/internal/stealth"
	"github.com/yourusername/linkedin-connect/internal/storage"
)

const (
	AppVersion = "1.0.0"

	// stop reason stored when the browser never came up
	launchFailed = "launch_failed"
)

func main() {
	// Display warning banner
	displayWarningBanner()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Init(logger.Options{
		Level:    cfg.Logging.Level,
		ToFile:   cfg.Logging.ToFile,
		FilePath: cfg.Logging.FilePath,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("LinkedIn Connect started", "version", AppVersion)
	logger.Warn("This tool is for EDUCATIONAL purposes only and violates LinkedIn's Terms of Service")

	// Initialize database
	logger.Info("Initializing database...", "path", cfg.Database.Path)
	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer store.Close()

	// Print database statistics
	stats, err := store.GetStats()
	if err == nil {
		logger.Info("Database statistics",
			"total_runs", stats["total_runs"],
			"total_sent", stats["total_sent"],
			"total_skipped", stats["total_skipped"],
			"total_failed", stats["total_failed"],
			"sent_today", stats["sent_today"],
		)
	}

	table, err := selectors.Load(cfg.SelectorsFile)
	if err != nil {
		logger.Fatal("Failed to load selectors", "error", err)
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Every outcome of this run is recorded against runID
	runID, err := store.StartRun(cfg.Search.Keywords, time.Now())
	if err != nil {
		store.Close()
		logger.Fatal("Failed to start run history", "error", err)
	}

	actionMin, actionMax := cfg.ActionDelay()
	noteMin, noteMax := cfg.NoteDelay()
	pageMin, pageMax := cfg.PageDelay()

	ctrl, err := session.New(newLauncher(cfg), session.Options{
		Credentials: session.Credentials{
			Login:    cfg.LinkedIn.Email,
			Password: cfg.LinkedIn.Password,
		},
		Keywords:         cfg.Search.Keywords,
		ProfileRoot:      cfg.Browser.ProfileRoot,
		Selectors:        table,
		Placeholder:      cfg.Connection.Placeholder,
		WaitTimeout:      cfg.WaitTimeout(),
		TwoFactorTimeout: cfg.TwoFactorTimeout(),
		Codes:            auth.Console{In: os.Stdin, Out: os.Stdout},
		Pacing: &session.Pacing{
			Action: st.Window{Min: actionMin, Max: actionMax},
			Note:   st.Window{Min: noteMin, Max: noteMax},
			Page:   st.Window{Min: pageMin, Max: pageMax},
		},
		Recorder: store.Recorder(runID),
	})
	if err != nil {
		logger.Fatal("Failed to prepare session", "error", err)
	}
	defer func() {
		logger.Info("Closing browser...")
		if err := ctrl.Close(); err != nil {
			logger.Warn("Failed to close browser", "error", err)
		}
	}()

	// Open LinkedIn on the persistent profile
	logger.Info("Launching browser...", "backend", cfg.Browser.Backend, "profile_dir", ctrl.ProfileDir())
	if err := ctrl.OpenSite(); err != nil {
		ctrl.Close()
		if ferr := store.FinishRun(runID, 0, launchFailed, time.Now()); ferr != nil {
			logger.Error("Failed to finish run history", "error", ferr)
		}
		store.Close()
		logger.Fatal("Failed to open LinkedIn", "error", err)
	}

	// Authenticate
	logger.Info("Authenticating with LinkedIn...")
	if ctrl.EnsureLoggedIn(ctx) {
		logger.Info("Authentication successful")
	}

	logger.Info("Starting connection run...", "keywords", cfg.Search.Keywords, "max_pages", cfg.Search.MaxPages)
	report := ctrl.ConnectOnMultiplePages(ctx, cfg.Connection.Messages, cfg.Search.MaxPages)

	if err := store.FinishRun(runID, len(report.Pages), string(report.Stop), time.Now()); err != nil {
		logger.Error("Failed to finish run history", "error", err)
	}

	summary := report.Summary()
	logger.Info("=== Connection Run Completed ===",
		"run_id", runID,
		"stop_reason", string(report.Stop),
		"pages", len(report.Pages),
		"sent", summary.Sent,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
}

// newLauncher picks the browser backend named in the configuration
func newLauncher(cfg *config.Config) driver.Launcher {
	var userAgent string
	if cfg.Browser.RandomizeUserAgent {
		userAgent = st.RandomizeUserAgent()
	}

	if cfg.Browser.Backend == config.BackendChromedp {
		return driver.ChromedpLauncher{
			Headless:      cfg.Browser.Headless,
			UserAgent:     userAgent,
			ActionTimeout: cfg.ActionTimeout(),
		}
	}
	return driver.RodLauncher{
		Headless:      cfg.Browser.Headless,
		Stealth:       cfg.Browser.Stealth,
		UserAgent:     userAgent,
		ActionTimeout: cfg.ActionTimeout(),
	}
}

// displayWarningBanner displays a warning about the tool's purpose
func displayWarningBanner() {
	banner := `
╔════════════════════════════════════════════════════════════════════════════╗
║                                                                            ║
║                    ⚠️  WARNING - EDUCATIONAL USE ONLY ⚠️                    ║
║                                                                            ║
║  This LinkedIn connection tool is for educational and demonstration       ║
║  purposes ONLY.                                                            ║
║                                                                            ║
║  ❌ This tool VIOLATES LinkedIn's Terms of Service                         ║
║  ❌ Using this on real accounts may result in ACCOUNT BAN                  ║
║                                                                            ║
║  ✅ Use ONLY on test/dummy accounts                                        ║
║                                                                            ║
╚════════════════════════════════════════════════════════════════════════════╝

Press Ctrl+C at any time to stop.

`
	fmt.Println(banner)
}
