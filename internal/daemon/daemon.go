package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lingua-network/lingua/internal/api"
	"github.com/lingua-network/lingua/internal/app/progress"
	"github.com/lingua-network/lingua/internal/domain"
	"github.com/lingua-network/lingua/internal/health"
	"github.com/lingua-network/lingua/internal/infra/sqlite"
)

// Daemon is the core Lingua runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server
	cancel context.CancelFunc

	Engine        *progress.Engine
	Recorder      *progress.Recorder
	Challenges    *progress.ChallengeService
	Notifications *progress.NotificationService
	Health        *health.Checker
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Storage.Dir
	if dataDir == "" {
		dataDir = linguaHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{
		Config: cfg,
		DB:     db,
	}

	// Progress engine
	d.Engine = progress.NewEngine(db)

	if cfg.Challenges.Enabled {
		d.Challenges = progress.NewChallengeService(db)
	}
	if cfg.Notifications.Enabled {
		d.Notifications = progress.NewNotificationServiceWithPolicy(db, domain.NotificationPolicy{
			MaxPerDay:  cfg.Notifications.MaxPerDay,
			QuietStart: cfg.Notifications.QuietStart,
			QuietEnd:   cfg.Notifications.QuietEnd,
		})
	}

	rates := progress.XPRates{
		Message:        cfg.XP.Message,
		PracticeMinute: cfg.XP.PracticeMinute,
		Quiz:           cfg.XP.Quiz,
	}
	d.Recorder = progress.NewRecorder(d.Engine, db, d.Challenges, d.Notifications, rates)

	// Health checker
	d.Health = health.NewChecker(db, dataDir)

	// API server
	srv := api.NewServer(d.Engine, d.Recorder, d.Health)
	srv.SetChallenges(d.Challenges)
	srv.SetNotifications(d.Notifications)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	// Generate this week's challenges on startup
	if d.Challenges != nil {
		if _, err := d.Challenges.GenerateWeekly(); err != nil {
			log.Printf("[daemon] generate challenges: %v", err)
		}
		if _, err := d.Challenges.CleanupExpired(); err != nil {
			log.Printf("[daemon] cleanup challenges: %v", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Lingua serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
