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

	"github.com/wellspring-app/wellspring/internal/api"
	"github.com/wellspring-app/wellspring/internal/app/notify"
	"github.com/wellspring-app/wellspring/internal/app/reward"
	"github.com/wellspring-app/wellspring/internal/app/tracker"
	"github.com/wellspring-app/wellspring/internal/domain"
	_ "github.com/wellspring-app/wellspring/internal/infra/metrics" // Register Prometheus metrics
	"github.com/wellspring-app/wellspring/internal/infra/sqlite"
)

// Daemon is the core Wellspring runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Tracker *tracker.Tracker
	Reward  *reward.Service
	Notify  *notify.Service
	Server  *api.Server
	cancel  context.CancelFunc
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
	dir := cfg.Storage.Dir
	if dir == "" {
		dir = wellspringHome()
	}

	db, err := sqlite.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	clock := domain.SystemClock{}

	tr := tracker.New(db, clock)
	if err := tr.Init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tracker: %w", err)
	}
	tr.SeedAchievements(tracker.StarterAchievements())

	rw := reward.NewService(db)

	// max_per_day = 0 disables notifications; only missing quiet-hour
	// fields fall back to the defaults.
	policy := domain.NotificationPolicy{
		MaxPerDay:  cfg.Notifications.MaxPerDay,
		QuietStart: cfg.Notifications.QuietStart,
		QuietEnd:   cfg.Notifications.QuietEnd,
	}
	def := domain.DefaultNotificationPolicy()
	if policy.QuietStart == "" {
		policy.QuietStart = def.QuietStart
	}
	if policy.QuietEnd == "" {
		policy.QuietEnd = def.QuietEnd
	}
	nf := notify.NewServiceWithPolicy(db, clock, policy)

	d := &Daemon{
		Config:  cfg,
		DB:      db,
		Tracker: tr,
		Reward:  rw,
		Notify:  nf,
	}

	// Mission completions feed the XP sink; completions, unlocks, and
	// level-ups raise celebratory notifications (subject to policy).
	tr.Subscribe(d.onTrackerUpdate)

	srv := api.NewServer(tr, rw, nf, db)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// onTrackerUpdate is the daemon's tracker subscriber.
func (d *Daemon) onTrackerUpdate(u tracker.Update) {
	for _, m := range u.CompletedMissions {
		level, leveledUp, err := d.Reward.AddXP(m.RewardXP, domain.XPMissionCompleted)
		if err != nil {
			log.Printf("[daemon] award xp for %s: %v", m.ID, err)
			continue
		}

		d.createNotification(domain.Notification{
			Type:  domain.NotifyMissionComplete,
			Title: "Mission Complete!",
			Body:  fmt.Sprintf("%s — +%d XP", m.Title, m.RewardXP),
		})

		if leveledUp {
			d.createNotification(domain.Notification{
				Type:  domain.NotifyLevelUp,
				Title: "Level Up!",
				Body:  fmt.Sprintf("You reached level %d.", level),
			})
		}
	}

	for _, a := range u.UnlockedAchievements {
		d.createNotification(domain.Notification{
			Type:  domain.NotifyAchievement,
			Title: "Achievement Unlocked!",
			Body:  fmt.Sprintf("%s %s", a.Icon, a.Title),
		})
	}
}

func (d *Daemon) createNotification(n domain.Notification) {
	if _, err := d.Notify.Create(n); err != nil {
		log.Printf("[daemon] create notification: %v", err)
	}
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Wellspring serving on http://%s\n", addr)
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
