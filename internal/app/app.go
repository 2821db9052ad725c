package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sandeepkv93/goaltrack/internal/ai"
	"github.com/sandeepkv93/goaltrack/internal/config"
	"github.com/sandeepkv93/goaltrack/internal/derive"
	"github.com/sandeepkv93/goaltrack/internal/effects"
	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/platform"
	"github.com/sandeepkv93/goaltrack/internal/scheduler"
	"github.com/sandeepkv93/goaltrack/internal/state"
	"github.com/sandeepkv93/goaltrack/internal/storage"
)

// App holds the wired collaborators of one goaltrack process.
type App struct {
	Config     *config.Config
	Logger     *log.Logger
	KV         *storage.Store
	Engine     *scheduler.Engine
	Dispatcher *effects.Dispatcher
	Weekly     *effects.WeeklyReviewJob
	Store      *state.Store
}

func Build(cfg *config.Config, logger *log.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Storage.Driver != storage.DriverMemory && cfg.Storage.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
			logger.Printf("app: create data dir: %v", err)
		}
	}
	kv := storage.Open(cfg.Storage.Driver, cfg.Storage.Path, cfg.Storage.KeyPrefix, logger)

	engine := scheduler.NewEngine(cfg.Notifications.SchedulerBuffer)
	engine.Start()

	notifier, remote := buildNotifier(cfg, logger)
	var perms platform.Permissions = platform.StaticPermissions{Value: model.PermissionDenied}
	if cfg.Notifications.Desktop || remote {
		perms = platform.NewDesktopPermissions(kv, remote)
	}

	reminderAt := cfg.ReminderAt()
	dispatcher := effects.NewDispatcher(effects.Options{
		Scheduler:           engine,
		Permissions:         perms,
		ReminderAt:          &reminderAt,
		CelebrationDuration: cfg.CelebrationDuration(),
		Logger:              logger,
	})

	weekly, err := effects.NewWeeklyReviewJob(cfg.Notifications.WeeklyReviewSpec, engine, time.Local, logger)
	if err != nil {
		engine.Stop()
		_ = kv.Close()
		return nil, fmt.Errorf("app: %w", err)
	}
	weekly.Start()

	opts := state.Options{
		Store:        kv,
		Dispatcher:   dispatcher,
		Permissions:  perms,
		Notifier:     notifier,
		WeeklyReview: weekly,
		Policy:       derive.PolicyByName(cfg.Progress.Policy, cfg.Progress.WeeklyBonus),
		XPPerTask:    cfg.Progress.XPPerTask,
		Retention:    cfg.Notifications.Retention,
		Logger:       logger,
	}
	if cfg.AI.APIKey != "" {
		client := ai.NewClient(ai.ClientOptions{
			APIKey:     cfg.AI.APIKey,
			BaseURL:    cfg.AI.BaseURL,
			ImageModel: cfg.AI.ImageModel,
			ChatModel:  cfg.AI.ChatModel,
			Timeout:    cfg.AI.Timeout,
		})
		opts.Images = client
		opts.Suggester = client
	} else {
		logger.Printf("app: no AI api key configured, goal creation and weekly review are unavailable")
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		KV:         kv,
		Engine:     engine,
		Dispatcher: dispatcher,
		Weekly:     weekly,
		Store:      state.New(opts),
	}, nil
}

func buildNotifier(cfg *config.Config, logger *log.Logger) (platform.Notifier, bool) {
	var multi platform.MultiNotifier
	if cfg.Notifications.Desktop {
		multi = append(multi, platform.NewDesktopNotifier())
	}
	remote := false
	if cfg.Notifications.Telegram.Enabled() {
		tg, err := platform.NewTelegramNotifier(cfg.Notifications.Telegram.Token, cfg.Notifications.Telegram.ChatID)
		if err != nil {
			logger.Printf("app: telegram notifier disabled: %v", err)
		} else {
			multi = append(multi, tg)
			remote = true
		}
	}
	if len(multi) == 0 {
		return platform.NoopNotifier{}, false
	}
	return multi, remote
}

// ConsumeReminders hands due reminders to the store until ctx is done. The
// terminal UI reads the engine channel itself; this is for headless modes.
func (a *App) ConsumeReminders(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-a.Engine.C():
			if !ok {
				return
			}
			if n, recorded := a.Store.HandleReminder(ctx, ev); recorded {
				a.Logger.Printf("app: reminder %s: %s", ev.Kind, n.Message)
			}
		}
	}
}

func (a *App) Close() error {
	a.Weekly.Stop()
	a.Dispatcher.Stop()
	a.Engine.Stop()
	return a.KV.Close()
}
