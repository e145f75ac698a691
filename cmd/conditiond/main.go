package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/condengine/internal/condition"
	"github.com/udisondev/condengine/internal/config"
	"github.com/udisondev/condengine/internal/db"
	"github.com/udisondev/condengine/internal/model"
	"github.com/udisondev/condengine/internal/world"
)

const ConfigPath = "config/conditiond.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("CONDENGINE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadConditiond(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("conditiond starting",
		"log_level", cfg.LogLevel,
		"tick_interval", cfg.Engine.TickDuration(),
		"database", cfg.Database.Enabled)

	var repo *db.ConditionRepository
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		repo = db.NewConditionRepository(database.Pool())
	}

	factory := condition.NewFactory(condition.Options{
		DamageTickInterval: cfg.Engine.DamageTickInterval,
		RegenerationTicks:  cfg.Engine.RegenerationTicks,
	})
	w := world.New(
		world.WithFactory(factory),
		world.WithConditionLimit(cfg.Engine.MaxConditions),
	)

	if err := spawnRoster(ctx, w, repo, cfg.Roster); err != nil {
		return err
	}
	slog.Info("roster spawned", "creatures", w.Count())

	g, gctx := errgroup.WithContext(ctx)

	scheduler := world.NewScheduler(w, cfg.Engine.TickDuration())
	g.Go(func() error {
		if err := scheduler.Run(gctx); err != nil {
			return fmt.Errorf("condition scheduler: %w", err)
		}
		return nil
	})

	if repo != nil && cfg.AutosaveInterval > 0 {
		g.Go(func() error {
			slog.Info("starting condition autosave loop", "interval", cfg.AutosaveInterval)
			return autosave(gctx, w, repo, cfg.AutosaveInterval)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if repo != nil {
		// ctx is already canceled here.
		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.SaveAll(saveCtx, w.Snapshot()); err != nil {
			return fmt.Errorf("saving conditions on shutdown: %w", err)
		}
		slog.Info("conditions saved", "creatures", w.Count())
	}

	slog.Info("conditiond stopped")
	return nil
}

func spawnRoster(ctx context.Context, w *world.World, repo *db.ConditionRepository, roster []config.RosterEntry) error {
	for _, entry := range roster {
		tmpl := world.Template{
			ID:        entry.ID,
			Name:      entry.Name,
			Position:  model.NewPosition(entry.X, entry.Y, entry.Z),
			MaxHealth: entry.MaxHealth,
			MaxMana:   entry.MaxMana,
			BaseSpeed: entry.BaseSpeed,
			Light:     model.LightInfo{Level: 1, Color: 215},
		}

		var e world.Entity
		if entry.Player {
			e = world.NewPlayer(world.PlayerTemplate{
				Template:   tmpl,
				MagicLevel: entry.MagicLevel,
				Soul:       entry.Soul,
			})
		} else {
			e = world.NewCharacter(tmpl)
		}
		if err := w.Spawn(e); err != nil {
			return fmt.Errorf("spawning %q: %w", entry.Name, err)
		}

		restored := 0
		if repo != nil {
			data, err := repo.Load(ctx, entry.ID)
			if err != nil {
				return err
			}
			if restored, err = w.Restore(entry.ID, data); err != nil {
				return err
			}
		}
		if restored > 0 {
			slog.Info("conditions restored", "creature", entry.ID, "count", restored)
			continue
		}

		for _, rc := range entry.Conditions {
			t, ok := condition.ParseType(rc.Type)
			if !ok {
				return fmt.Errorf("roster %q: unknown condition type %q", entry.Name, rc.Type)
			}
			c := w.Factory().Create(condition.IDDefault, t, rc.Ticks, rc.Param, rc.Buff, 0)
			if _, err := w.AddCondition(entry.ID, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func autosave(ctx context.Context, w *world.World, repo *db.ConditionRepository, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snapshot := w.Snapshot()
			if err := repo.SaveAll(ctx, snapshot); err != nil {
				// A failed autosave is retried on the next tick.
				slog.Error("condition autosave failed", "err", err)
				continue
			}
			slog.Debug("conditions autosaved", "creatures", len(snapshot))
		}
	}
}
