package root

import (
	"context"
	"io"

	"go.uber.org/zap"

	"teddy/internal/config"
	"teddy/internal/engine"
	"teddy/internal/logging"
	"teddy/internal/storage"
)

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.Load(path)
}

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	svc    *engine.Service
	logger *zap.Logger
}

// openService loads configuration, opens the database and builds the engine.
// Events are printed to out; pass nil to keep them silent.
func openService(ctx context.Context, out io.Writer) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	path := cfg.Database.Path
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		logger.Error("open database", zap.String("path", path), zap.Error(err))
		return nil, nil, err
	}
	logger.Debug("database opened", zap.String("path", path))

	var notifier engine.Notifier = engine.NopNotifier{}
	if out != nil {
		notifier = engine.NotifierFunc(func(e engine.Event) { printEvent(out, e) })
	}

	svc := engine.NewService(db,
		engine.WithClock(engine.SystemClock{Location: loc}),
		engine.WithLogger(logger),
		engine.WithNotifier(notifier),
		engine.WithDueWindow(cfg.Reminders.DueWindow),
		engine.WithCompanionName(cfg.Companion.Name),
		engine.WithRewards(engine.Rewards{
			TaskLow:    cfg.Rewards.TaskLow,
			TaskMedium: cfg.Rewards.TaskMedium,
			TaskHigh:   cfg.Rewards.TaskHigh,
			Goal:       cfg.Rewards.Goal,
		}),
	)
	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return &app{cfg: cfg, svc: svc, logger: logger}, cleanup, nil
}
