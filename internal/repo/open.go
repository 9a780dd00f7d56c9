package repo

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard/internal/core/config"
	"taskboard/internal/core/database"
	"taskboard/internal/domain"
	"taskboard/internal/feature/task"
	"taskboard/internal/feature/user"
)

const (
	BackendGorm   = "gorm"
	BackendPgx    = "pgx"
	BackendMemory = "memory"
)

// Stores 按 store.backend 组装好的存储
type Stores struct {
	Backend string
	Users   domain.UserStore
	Tasks   domain.TaskStore
	Ping    func(ctx context.Context) error
	Close   func()
}

func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Stores, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Store.Backend {
	case BackendGorm:
		return openGorm(cfg, log)
	case BackendPgx:
		return openPgx(ctx, cfg, log)
	case BackendMemory, "":
		mem := NewMemory()
		return &Stores{
			Backend: BackendMemory,
			Users:   mem.Users(),
			Tasks:   mem.Tasks(),
			Ping:    func(context.Context) error { return nil },
			Close:   func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// AutoMigrate users 先于 tasks，外键依赖其存在
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.UserModel{}, &task.TaskModel{})
}

func openGorm(cfg *config.Config, log *zap.Logger) (*Stores, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                log,
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &Stores{
		Backend: BackendGorm,
		Users:   NewUserRepo(db),
		Tasks:   NewTaskRepo(db),
		Ping:    sqlDB.PingContext,
		Close:   func() { _ = sqlDB.Close() },
	}, nil
}

func openPgx(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Stores, error) {
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB.MigrationsPath, cfg.DB.DSN, log); err != nil {
			return nil, err
		}
	}
	pool, err := database.NewPgxPool(ctx, database.PgxOpts{
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
	}, log)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Backend: BackendPgx,
		Users:   NewPgxUserRepo(pool, log),
		Tasks:   NewPgxTaskRepo(pool, log),
		Ping:    pool.Ping,
		Close:   pool.Close,
	}, nil
}
