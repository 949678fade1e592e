package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/homecare-staffing/nursing-backend-go/internal/config"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/attendance"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/database"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/lock"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/logger"
	"github.com/homecare-staffing/nursing-backend-go/internal/repository/postgresql"
	attendanceService "github.com/homecare-staffing/nursing-backend-go/internal/service/attendance"
)

// app holds the wiring shared by the subcommands
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *database.DB

	attendanceService attendance.AttendanceService
	closers           []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp loads config and connects to the database. The attendance service
// is only built when withService is set.
func newApp(ctx context.Context, withService bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.App.LogLevel, cfg.App.Env)
	slog.SetDefault(log)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	a := &app{cfg: cfg, logger: log, db: db}
	a.closers = append(a.closers, db.Close)

	if !withService {
		return a, nil
	}

	locker, err := a.newLocker(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	assignmentRepo := postgresql.NewAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	a.attendanceService = attendanceService.NewAttendanceService(
		assignmentRepo,
		attendanceRepo,
		leaveRepo,
		locker,
		attendanceService.Options{
			Location:          cfg.Location(),
			RepositoryTimeout: cfg.Attendance.RepositoryTimeout,
			LockWaitTimeout:   cfg.Lock.WaitTimeout,
		},
	)
	return a, nil
}

func (a *app) newLocker(ctx context.Context) (lock.Locker, error) {
	switch a.cfg.Lock.Backend {
	case config.LockBackendRedis:
		client, err := lock.NewRedisClient(ctx, a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis lock: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := client.Close(); err != nil {
				a.logger.Warn("Failed to close redis client", "error", err)
			}
		})
		a.logger.Info("Using redis attendance lock", "addr", a.cfg.Redis.Addr)
		return lock.NewRedisLocker(client, a.cfg.Redis.Prefix, a.cfg.Lock.TTL), nil
	default:
		a.logger.Info("Using in-process attendance lock")
		return lock.NewLocalLocker(), nil
	}
}
