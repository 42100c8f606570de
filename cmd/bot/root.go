package main

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/reservation_bot/internal/app"
	"github.com/Freeeeeet/reservation_bot/internal/config"
	"github.com/Freeeeeet/reservation_bot/internal/repository"
	"github.com/Freeeeeet/reservation_bot/internal/service"
	"github.com/Freeeeeet/reservation_bot/internal/tracker"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reservation_bot",
		Short:         "Slot reservation bot with approver workflow",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSlotCmd())
	return cmd
}

// deps общие зависимости всех команд
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
}

// bootstrap загружает конфиг, создаёт логгер и пул, применяет миграции
func bootstrap(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg.Environment)

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Sync()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	rt := &deps{cfg: cfg, logger: logger, pool: pool}
	if err := rt.migrate(ctx); err != nil {
		rt.Close()
		return nil, err
	}

	return rt, nil
}

func (rt *deps) migrate(ctx context.Context) error {
	migrator, err := app.NewMigrator(rt.pool, rt.logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

// reservationService собирает сервис поверх postgres репозиториев
func (rt *deps) reservationService() *service.ReservationService {
	return service.NewReservationService(
		repository.NewSlotRepository(rt.pool),
		repository.NewReservationRepository(rt.pool),
		repository.NewTxManager(rt.pool, rt.logger),
		tracker.New(),
		rt.cfg.ApproverID,
		rt.logger,
	)
}

func (rt *deps) Close() {
	rt.pool.Close()
	rt.logger.Sync()
}
