package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/reservation_bot/internal/app"
	"github.com/Freeeeeet/reservation_bot/internal/controller"
	"github.com/Freeeeeet/reservation_bot/internal/notify"
	"github.com/go-telegram/bot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			return serve(ctx, rt)
		},
	}
}

func serve(ctx context.Context, rt *deps) error {
	cfg, logger := rt.cfg, rt.logger

	if err := cfg.RequireTelegram(); err != nil {
		return err
	}

	logger.Info("Starting reservation bot",
		zap.String("environment", cfg.Environment),
		zap.Int64("approver_id", cfg.ApproverID),
		zap.Bool("events_enabled", cfg.RabbitMQURL != ""),
	)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	var publisher notify.EventPublisher
	if cfg.RabbitMQURL != "" {
		publisher = notify.NewAMQPPublisher(cfg.RabbitMQURL, logger)
	}

	dispatcher := notify.NewDispatcher(notify.NewTelegramSender(b), publisher, cfg.NotifyBuffer, logger)
	reservationService := rt.reservationService()

	botController := controller.NewBotController(b, reservationService, dispatcher, cfg.CalendarDays, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	scheduler := app.NewScheduler(reservationService, dispatcher, cfg.PendingDigestInterval, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatcher.Run(ctx) })
	g.Go(func() error { return scheduler.Run(ctx) })
	g.Go(func() error { return botController.Start(ctx) })

	err = g.Wait()
	logger.Info("Reservation bot stopped")
	return err
}
