package controller

import (
	"context"

	"github.com/Freeeeeet/reservation_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/reservation_bot/internal/controller/handlers"
	"github.com/Freeeeeet/reservation_bot/internal/model"
	"github.com/Freeeeeet/reservation_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// NotificationQueue очередь, в которую обработчики кладут уведомления сервиса
type NotificationQueue interface {
	Enqueue(notifications ...model.Notification)
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	reservationService *service.ReservationService,
	queue NotificationQueue,
	calendarDays int,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(reservationService, queue, calendarDays, logger),
		callbackHandler: callbacks.NewHandler(reservationService, queue, calendarDays, logger),
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/my", bot.MatchTypeExact, c.handlers.HandleMyReservations)

	// Команды администратора, аргументы идут после команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/add_time", bot.MatchTypePrefix, c.handlers.HandleAddTime)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/delete_time", bot.MatchTypePrefix, c.handlers.HandleDeleteTime)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/slots", bot.MatchTypeExact, c.handlers.HandleSlots)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pending", bot.MatchTypeExact, c.handlers.HandlePending)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reservations", bot.MatchTypePrefix, c.handlers.HandleReservations)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "📅 Записаться"},
		{Command: "my", Description: "🗂 Мои записи"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота, блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
