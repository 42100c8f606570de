package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerContext общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Message    *models.Message
	TelegramID int64
	ChatID     int64
	logger     *zap.Logger
	answered   bool
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, logger *zap.Logger) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
		logger:     logger,
	}
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	if hc.markAnswered(text) {
		AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
	}
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	if hc.markAnswered(text) {
		AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
	}
}

// markAnswered Telegram принимает только один ответ на callback query
func (hc *HandlerContext) markAnswered(text string) bool {
	if hc.answered {
		hc.logger.Warn("Callback already answered",
			zap.String("data", hc.Callback.Data),
			zap.String("text", text),
		)
		return false
	}
	hc.answered = true
	return true
}

// EditMessage редактирует сообщение с кнопками
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) {
	if hc.Message == nil {
		hc.logger.Warn("Callback without message", zap.String("data", hc.Callback.Data))
		return
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, params)
	if err != nil && !IsMessageNotModifiedError(err) {
		hc.logger.Error("Failed to edit message",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err),
		)
	}
}

// RemoveKeyboard убирает кнопки под сообщением, текст не меняется
func (hc *HandlerContext) RemoveKeyboard() {
	if hc.Message == nil {
		return
	}

	_, err := hc.Bot.EditMessageReplyMarkup(hc.Ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{}},
	})
	if err != nil && !IsMessageNotModifiedError(err) {
		hc.logger.Error("Failed to remove keyboard",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err),
		)
	}
}
