package pbhandlers

import (
	"context"
	"polling_system/internal/tg_bot/commands"
	"polling_system/internal/tg_bot/handlers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type pollsBotCommandHandler struct {
	logger *zap.SugaredLogger

	commands []commands.Command
}

func NewPollsBotCommandHandler(logger *zap.SugaredLogger, commands []commands.Command) handlers.CommandHandler {
	return &pollsBotCommandHandler{
		logger:   logger,
		commands: commands,
	}
}

func (h *pollsBotCommandHandler) Handle(ctx context.Context, update tgbotapi.Update) []tgbotapi.Chattable {
	message := update.Message

	if message == nil {
		h.logger.Warn("received unknown updates")
		return []tgbotapi.Chattable{}
	}

	if !message.IsCommand() {
		h.logger.Debugw("ignored message", "chatID", message.Chat.ID)
		return []tgbotapi.Chattable{}
	}

	h.logger.Infow("received command", "command", message.Command(), "chatID", message.Chat.ID)
	return h.tryToHandleCommand(ctx, message)
}

func (h *pollsBotCommandHandler) tryToHandleCommand(ctx context.Context, message *tgbotapi.Message) []tgbotapi.Chattable {
	command := message.Command()

	for _, handler := range h.commands {
		if handler.CanHandle(command) {
			return handler.Handle(ctx, message.CommandArguments(), message.Chat.ID)
		}
	}

	h.logger.Warnw("received unknown command", "command", command)
	return []tgbotapi.Chattable{}
}
