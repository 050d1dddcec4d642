package tgbot

import (
	"context"
	"fmt"
	"polling_system/configs"
	"polling_system/internal/tg_bot/handlers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type bot struct {
	handler handlers.CommandHandler
}

type Bot interface {
	Start(ctx context.Context, config configs.PollsBotConfig, logger *zap.SugaredLogger) error
}

func NewBot(handler handlers.CommandHandler) Bot {
	return &bot{handler: handler}
}

// Start polls Telegram for updates until ctx is cancelled.
func (b *bot) Start(ctx context.Context, config configs.PollsBotConfig, logger *zap.SugaredLogger) error {
	logger.Info("creating bot")
	bot, updates, err := b.createBot(config)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	logger.Infow("bot created", "username", bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			for _, message := range b.handler.Handle(ctx, update) {
				if _, err := bot.Send(message); err != nil {
					logger.Errorw("failed to send message", "error", err)
				}
			}
		}
	}
}

func (b *bot) createBot(config configs.PollsBotConfig) (*tgbotapi.BotAPI, tgbotapi.UpdatesChannel, error) {
	bot, err := tgbotapi.NewBotAPI(config.PollsBot.Token)
	if err != nil {
		return nil, nil, err
	}

	bot.Debug = config.App.IsDevEnvironment()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	return bot, bot.GetUpdatesChan(u), nil
}
