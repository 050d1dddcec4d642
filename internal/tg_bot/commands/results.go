package commands

import (
	"context"
	"errors"
	"fmt"
	"polling_system/configs"
	"polling_system/internal"
	"polling_system/internal/services"
	"polling_system/internal/tg_bot/extension"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const resultsCommandName = "results"

type resultsCommand struct {
	appConfig   configs.App
	pollService services.PollService
	logger      *zap.SugaredLogger
}

func NewResultsCommand(appConfig configs.App, pollService services.PollService, logger *zap.SugaredLogger) Command {
	return &resultsCommand{
		appConfig:   appConfig,
		pollService: pollService,
		logger:      logger,
	}
}

func (c *resultsCommand) CanHandle(command string) bool {
	return command == resultsCommandName
}

func (c *resultsCommand) Handle(ctx context.Context, arguments string, chatID int64) []tgbotapi.Chattable {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arguments), "#"), 10, 64)
	if err != nil {
		return []tgbotapi.Chattable{extension.ErrorMessage(chatID, "Usage: /results <poll id>")}
	}

	question, err := c.pollService.Get(ctx, id)
	if errors.Is(err, services.ErrNotFound) {
		return []tgbotapi.Chattable{extension.ErrorMessage(chatID, fmt.Sprintf("Poll #%d does not exist.", id))}
	} else if err != nil {
		c.logger.Errorw("failed to get poll", "questionID", id, "error", err)
		return []tgbotapi.Chattable{extension.DefaultErrorMessage(chatID)}
	}

	text := internal.FormatResults(question, services.CalculateTally(question)) +
		"\n\n" + extension.PollURL(c.appConfig.SiteURL, question.ID) + "/results"

	message := tgbotapi.NewMessage(chatID, text)
	message.DisableWebPagePreview = true
	return []tgbotapi.Chattable{message}
}
