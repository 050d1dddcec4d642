package commands

import (
	"context"
	"fmt"
	"polling_system/configs"
	"polling_system/internal"
	"polling_system/internal/services"
	"polling_system/internal/tg_bot/extension"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const activePollsCommandName = "polls"

type activePollsCommand struct {
	appConfig   configs.App
	pollService services.PollService
	now         func() time.Time
	logger      *zap.SugaredLogger
}

func NewActivePollsCommand(appConfig configs.App, pollService services.PollService, logger *zap.SugaredLogger) Command {
	return &activePollsCommand{
		appConfig:   appConfig,
		pollService: pollService,
		now:         time.Now,
		logger:      logger,
	}
}

func (c *activePollsCommand) CanHandle(command string) bool {
	return command == activePollsCommandName
}

func (c *activePollsCommand) Handle(ctx context.Context, _ string, chatID int64) []tgbotapi.Chattable {
	questions, err := c.pollService.ListActive(ctx, c.now())
	if err != nil {
		c.logger.Errorw("failed to get active polls", "error", err)
		return []tgbotapi.Chattable{extension.DefaultErrorMessage(chatID)}
	}

	if len(questions) == 0 {
		return []tgbotapi.Chattable{tgbotapi.NewMessage(chatID, "There are no open polls right now.")}
	}

	var b strings.Builder
	b.WriteString("Open polls:\n")

	for _, question := range questions {
		fmt.Fprintf(&b, "\n#%d %s\n", question.ID, question.QuestionText)
		if question.EndDate != nil {
			fmt.Fprintf(&b, "closes %s\n", internal.FormatDateTime(question.EndDate.UTC()))
		}
		b.WriteString(extension.PollURL(c.appConfig.SiteURL, question.ID))
		b.WriteString("\n")
	}

	message := tgbotapi.NewMessage(chatID, b.String())
	message.DisableWebPagePreview = true
	return []tgbotapi.Chattable{message}
}
