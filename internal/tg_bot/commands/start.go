package commands

import (
	"context"
	"fmt"
	"polling_system/configs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const startCommandName = "start"

type startCommand struct {
	appConfig configs.App
}

func NewStartCommand(appConfig configs.App) Command {
	return &startCommand{
		appConfig: appConfig,
	}
}

func (c *startCommand) CanHandle(command string) bool {
	return command == startCommandName
}

func (c *startCommand) Handle(_ context.Context, _ string, chatID int64) []tgbotapi.Chattable {
	text := fmt.Sprintf(`Hi! I am the %s bot. Here is what I can do:

/polls - list the polls that are open for voting.
/results <poll id> - show the current results of a poll.

Voting happens on the site: %s`, c.appConfig.SiteName, c.appConfig.SiteURL)

	message := tgbotapi.NewMessage(chatID, text)
	message.DisableWebPagePreview = true
	return []tgbotapi.Chattable{message}
}
