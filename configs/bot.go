package configs

type Bot struct {
	Token  string `env:"TELEGRAM_RESULTS_BOT_TOKEN"`
	ChatID int64  `env:"TELEGRAM_RESULTS_CHAT_ID"`
}

func (c Bot) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}
