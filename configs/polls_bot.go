package configs

type PollsBot struct {
	Token string `env:"TELEGRAM_POLLS_BOT_TOKEN,notEmpty"`
}
