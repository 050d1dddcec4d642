package configs

type Logger struct {
	URL     string `env:"LOGGER_URL"`
	AppName string `env:"LOGGER_APP_NAME" envDefault:"polls"`
}
