package configs

type Announcer struct {
	Cron string `env:"ANNOUNCER_CRON" envDefault:"*/5 * * * *"`
}
