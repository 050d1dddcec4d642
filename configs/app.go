package configs

type App struct {
	Environment string `env:"ENVIRONMENT,notEmpty"`
	SiteName    string `env:"SITE_NAME" envDefault:"Polls"`
	SiteURL     string `env:"SITE_URL" envDefault:"http://localhost:8080"`
	MediaRoot   string `env:"MEDIA_ROOT" envDefault:"media"`
}

func (c App) IsDevEnvironment() bool {
	return c.Environment == "dev"
}
