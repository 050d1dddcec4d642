package configs

import (
	"fmt"
	"github.com/caarlos0/env/v6"
)

type WebAppConfig struct {
	App     App
	HTTP    HTTP
	DB      DB
	Redis   Redis
	Session Session
	Logger  Logger
}

type ResultsAnnouncerConfig struct {
	App       App
	DB        DB
	Logger    Logger
	Bot       Bot
	Discord   Discord
	Announcer Announcer
}

type PollsBotConfig struct {
	App      App
	DB       DB
	Logger   Logger
	PollsBot PollsBot
}

func LoadWebAppConfig() (WebAppConfig, error) {
	var config WebAppConfig

	if err := env.Parse(&config); err != nil {
		return WebAppConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func LoadResultsAnnouncerConfig() (ResultsAnnouncerConfig, error) {
	var config ResultsAnnouncerConfig

	if err := env.Parse(&config); err != nil {
		return ResultsAnnouncerConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func LoadPollsBotConfig() (PollsBotConfig, error) {
	var config PollsBotConfig

	if err := env.Parse(&config); err != nil {
		return PollsBotConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
