package main

import (
	"context"
	"polling_system/configs"
	"polling_system/internal/announcer"
	"polling_system/internal/db"
	"polling_system/internal/db/repositories"
	"polling_system/internal/di"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

func main() {
	s := gocron.NewScheduler(time.UTC)

	config, err := configs.LoadResultsAnnouncerConfig()
	logger := di.NewLogger(config.App, config.Logger)

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger.Info("config loaded")

	logger.Info("starting db")
	database, err := db.StartDB(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	logger.Info("db started")

	resultsAnnouncer := announcer.New(
		repositories.NewQuestionRepository(database),
		repositories.NewAnnouncementRepository(database),
		createNotifiers(config, logger),
		logger,
	)

	_, err = s.Cron(config.Announcer.Cron).SingletonMode().Do(func() {
		logger.Info("announcing results")
		if err := resultsAnnouncer.Run(context.Background()); err != nil {
			logger.Errorw("failed to announce results", "error", err)
		}
	})
	if err != nil {
		logger.Fatalw("failed to schedule announcer", "cron", config.Announcer.Cron, "error", err)
	}

	s.StartBlocking()
}

func createNotifiers(config configs.ResultsAnnouncerConfig, logger *zap.SugaredLogger) []announcer.Notifier {
	var notifiers []announcer.Notifier

	if config.Bot.Enabled() {
		telegram, err := announcer.NewTelegramNotifier(config.Bot.Token, config.Bot.ChatID)
		if err != nil {
			logger.Errorw("could not create telegram notifier", "error", err)
		} else {
			notifiers = append(notifiers, telegram)
		}
	}

	if config.Discord.Enabled() {
		discord, err := announcer.NewDiscordNotifier(config.Discord.Token, config.Discord.ChannelID)
		if err != nil {
			logger.Errorw("could not create discord notifier", "error", err)
		} else {
			notifiers = append(notifiers, discord)
		}
	}

	return notifiers
}
