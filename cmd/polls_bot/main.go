package main

import (
	"context"
	"os"
	"os/signal"
	"polling_system/configs"
	"polling_system/internal/db"
	"polling_system/internal/db/repositories"
	"polling_system/internal/di"
	"polling_system/internal/services"
	"polling_system/internal/tg_bot"
	"polling_system/internal/tg_bot/commands"
	"polling_system/internal/tg_bot/handlers/polls_bot"
	"syscall"
)

func main() {
	config, err := configs.LoadPollsBotConfig()
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
	defer database.Close()
	logger.Info("db started")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pollService := services.NewPollService(repositories.NewQuestionRepository(database), logger)

	handler := pbhandlers.NewPollsBotCommandHandler(logger, []commands.Command{
		commands.NewStartCommand(config.App),
		commands.NewActivePollsCommand(config.App, pollService, logger),
		commands.NewResultsCommand(config.App, pollService, logger),
	})

	logger.Info("starting bot")
	if err := tgbot.NewBot(handler).Start(ctx, config, logger); err != nil {
		logger.Fatalw("bot stopped", "error", err)
	}

	logger.Info("shutting down")
}
