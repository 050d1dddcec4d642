package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"polling_system/configs"
	"polling_system/internal/db"
	"polling_system/internal/db/repositories"
	"polling_system/internal/di"
	"polling_system/internal/graphql"
	"polling_system/internal/services"
	"polling_system/internal/sessions"
	"polling_system/internal/storage"
	"polling_system/internal/web"
	"syscall"
)

func main() {
	config, err := configs.LoadWebAppConfig()
	logger := di.NewLogger(config.App, config.Logger)
	defer func() { _ = logger.Sync() }()

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

	logger.Info("connecting to redis")
	redisClient, err := sessions.NewRedisClient(ctx, config.Redis)
	if err != nil {
		logger.Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	media, err := storage.NewLocalStore(config.App.MediaRoot, logger)
	if err != nil {
		logger.Fatalw("failed to open media storage", "error", err)
	}

	logger.Info("initializing repositories and services")
	userRepository := repositories.NewUserRepository(database)
	profileRepository := repositories.NewProfileRepository(database)
	questionRepository := repositories.NewQuestionRepository(database)
	choiceRepository := repositories.NewChoiceRepository(database)
	voteRepository := repositories.NewVoteRepository(database)

	pollService := services.NewPollService(questionRepository, logger)
	votingService := services.NewVotingService(questionRepository, choiceRepository, voteRepository, logger)
	userService := services.NewUserService(userRepository, profileRepository, media, logger)

	server, err := web.NewServer(
		web.NewConfig(config.App, config.HTTP, config.Session),
		pollService,
		votingService,
		userService,
		sessions.NewRedisStore(redisClient, config.Session.TTL),
		media,
		logger,
	)
	if err != nil {
		logger.Fatalw("failed to create web server", "error", err)
	}

	schema, err := graphql.NewSchema(pollService, votingService, logger)
	if err != nil {
		logger.Fatalw("failed to build graphql schema", "error", err)
	}

	router := server.Router()
	router.Handle("/graphql", graphql.NewHandler(schema, config.App.IsDevEnvironment()))

	httpServer := &http.Server{Addr: config.HTTP.Addr, Handler: router}

	go func() {
		logger.Infow("starting http server", "addr", config.HTTP.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("failed to start http server", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("failed to shutdown http server", "error", err)
		return
	}

	logger.Info("shutting down")
}
