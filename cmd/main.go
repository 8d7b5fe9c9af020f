package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"Health-Kitchen-Backend/cmd/config"
	migration "Health-Kitchen-Backend/cmd/database/migrate"
	"Health-Kitchen-Backend/internal/utils"
	"Health-Kitchen-Backend/internal/utils/logging"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	seed := flag.Bool("seed", false, "insert the sample recipes after migrating")
	flag.Parse()

	utils.LoadConfigFile(*configPath)
	log := logging.New(logging.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})
	defer func() { _ = log.Sync() }()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	if *seed {
		if err := migration.Seed(db); err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	}

	app, err := config.NewApp(db, log)
	if err != nil {
		log.Fatal("failed to set up app", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	addr := ":" + utils.GetConfig("APP_PORT")
	log.Info("starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
