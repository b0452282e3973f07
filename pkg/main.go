package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	pkg "github.com/devtales-app/backend/pkg/internal"
	"github.com/devtales-app/backend/pkg/internal/auth"
	"github.com/devtales-app/backend/pkg/internal/cache"
	"github.com/devtales-app/backend/pkg/internal/database"
	"github.com/devtales-app/backend/pkg/internal/http"
	"github.com/devtales-app/backend/pkg/internal/media"
	"github.com/devtales-app/backend/pkg/internal/services"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" ____             _____     _\n|  _ \\  _____   _|_   _|_ _| | ___  ___\n| | | |/ _ \\ \\ / / | |/ _` | |/ _ \\/ __|\n| |_| |  __/\\ V /  | | (_| | |  __/\\__ \\\n|____/ \\___| \\_/   |_|\\__,_|_|\\___||___/"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("DevTales.Backend"), pkg.AppVersion)
	fmt.Printf("The story sharing service behind DevTales\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Load token secret
	if reader, err := auth.NewTokenReader(viper.GetString("security.token_secret")); err != nil {
		log.Error().Err(err).Msg("An error occurred when loading the token secret. Authentication related features will be disabled.")
	} else {
		http.IReader = reader
		log.Info().Msg("Token reader is ready.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Set up in-process cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when setting up cache.")
	}

	// Connect to media host
	if host, err := media.NewHostFromConfig(context.Background()); err != nil {
		log.Error().Err(err).Msg("An error occurred when setting up media host. Uploads will be rejected.")
	} else {
		media.H = host
		log.Info().Str("type", viper.GetString("media.type")).Msg("Media host is ready.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer().Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
