package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/account-manager/backend/internal/cache"
	"github.com/account-manager/backend/internal/config"
	"github.com/account-manager/backend/internal/controllers"
	"github.com/account-manager/backend/internal/models"
	"github.com/account-manager/backend/internal/plaid"
	"github.com/account-manager/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()

	// Create the directory the database file lives in
	err := os.MkdirAll(filepath.Dir(cfg.DatabaseFile), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate all models
	err = models.Connect(cfg.DatabaseFile)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Plaid bank linking is optional and stays disabled without credentials
	cipher, err := plaid.NewTokenCipher(cfg.PlaidEncryptionKey)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	if cfg.PlaidEnabled() {
		controllers.ConfigurePlaid(plaid.NewClient(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidEnv), cipher, true)
	} else {
		log.Info().Msg("Plaid is not configured, bank linking endpoints are disabled")
		controllers.ConfigurePlaid(nil, cipher, false)
	}

	// Recommendations are cached in Redis when available
	if cfg.RedisAddr != "" {
		controllers.RecommendationCache = cache.NewRedis(cfg.RedisAddr)
	}

	r, err := router.Router()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
