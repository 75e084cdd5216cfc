package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/config"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/handler"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/repository"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/usecase"
	"github.com/onlymentors/account-recovery-api/shared/auth"
	"github.com/onlymentors/account-recovery-api/shared/mailer"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "recovery-service").Logger()

	cfg := config.Load(&logger)

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	ctx := context.Background()
	db := client.Database(cfg.MongoDatabase)

	tokenRepo := repository.NewResetTokenMongoRepository(ctx, &logger, db)
	attemptRepo := repository.NewResetAttemptMongoRepository(ctx, &logger, db)
	accountRepo := repository.NewAccountMongoRepository(ctx, &logger, db)

	deliveryChain := mailer.New(cfg.Mailer(), &logger)

	passwordResetUsecase := usecase.NewPasswordResetUsecase(
		tokenRepo,
		attemptRepo,
		accountRepo,
		deliveryChain,
		cfg,
		&logger,
	)
	notificationUsecase := usecase.NewAccountNotificationUsecase(accountRepo, deliveryChain, &logger)

	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer)
	recoveryHandler := handler.NewRecoveryHandler(passwordResetUsecase, notificationUsecase, jwtAuth, cfg, &logger)

	go sweepLoop(&logger, cfg.SweepInterval, passwordResetUsecase)

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           recoveryHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("address", cfg.ServerAddress).Msg("starting recovery service")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("recovery service stopped unexpectedly")
	}
}

// sweepLoop periodically deletes reset tokens past the retention window. It
// runs for the lifetime of the process, concurrent with request traffic.
func sweepLoop(logger *zerolog.Logger, interval time.Duration, u usecase.PasswordResetUsecase) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		deleted, err := u.SweepTokens(context.Background())
		if err != nil {
			logger.Error().Err(err).Msg("reset token sweep failed")
			continue
		}

		if deleted > 0 {
			logger.Info().Int64("deleted", deleted).Msg("swept stale reset tokens")
		}
	}
}
