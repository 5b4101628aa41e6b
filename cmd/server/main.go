package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ladanze/auth-api/internal/account"
	"github.com/ladanze/auth-api/internal/auth"
	"github.com/ladanze/auth-api/internal/httpapi"
	"github.com/ladanze/auth-api/internal/mail"
	"github.com/ladanze/auth-api/internal/token"
	"github.com/ladanze/auth-api/pkg/config"
	"github.com/ladanze/auth-api/pkg/cookie"
	"github.com/ladanze/auth-api/pkg/httpserver"
	"github.com/ladanze/auth-api/pkg/logger"
	"github.com/ladanze/auth-api/pkg/mongo"
	"github.com/ladanze/auth-api/pkg/ratelimit"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(logCfg)

	if err := run(ctx, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		mongoCfg   mongo.Config
		tokenCfg   token.Config
		mailCfg    mail.Config
		cookieCfg  cookie.Config
		httpCfg    httpserver.Config
		apiCfg     httpapi.Config
		limitCfg   ratelimit.Config
		accountCfg account.Config
	)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&tokenCfg)
	config.MustLoad(&mailCfg)
	config.MustLoad(&cookieCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&apiCfg)
	config.MustLoad(&limitCfg)
	config.MustLoad(&accountCfg)

	db, err := mongo.ConnectDatabase(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Client().Disconnect(context.Background())
	}()

	accountStorage := account.NewMongoStorage(db)
	refreshStorage := token.NewRefreshMongoStorage(db)
	emailStorage := token.NewEmailTokenMongoStorage(db)
	for _, ensure := range []func(context.Context) error{
		accountStorage.EnsureIndexes,
		refreshStorage.EnsureIndexes,
		emailStorage.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}

	privateKey, publicKey, err := token.LoadKeyPair(tokenCfg)
	if err != nil {
		return err
	}

	forge := token.NewForge(privateKey, publicKey, token.WithAccessTokenTTL(tokenCfg.AccessTokenTTL))
	refreshLedger := token.NewRefreshLedger(refreshStorage, token.WithRefreshTokenTTL(tokenCfg.RefreshTokenTTL))
	emailLedger := token.NewEmailLedger(emailStorage, token.WithEmailTokenTTL(tokenCfg.EmailTokenTTL))
	accounts := account.NewStore(accountStorage,
		account.WithLogger(log),
		account.WithBcryptCost(accountCfg.BcryptCost),
		account.WithPasswordMinLength(accountCfg.PasswordMinLength),
	)

	sender, err := mail.NewSenderFromConfig(mailCfg)
	if err != nil {
		return err
	}
	mailer, err := mail.NewMailer(sender, mailCfg)
	if err != nil {
		return err
	}

	service := auth.NewService(accounts, forge, refreshLedger, emailLedger, mailer, auth.WithLogger(log))

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	limiter, err := ratelimit.NewBucket(limitCfg)
	if err != nil {
		return err
	}
	defer limiter.Close()

	api := httpapi.NewAPI(apiCfg, service, cookies,
		httpapi.WithLogger(log),
		httpapi.WithRateLimiter(limiter),
		httpapi.WithHealthcheck(mongo.Healthcheck(db.Client())),
	)
	server := httpserver.New(httpCfg, log)
	return server.Run(ctx, api.Router(forge))
}
