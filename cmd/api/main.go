package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/auth"
	"server/internal/circles"
	"server/internal/friends"
	"server/internal/http/handlers"
	"server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/middleware"
	"server/internal/vip"
	"server/internal/ws"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := infra.RunMigrations(ctx, cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	var country middleware.CountryLookup
	if geo != nil {
		country = geo.CountryCode
	}

	users := repo.NewUserRepository(pool)
	edges := repo.NewFriendshipRepository(pool)
	tiers := repo.NewVIPTierRepository(pool)
	circleStore := repo.NewCircleRepository(pool)
	posts := repo.NewPostRepository(pool)

	vipService := vip.NewService(users, tiers)
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	app := &handlers.App{
		Logger:  logger,
		Auth:    auth.NewService(users, []byte(cfg.JWTSecret), cfg.TokenTTL),
		Friends: friends.NewService(users, edges),
		VIP:     vipService,
		Circles: circles.NewService(users, circleStore, posts, vipService),
		Users:   users,
		Hub:     hub,
	}

	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app, cfg, country))

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
