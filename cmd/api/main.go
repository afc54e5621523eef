package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"stayfinder/internal/adapters/auth"
	server "stayfinder/internal/adapters/http_server"
	minioad "stayfinder/internal/adapters/minio"
	"stayfinder/internal/adapters/observability"
	redisad "stayfinder/internal/adapters/redis"
	"stayfinder/internal/app"
	"stayfinder/internal/shared"
	mysqlrepo "stayfinder/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	if err := mysqlrepo.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	log.Info().Msg("database ready")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	images, err := minioad.New(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
		cfg.MinioBucket, cfg.MinioPublicURL, cfg.MinioUseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("image store init failed")
	}
	if err := images.EnsureBucket(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("image bucket init failed")
	}
	verifier := auth.NewVerifier(cfg.JWTSecret)

	handlers := &server.Handlers{
		Search:   app.NewSearchService(repo, cache, cfg.CacheTTL),
		Listings: app.NewListingService(repo, images, cache, cfg.UploadTimeout),
		Bookings: app.NewBookingService(repo, repo, cache),
		Checker:  app.NewAvailabilityChecker(app.ParseOverlapPolicy(cfg.OverlapPolicy)),
		Users:    app.NewUserService(repo),
		Verify:   verifier,
	}

	// http
	reg := observability.InitRegistry()
	observability.ServeMetrics(cfg.MetricsAddr, reg)

	srv := server.New(cfg.RateRPS)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
