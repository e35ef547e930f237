package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/auth"
	"hotel_booking/internal/adapters/enrichment"
	"hotel_booking/internal/adapters/events"
	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/memory"
	mongostore "hotel_booking/internal/storage/mongo"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := openCatalog(cfg)
	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, serving uncached")
		}
		defer rc.Close()
		cache = rc
	}

	pub, err := events.New(cfg.EventsDriver, cfg.AMQPURL, cfg.KafkaBrokers)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.EventsDriver).Msg("events publisher init failed")
	}
	defer pub.Close()

	enrich := enrichment.New(cfg.DealsBase, cfg.WeatherBase, cfg.WeatherKey, cfg.EnrichmentRPS)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	q := app.NewQueryService(catalog, cache, cfg.CacheTTL, enrich)
	h := &server.Handlers{
		Q:        q,
		Bookings: app.NewBookingService(store, q, domain.NewBookingCalculator(time.Now), pub),
		Reviews:  app.NewReviewService(store, q, pub, time.Now),
		Accounts: app.NewAccountService(store, auth.BcryptHasher{Cost: cfg.BcryptCost}, tokens, pub, time.Now),
		Tokens:   tokens,
		Now:      time.Now,
	}

	srv := server.New(15 * time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openCatalog uses MySQL when a DSN is configured and the seeded in-process
// catalog otherwise.
func openCatalog(cfg shared.Config) domain.HotelCatalog {
	if cfg.MySQLDSN == "" {
		log.Warn().Msg("MYSQL_DSN not set, using in-memory sample catalog")
		return memory.NewCatalog(shared.SampleHotels()...)
	}
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")
	return mysqlrepo.New(db)
}

func openStore(ctx context.Context, cfg shared.Config) (domain.DocumentStore, func()) {
	if cfg.MongoURI == "" {
		log.Warn().Msg("MONGO_URI not set, bookings and accounts live in memory")
		return memory.NewStore(), func() {}
	}
	c, err := mongostore.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	if err := c.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo ping failed")
	}
	st := mongostore.NewStore(c.DB)
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes failed")
	}
	log.Info().Str("db", cfg.MongoDB).Msg("document store ok")
	return st, func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.Close(cctx)
	}
}
