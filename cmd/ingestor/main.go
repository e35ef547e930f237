package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/adapters/enrichment"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/memory"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

const dealsLimit = 20

func main() { os.Exit(run()) }

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("deals", cfg.DealsBase).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	var catalog domain.HotelCatalog
	if cfg.MySQLDSN == "" {
		log.Warn().Msg("MYSQL_DSN not set, dry run against an in-memory catalog")
		catalog = memory.NewCatalog()
	} else {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		defer db.Close()
		log.Info().Msg("db ping ok")
		catalog = mysqlrepo.New(db)
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	client := enrichment.New(cfg.DealsBase, cfg.WeatherBase, cfg.WeatherKey, cfg.EnrichmentRPS)
	ing := app.NewIngestionService(client, catalog, cache)

	hotels := shared.SampleHotels()
	deals, err := ing.FetchDeals(ctx, dealsLimit)
	if err != nil {
		log.Warn().Err(err).Msg("deals feed unavailable, ingesting sample catalog only")
	}
	hotels = append(hotels, deals...)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var failed atomic.Int64

	for _, h := range hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("ingestion interrupted")
			break
		}

		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := ing.IngestHotel(ctx, h); err != nil {
				failed.Add(1)
				log.Warn().Str("id", h.ID).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Str("id", h.ID).Str("name", h.Name).Msg("ingest ok")
		}(h)
	}

	wg.Wait()
	log.Info().
		Int("total", len(hotels)).
		Int("deals", len(deals)).
		Int64("failed", failed.Load()).
		Msg("ingestion completed")
	if failed.Load() > 0 {
		return 1
	}
	return 0
}
