package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/vdcfantasy/fantasy-api/internal/config"
	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
	"github.com/vdcfantasy/fantasy-api/internal/domain/player"
	"github.com/vdcfantasy/fantasy-api/internal/domain/roster"
	"github.com/vdcfantasy/fantasy-api/internal/domain/stats"
	"github.com/vdcfantasy/fantasy-api/internal/infrastructure/identity/gotrue"
	"github.com/vdcfantasy/fantasy-api/internal/infrastructure/repository/memory"
	"github.com/vdcfantasy/fantasy-api/internal/infrastructure/repository/postgres"
	"github.com/vdcfantasy/fantasy-api/internal/infrastructure/social/discord"
	"github.com/vdcfantasy/fantasy-api/internal/interfaces/httpapi"
	"github.com/vdcfantasy/fantasy-api/internal/platform/cache"
	idgen "github.com/vdcfantasy/fantasy-api/internal/platform/id"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
	"github.com/vdcfantasy/fantasy-api/internal/platform/resilience"
	"github.com/vdcfantasy/fantasy-api/internal/usecase"
)

// NewHTTPServer wires storage, external clients, usecases, and the HTTP
// layer into one server. The returned cleanup releases storage handles and
// must run after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		playerRepo   player.Repository
		rosterRepo   roster.Repository
		statsRepo    stats.Repository
		identityRepo identity.Repository
		cleanup      = func(context.Context) error { return nil }
	)

	if cfg.UseMemoryStore {
		players := memory.NewPlayerRepository()
		identities := memory.NewIdentityRepository()
		memory.Seed(players, identities)

		playerRepo = players
		rosterRepo = memory.NewRosterRepository()
		statsRepo = memory.NewStatsRepository()
		identityRepo = identities

		logger.Info("storage ready", "driver", "memory")
	} else {
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		if cfg.SeedOnStartup {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}

		playerRepo = postgres.NewPlayerRepository(db)
		rosterRepo = postgres.NewRosterRepository(db)
		statsRepo = postgres.NewStatsRepository(db)
		identityRepo = postgres.NewIdentityRepository(db)
		cleanup = func(context.Context) error { return db.Close() }

		logger.Info("storage ready", "driver", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	gotrueClient := gotrue.NewClient(gotrue.ClientConfig{
		BaseURL: cfg.GoTrueBaseURL,
		APIKey:  cfg.GoTrueAPIKey,
		Timeout: cfg.GoTrueTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GoTrueCircuitEnabled,
			FailureThreshold: cfg.GoTrueCircuitFailureCount,
			OpenTimeout:      cfg.GoTrueCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GoTrueCircuitHalfOpenMax,
		},
	})

	var connector usecase.SocialConnector
	if cfg.DiscordEnabled {
		connector = discord.NewClient(discord.ClientConfig{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
			Timeout:      cfg.DiscordTimeout,
			Logger:       logger,
		})
	}

	playerSvc := usecase.NewPlayerService(playerRepo, cacheStore, logger)
	teamSvc := usecase.NewTeamService(
		rosterRepo,
		identityRepo,
		roster.NewDeadline(cfg.LockDeadline),
		idgen.NewRandomGenerator(),
		logger,
	)
	statsSvc := usecase.NewStatsService(statsRepo, cfg.IngestPoolSize, logger)
	leaderboardSvc := usecase.NewLeaderboardService(rosterRepo, statsRepo, logger)
	identitySvc := usecase.NewIdentityService(identityRepo, gotrueClient, connector, logger)

	handler := httpapi.NewHandler(playerSvc, teamSvc, statsSvc, leaderboardSvc, identitySvc, logger)
	router := httpapi.NewRouter(handler, gotrueClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, cleanup, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, true)

	db, err := otelsqlx.ConnectContext(ctx, "postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
