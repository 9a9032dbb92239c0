package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"MiniShop/internal/api"
	"MiniShop/internal/auth"
	"MiniShop/internal/catalog"
	"MiniShop/internal/client"
	"MiniShop/internal/config"
	"MiniShop/internal/events"
	"MiniShop/internal/order"
	"MiniShop/pkg/kit"
)

const service = "ministore"

func main() {
	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, "").Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	var hooks []func(context.Context) error

	store, closeStore, err := openCatalogStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("catalog store", zap.Error(err))
	}
	hooks = append(hooks, closeStore)

	sink, stopSink := openEventSink(cfg, log)
	hooks = append(hooks, stopSink)

	reg := kit.NewRegistry()

	h := api.NewHandler(
		api.Deps{
			Catalog:  catalog.New(store),
			Accounts: auth.NewStore(),
			Clients:  client.NewRegistry(),
			Orders:   order.NewStore(),
			Events:   sink,
			Tokens:   auth.NewTokenMaker(cfg.JWTSecret, cfg.TokenTTL),
		},
		api.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       reg,
			MetricsToken:   cfg.MetricsToken,
			AuthRateLimit:  cfg.AuthRateLimit,
			AuthRateWindow: cfg.AuthRateWindow,
		},
	)

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log, hooks...); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// openCatalogStore uses Postgres when DATABASE_URL is set and the built-in
// price list otherwise. A Redis address puts a read-through cache in front.
func openCatalogStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalog.Store, func(context.Context) error, error) {
	var (
		store  catalog.Store = catalog.NewStore()
		closer []func() error
	)

	if cfg.DatabaseURL != "" {
		db, err := kit.OpenPostgres(ctx, cfg.DatabaseURL, cfg.DBConnectWait, log)
		if err != nil {
			return nil, nil, err
		}
		if err := catalog.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		store = catalog.NewPostgresStore(db)
		closer = append(closer, db.Close)
		log.Info("catalog backed by postgres")
	}

	if cfg.RedisAddr != "" {
		rc := kit.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis not reachable, cache misses will fall back to the store", zap.Error(err))
		}
		store = catalog.NewCachedStore(store, rc, cfg.RedisTTL, log)
		closer = append(closer, rc.Close)
		log.Info("catalog cache enabled", zap.String("redis_addr", cfg.RedisAddr), zap.Duration("ttl", cfg.RedisTTL))
	}

	return store, func(context.Context) error {
		var err error
		for _, c := range closer {
			err = errors.Join(err, c())
		}
		return err
	}, nil
}

// openEventSink relays payment events to Kafka when brokers are configured.
func openEventSink(cfg *config.Config, log *zap.Logger) (events.Sink, func(context.Context) error) {
	pub, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	if err != nil {
		log.Info("payment events disabled", zap.Error(err))
		return events.NopSink{}, func(context.Context) error { return nil }
	}

	relay := events.NewRelay(pub, cfg.EventQueueSize, log)
	log.Info("payment events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))

	return relay, func(context.Context) error {
		return errors.Join(relay.Stop(), pub.Close())
	}
}
