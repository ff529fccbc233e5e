// cmd/chatbot-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"storebot/internal/catalog"
	"storebot/internal/chatbot"
	"storebot/internal/common/config"
	"storebot/internal/common/database"
	"storebot/internal/common/logger"
	"storebot/internal/common/observability"
	"storebot/internal/history"
	"storebot/internal/server"
	"storebot/pkg/catalogfile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting chatbot server",
		zap.String("environment", cfg.App.Environment),
		zap.String("catalogBackend", cfg.Catalog.Backend),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	store, cleanup, err := buildCatalogStore(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("catalog store init failed", zap.Error(err))
	}
	defer cleanup()

	var historyLog *history.RedisLog
	if cfg.Chat.HistoryEnabled {
		redisClient, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis init failed", zap.Error(err))
		}
		defer redisClient.Close()

		if err := redisClient.Ping(ctx); err != nil {
			zapLog.Warn("redis unreachable at startup, history writes will be retried per request", zap.Error(err))
		}
		historyLog = history.NewRedisLog(redisClient.GetClient(), cfg.Chat.HistoryLimit)
	}

	chatCfg := chatbot.FromApp(cfg)
	extractor := chatbot.NewExtractor(chatCfg, log)
	resolver := chatbot.NewResolver(chatCfg, store, extractor, historyWriter(historyLog), log).WithObservability(obs)

	handlers := server.NewHandlers(resolver, historyReader(historyLog), log,
		time.Duration(cfg.Server.WriteTimeout)*time.Millisecond)
	router := server.NewRouter(handlers)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildCatalogStore selects the configured catalog backend.
func buildCatalogStore(ctx context.Context, cfg *config.Config, log logger.Logger) (catalog.Store, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Backend {
	case "elasticsearch":
		esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, noop, err
		}
		if err := esClient.Ping(); err != nil {
			log.Warn("elasticsearch unreachable at startup", map[string]interface{}{"error": err.Error()})
		}
		return catalog.NewElasticsearchStore(esClient.Client, cfg.Catalog.Index), noop, nil

	case "postgres":
		pgClient, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, noop, err
		}
		if err := pgClient.Ping(ctx); err != nil {
			log.Warn("postgres unreachable at startup", map[string]interface{}{"error": err.Error()})
		}
		return catalog.NewPostgresStore(pgClient.GetDB(), cfg.Catalog.Table), func() { pgClient.Close() }, nil

	default: // memory
		store := catalog.NewMemoryStore(nil)
		if cfg.Catalog.SeedFile != "" {
			cf, err := catalogfile.Load(cfg.Catalog.SeedFile)
			if err != nil {
				return nil, noop, err
			}
			store.Load(cf.Products)
			log.Info("memory catalog seeded", map[string]interface{}{
				"file":     cfg.Catalog.SeedFile,
				"products": store.Len(),
			})
		}
		return store, noop, nil
	}
}

// historyWriter keeps the resolver's optional dependency nil when history
// is disabled; a typed nil would defeat the resolver's nil check.
func historyWriter(l *history.RedisLog) chatbot.HistoryWriter {
	if l == nil {
		return nil
	}
	return l
}

func historyReader(l *history.RedisLog) server.HistoryReader {
	if l == nil {
		return nil
	}
	return l
}
