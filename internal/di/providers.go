package di

import (
	"context"
	"fmt"
	"os"
	"time"

	"WorldSim/internal/dataset"
	"WorldSim/internal/handler/api"
	"WorldSim/internal/handler/ws"
	"WorldSim/internal/repository"
	"WorldSim/internal/service/briefing"
	"WorldSim/internal/strategy"
	"WorldSim/internal/usecase"
	pkgcache "WorldSim/pkg/cache"
	pkgch "WorldSim/pkg/clickhouse"
	"WorldSim/pkg/config"
	xhttp "WorldSim/pkg/http"
	pkgkafka "WorldSim/pkg/kafka"
	applogger "WorldSim/pkg/logger"
	"WorldSim/pkg/metrics"
	"WorldSim/pkg/server"

	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

// ProvideLogger creates the structured logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		TimeFormat: cfg.Logging.TimeFormat,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when the dataset is
// served from ClickHouse, nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Dataset.Backend != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideDataset loads and validates the simulation table once at startup.
func ProvideDataset(cfg *config.Config, chClient *pkgch.Client, rec *metrics.Recorder) (*dataset.Dataset, error) {
	var (
		ds  *dataset.Dataset
		err error
	)
	switch cfg.Dataset.Backend {
	case "clickhouse":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err = chClient.Health(ctx); err != nil {
			return nil, fmt.Errorf("clickhouse health: %w", err)
		}
		ds, err = dataset.LoadClickHouse(ctx, chClient.DB(), cfg.Dataset.Table)
	default:
		ds, err = dataset.LoadCSV(cfg.Dataset.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	rec.SetDatasetRows(ds.NumRows())
	return ds, nil
}

// ProvideAnalyzer builds the strategy analyzer, with optional threshold
// calibration from a YAML file.
func ProvideAnalyzer(cfg *config.Config) (*strategy.Analyzer, error) {
	th := strategy.DefaultThresholds()
	if cfg.Strategy.ThresholdsFile != "" {
		b, err := os.ReadFile(cfg.Strategy.ThresholdsFile)
		if err != nil {
			return nil, fmt.Errorf("read thresholds: %w", err)
		}
		if err := yaml.Unmarshal(b, &th); err != nil {
			return nil, fmt.Errorf("parse thresholds: %w", err)
		}
	}
	return strategy.NewAnalyzer(th), nil
}

// ProvideRedisCache creates the Redis layer when configured, nil otherwise.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	if !cfg.Cache.Enabled || !cfg.Cache.Redis.Enabled {
		return nil, nil
	}
	opts := []pkgcache.RedisOption{
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix("worldsim"),
	}
	if cfg.Cache.Redis.Port != 0 {
		opts = append(opts, pkgcache.WithRedisPort(cfg.Cache.Redis.Port))
	}
	rc, err := pkgcache.NewRedisCache(opts...)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, nil
}

// ProvideCache creates the response cache. With Redis enabled the memory
// layer fronts it, otherwise a process-local cache is used.
func ProvideCache(cfg *config.Config, rc *pkgcache.RedisCache) pkgcache.Service {
	if !cfg.Cache.Enabled {
		return nil
	}
	if rc != nil {
		return pkgcache.NewLayeredCache(rc)
	}
	return pkgcache.NewMemoryCache()
}

// ProvideKafkaProducer creates a Kafka producer when run events are enabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideRunEvents creates the run event publisher, nil when Kafka is off.
func ProvideRunEvents(producer *pkgkafka.Producer, cfg *config.Config) repository.RunEvents {
	if producer == nil {
		return nil
	}
	return repository.NewKafkaRunEvents(producer, cfg.Kafka.Topic)
}

// ProvideSimulate creates the analysis use case with its optional layers.
func ProvideSimulate(
	ds *dataset.Dataset,
	analyzer *strategy.Analyzer,
	cache pkgcache.Service,
	events repository.RunEvents,
	rec *metrics.Recorder,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.Simulate {
	opts := []usecase.SimulateOption{}
	if cache != nil {
		ttl := cfg.Cache.TTL
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		opts = append(opts, usecase.WithCache(cache, ttl))
	}
	if events != nil {
		opts = append(opts, usecase.WithRunEvents(events))
	}
	return usecase.NewSimulate(ds, analyzer, rec, logger, opts...)
}

// ProvideBriefingClient creates the Ollama client, nil when disabled.
func ProvideBriefingClient(cfg *config.Config) *briefing.Client {
	if !cfg.Briefing.Enabled {
		return nil
	}
	timeout := cfg.Briefing.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return briefing.New(cfg.Briefing.BaseURL, timeout, cfg.Briefing.MaxPerMinute)
}

// routeSet fans route registration out to the REST and websocket handlers.
type routeSet struct {
	api  *api.WorldSimHandler
	feed *ws.FeedHandler
}

func (rs routeSet) RegisterRoutes(e *echo.Echo) {
	rs.api.RegisterRoutes(e)
	rs.feed.RegisterRoutes(e)
}

// ProvideHandler assembles all HTTP routes.
func ProvideHandler(
	logger *applogger.Logger,
	sim *usecase.Simulate,
	bc *briefing.Client,
) xhttp.Handler {
	return routeSet{
		api:  api.NewWorldSimHandler(logger, sim, bc),
		feed: ws.NewFeedHandler(logger, sim),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	redis *pkgcache.RedisCache,
	events repository.RunEvents,
) *server.App {
	app := server.New(cfg, logger, handler)
	app.SetClickHouse(chClient)
	app.SetRedis(redis)
	app.SetRunEvents(events)
	return app
}
