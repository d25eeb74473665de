package di

import (
	"context"
	"fmt"
	"time"

	"LiskPredict/internal/domain/repository"
	"LiskPredict/internal/handler/api"
	mid "LiskPredict/internal/middleware"
	internalrepo "LiskPredict/internal/repository"
	"LiskPredict/internal/service/feed"
	"LiskPredict/internal/service/sources"
	"LiskPredict/internal/services/analysis"
	"LiskPredict/internal/services/sentiment"
	"LiskPredict/internal/services/technical"
	"LiskPredict/internal/usecase"
	pkgcache "LiskPredict/pkg/cache"
	pkgch "LiskPredict/pkg/clickhouse"
	"LiskPredict/pkg/config"
	xhttp "LiskPredict/pkg/http"
	pkgkafka "LiskPredict/pkg/kafka"
	applogger "LiskPredict/pkg/logger"
	"LiskPredict/pkg/metrics"
	"LiskPredict/pkg/queue"
	"LiskPredict/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCacheService builds the layered sentiment cache. Redis is the
// durable tier; when it is disabled the cache runs memory-only.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	var durable pkgcache.Durable
	if cfg.Redis.Enabled {
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Redis.Host),
			pkgcache.WithRedisPort(cfg.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Redis.Password),
			pkgcache.WithRedisDB(cfg.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		durable = rc
	}
	return pkgcache.NewLayeredCache(durable,
		pkgcache.WithFastTierBound(cfg.Analysis.FastTierBound),
	), nil
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when the
// store is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		context.Background(),
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvidePredictionStore creates the ClickHouse prediction store, or nil
// when ClickHouse is disabled.
func ProvidePredictionStore(chClient *pkgch.Client) repository.PredictionStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHousePredictionStore(chClient.DB(), "predictions")
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
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

// ProvidePublisher creates the Kafka prediction publisher, or nil when no
// producer is configured.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates the tick-ingest consumer, used only when
// the feed source is kafka.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if cfg.Feed.Source != "kafka" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(l,
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvidePriceHistory creates the rolling per-symbol price window.
func ProvidePriceHistory(cfg *config.Config) repository.PriceHistory {
	// keep headroom beyond the default window so wider API requests
	// still get a full series
	return usecase.NewPriceBook(cfg.Analysis.HistoryWindow * 4)
}

// ProvideTickStream creates the WebSocket feed, used only when the feed
// source is websocket.
func ProvideTickStream(cfg *config.Config, l *applogger.Logger) repository.TickStream {
	if cfg.Feed.Source != "websocket" {
		return nil
	}
	return feed.New(
		cfg.Feed.APIKey,
		cfg.Feed.WebSocketURL,
		cfg.Feed.Symbols,
		cfg.Feed.ReconnectDelay,
		cfg.Feed.PingInterval,
		l,
	)
}

// ProvideTickGate creates the validation and throttle gate in front of the
// price history.
func ProvideTickGate(m repository.Metrics) *mid.TickGate {
	return mid.NewTickGate(m, mid.WithMaxRPS(50))
}

// ProvideTickCollector creates the stream collector, or nil without a stream.
func ProvideTickCollector(stream repository.TickStream, history repository.PriceHistory, gate *mid.TickGate, m repository.Metrics, l *applogger.Logger) *usecase.TickCollector {
	if stream == nil {
		return nil
	}
	return usecase.NewTickCollector(stream, history, gate, m, l)
}

// ProvideKafkaTicksHandler creates the broker-side tick ingest handler.
func ProvideKafkaTicksHandler(history repository.PriceHistory, gate *mid.TickGate, m repository.Metrics, cfg *config.Config) *usecase.KafkaTicksHandler {
	return usecase.NewKafkaTicksHandler(cfg.Kafka.TickTopic, history, gate, m)
}

// ProvideSentimentAnalyzer assembles the sentiment fan-out: fetchers,
// NLP scorer and the layered source cache.
func ProvideSentimentAnalyzer(cfg *config.Config, svc pkgcache.Service, m repository.Metrics, l *applogger.Logger) *sentiment.Analyzer {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.Analysis.FetchTimeout))

	ttls := sentiment.TTLs{
		News:    cfg.Analysis.CacheTTL.News,
		Social:  cfg.Analysis.CacheTTL.Social,
		OnChain: cfg.Analysis.CacheTTL.OnChain,
	}
	sc := sentiment.NewCache(svc, ttls, l, m)

	return sentiment.NewAnalyzer(
		sc,
		sentiment.NewProcessor(),
		sources.NewNewsClient(httpClient, cfg.Sources.News.BaseURL, cfg.Sources.News.APIKey),
		sources.NewSocialClient(httpClient, cfg.Sources.Social.BaseURL, cfg.Sources.Social.Subreddit),
		sources.NewChainClient(httpClient, cfg.Sources.Chain.BaseURL, cfg.Sources.Chain.APIKey),
		l,
		sentiment.WithFetchTimeout(cfg.Analysis.FetchTimeout),
	)
}

// ProvideJobQueue creates the async worker queue and registers the
// prediction sink jobs for whichever sinks are configured.
func ProvideJobQueue(store repository.PredictionStore, pub repository.Publisher, l *applogger.Logger) *queue.Queue {
	q := queue.New(queue.QueueConfig{Workers: 2, QueueSize: 256, RetryLimit: 2}, l)
	if store != nil {
		q.Register(usecase.NewStorePredictionJob(store, l))
	}
	if pub != nil {
		q.Register(usecase.NewPublishPredictionJob(pub, l))
	}
	return q
}

// ProvidePredictionEngine assembles the engine from the analyzers.
func ProvidePredictionEngine(
	history repository.PriceHistory,
	sa *sentiment.Analyzer,
	q *queue.Queue,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.PredictionEngine {
	return usecase.NewPredictionEngine(
		history,
		technical.NewAnalyzer(l),
		sa,
		analysis.NewConfidenceAnalyzer(),
		q,
		m,
		l,
		cfg.Analysis.HistoryWindow,
	)
}

// ProvideHTTPHandler creates the API handler.
func ProvideHTTPHandler(l *applogger.Logger, engine *usecase.PredictionEngine, store repository.PredictionStore, collector *usecase.TickCollector) xhttp.Handler {
	return api.NewPredictionsHandler(l, engine, store, collector)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaTicksHandler,
	chClient *pkgch.Client,
	store repository.PredictionStore,
	pub repository.Publisher,
	q *queue.Queue,
	handler xhttp.Handler,
) *server.App {
	var ticksIn pkgkafka.MessageHandler
	if consumer != nil {
		ticksIn = kh
	}

	// Ship deduplicated error-log digests through the broker when one is
	// configured for it.
	if lp, ok := pub.(applogger.Publisher); ok && cfg.Kafka.LogTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   time.Minute,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      lp,
		})
	}

	return server.New(cfg, l, collector, consumer, ticksIn, chClient, store, pub, q, handler)
}
