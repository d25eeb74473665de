package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "LiskPredict/internal/domain/repository"
	"LiskPredict/internal/usecase"
	pkgch "LiskPredict/pkg/clickhouse"
	"LiskPredict/pkg/config"
	xhttp "LiskPredict/pkg/http"
	pkgkafka "LiskPredict/pkg/kafka"
	applogger "LiskPredict/pkg/logger"
	"LiskPredict/pkg/queue"
)

// App encapsulates the application lifecycle: the price feed, the optional
// Kafka ingest, the HTTP API and the async sinks, brought up together and
// torn down in reverse.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	collector   *usecase.TickCollector
	consumer    *pkgkafka.Consumer
	ticksIn     pkgkafka.MessageHandler
	chClient    *pkgch.Client
	store       drepo.PredictionStore
	publisher   drepo.Publisher
	jobQueue    *queue.Queue
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
}

// New creates the App from its wired dependencies. collector, consumer,
// chClient, store and publisher are all optional; the app runs with
// whatever subset the configuration enabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	ticksIn pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	store drepo.PredictionStore,
	publisher drepo.Publisher,
	jobQueue *queue.Queue,
	httpHandler xhttp.Handler,
) *App {
	return &App{
		cfg:         cfg,
		logger:      l,
		collector:   collector,
		consumer:    consumer,
		ticksIn:     ticksIn,
		chClient:    chClient,
		store:       store,
		publisher:   publisher,
		jobQueue:    jobQueue,
		httpHandler: httpHandler,
	}
}

// Run starts every enabled component and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.store != nil {
		if err := a.store.Init(ctx); err != nil {
			return err
		}
	}

	a.httpServer = xhttp.NewServer(a.httpHandler, a.logger,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				a.logger.Error("collector start error", applogger.Error(err))
			}
		}()
		a.logger.Info("tick collector started", applogger.Strings("symbols", a.cfg.Feed.Symbols))
	}

	if a.consumer != nil && a.ticksIn != nil {
		a.consumer.RegisterHandler(a.ticksIn)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.logger.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.logger.Info("kafka tick ingest started", applogger.String("topic", a.ticksIn.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown stops intake first, drains the queue, then closes the sinks.
func (a *App) shutdown(ctx context.Context) error {
	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			a.logger.Warn("collector stop error", applogger.Error(err))
		}
	}
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	// queue last among producers of work, sinks after it
	if a.jobQueue != nil {
		a.jobQueue.Close()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
