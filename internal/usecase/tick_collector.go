package usecase

import (
	"context"
	"time"

	"LiskPredict/internal/domain/models"
	drepo "LiskPredict/internal/domain/repository"
	mid "LiskPredict/internal/middleware"
	applogger "LiskPredict/pkg/logger"
)

// TickCollector pulls ticks from the market stream and feeds the rolling
// price history the prediction engine reads from.
type TickCollector struct {
	stream  drepo.TickStream
	history drepo.PriceHistory
	gate    *mid.TickGate
	metrics drepo.Metrics
	logger  *applogger.Logger

	retryDelay time.Duration
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewTickCollector creates a new TickCollector instance. gate may be nil
// to admit every tick unconditionally.
func NewTickCollector(stream drepo.TickStream, history drepo.PriceHistory, gate *mid.TickGate, metrics drepo.Metrics, l *applogger.Logger) *TickCollector {
	return &TickCollector{
		stream:     stream,
		history:    history,
		gate:       gate,
		metrics:    metrics,
		logger:     l,
		retryDelay: time.Second,
	}
}

// IsConnected returns true if the market stream is connected.
func (c *TickCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *TickCollector) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	tickCh, errCh := c.stream.Read(ctx)
	c.done = make(chan struct{})
	go c.consume(ctx, tickCh, errCh)
	return nil
}

func (c *TickCollector) consume(ctx context.Context, tickCh <-chan *models.Tick, errCh <-chan error) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			// the stream's read loop exits after any failure, so a
			// delivered error and a closed channel both mean the feed is
			// dead and needs a fresh Read after reconnecting
			if err != nil {
				c.metrics.RecordError("stream")
				c.logger.Warn("collector: stream error, reconnecting", applogger.Error(err))
			} else if ok {
				continue
			}
			tickCh, errCh = c.resume(ctx)
			if errCh == nil {
				return
			}
		case t, ok := <-tickCh:
			if !ok {
				// errCh drives the reconnect; a nil channel never fires
				tickCh = nil
				continue
			}
			if t == nil {
				continue
			}
			if c.gate != nil {
				ok, err := c.gate.Admit(t)
				if err != nil {
					c.logger.Debug("collector: tick rejected", applogger.Error(err))
					continue
				}
				if !ok {
					continue
				}
			}
			c.history.Append(t.Symbol, t.Price, t.Volume, t.Time)
			c.metrics.RecordLastPrice(t.Symbol, t.Price)
		}
	}
}

// resume reconnects until it succeeds or the context ends, then reopens
// the stream's channels. Returns nil channels when the collector should
// stop instead.
func (c *TickCollector) resume(ctx context.Context) (<-chan *models.Tick, <-chan error) {
	for {
		if ctx.Err() != nil {
			return nil, nil
		}
		if err := c.stream.Reconnect(ctx); err != nil {
			c.metrics.RecordError("stream")
			c.logger.Error("collector: reconnect failed", applogger.Error(err))
			select {
			case <-ctx.Done():
				return nil, nil
			case <-time.After(c.retryDelay):
			}
			continue
		}
		c.logger.Info("collector: stream reconnected")
		return c.stream.Read(ctx)
	}
}

// Shutdown stops the consume loop and closes the stream.
func (c *TickCollector) Shutdown(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}
	err := c.stream.Close()
	if c.done != nil {
		select {
		case <-c.done:
		case <-ctx.Done():
		}
	}
	return err
}
