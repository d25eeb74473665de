package repository

import (
	"context"
	"time"

	"LiskPredict/internal/domain/models"
)

// TickStream is a live market price feed.
type TickStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Tick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Publisher emits generated predictions to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, p *models.Prediction) error
	Close() error
}

// PredictionStore persists generated predictions for the history API.
type PredictionStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, p *models.Prediction) error
	Latest(ctx context.Context, symbol string, limit int, since time.Time) ([]models.PredictionRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// PriceHistory serves rolling per-symbol price windows, oldest first.
type PriceHistory interface {
	Append(symbol string, price, volume float64, at time.Time)
	Window(symbol string, n int) []float64
	Last(symbol string) (float64, bool)
}

// Metrics records operational measurements.
type Metrics interface {
	RecordPrediction(symbol string, action string)
	RecordError(kind string)
	RecordCache(tier string, hit bool)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
