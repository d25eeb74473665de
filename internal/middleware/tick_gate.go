package middleware

import (
	"fmt"
	"sync"
	"time"

	"LiskPredict/internal/domain/models"
	drepo "LiskPredict/internal/domain/repository"
)

// TickGate sits between the market feed and the price history. It rejects
// malformed ticks and throttles per-symbol bursts so a misbehaving feed
// cannot churn the rolling window faster than the indicators can use it.
type TickGate struct {
	metrics  drepo.Metrics
	maxRPS   int
	mu       sync.Mutex
	lastSeen map[string]time.Time
}

type GateOption func(*TickGate)

// WithMaxRPS caps accepted ticks per symbol per second.
func WithMaxRPS(n int) GateOption {
	return func(g *TickGate) {
		if n > 0 {
			g.maxRPS = n
		}
	}
}

// NewTickGate creates a gate with a default per-symbol throttle.
func NewTickGate(metrics drepo.Metrics, opts ...GateOption) *TickGate {
	g := &TickGate{
		metrics:  metrics,
		maxRPS:   50,
		lastSeen: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Admit reports whether the tick should reach the price history. A
// malformed tick returns an error; a throttled one is dropped silently
// with only a metric recorded.
func (g *TickGate) Admit(t *models.Tick) (bool, error) {
	if err := validateTick(t); err != nil {
		g.metrics.RecordError("tick_validate")
		return false, err
	}
	if !g.allow(t.Symbol, time.Now()) {
		g.metrics.RecordError("tick_throttle")
		return false, nil
	}
	return true, nil
}

func validateTick(t *models.Tick) error {
	if t == nil {
		return fmt.Errorf("tick nil")
	}
	if t.Symbol == "" {
		return fmt.Errorf("symbol empty")
	}
	if t.Time.IsZero() {
		return fmt.Errorf("timestamp invalid")
	}
	if t.Price <= 0 || t.Volume < 0 {
		return fmt.Errorf("invalid price/volume")
	}
	return nil
}

// allow admits at most maxRPS ticks per symbol per second.
func (g *TickGate) allow(symbol string, now time.Time) bool {
	if g.maxRPS <= 0 {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	last := g.lastSeen[symbol]
	if !last.IsZero() && now.Sub(last) < time.Second/time.Duration(g.maxRPS) {
		return false
	}
	g.lastSeen[symbol] = now
	return true
}
