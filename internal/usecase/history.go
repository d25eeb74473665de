package usecase

import (
	"sync"
	"time"

	"LiskPredict/pkg/util"
)

type pricePoint struct {
	price  float64
	volume float64
	at     time.Time
}

// PriceBook keeps a bounded rolling window of observed prices per symbol.
// The newest point sits at the end; Window returns oldest first, which is
// the order the indicator math expects.
type PriceBook struct {
	mu     sync.RWMutex
	cap    int
	series map[string][]pricePoint
}

// NewPriceBook creates a price book that retains at most cap points per
// symbol. A non-positive cap falls back to a sane default.
func NewPriceBook(cap int) *PriceBook {
	if cap <= 0 {
		cap = 120
	}
	return &PriceBook{
		cap:    cap,
		series: make(map[string][]pricePoint),
	}
}

// Append records a traded price for the symbol, evicting the oldest point
// once the window is full. Symbols are normalized so feed casing and API
// casing land in the same series.
func (b *PriceBook) Append(symbol string, price, volume float64, at time.Time) {
	key := util.NormalizeSymbol(symbol)

	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.series[key]
	if len(s) >= b.cap {
		// shift in place; the backing array is reused so appends stay
		// allocation-free at steady state
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	b.series[key] = append(s, pricePoint{price: price, volume: volume, at: at})
}

// Window returns up to n of the most recent prices, oldest first. The slice
// is a copy; callers may hold it across further appends.
func (b *PriceBook) Window(symbol string, n int) []float64 {
	key := util.NormalizeSymbol(symbol)

	b.mu.RLock()
	defer b.mu.RUnlock()

	s := b.series[key]
	if n <= 0 || n > len(s) {
		n = len(s)
	}
	out := make([]float64, n)
	for i, p := range s[len(s)-n:] {
		out[i] = p.price
	}
	return out
}

// Last returns the most recent price for the symbol, if any was observed.
func (b *PriceBook) Last(symbol string) (float64, bool) {
	key := util.NormalizeSymbol(symbol)

	b.mu.RLock()
	defer b.mu.RUnlock()

	s := b.series[key]
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1].price, true
}

// Size reports how many points are currently held for the symbol.
func (b *PriceBook) Size(symbol string) int {
	key := util.NormalizeSymbol(symbol)

	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.series[key])
}
