package technical

import (
	"errors"
	"testing"

	"LiskPredict/internal/domain/models"
)

func risingSeries(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	return prices
}

func flatSeries(n int, v float64) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = v
	}
	return prices
}

func TestAnalyzeRejectsShortSeries(t *testing.T) {
	a := NewAnalyzer(nil)
	_, err := a.Analyze("lsk", risingSeries(25))

	var insufficient *models.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("want InsufficientDataError, got %v", err)
	}
	if insufficient.Need != minSeriesLen || insufficient.Got != 25 {
		t.Fatalf("need/got = %d/%d, want %d/25", insufficient.Need, insufficient.Got, minSeriesLen)
	}
}

func TestAnalyzeUptrend(t *testing.T) {
	a := NewAnalyzer(nil)
	got, err := a.Analyze("lsk", risingSeries(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Indicators.RSI != 100 {
		t.Fatalf("RSI of a lossless window = %f, want 100", got.Indicators.RSI)
	}
	if got.Trend.Direction != models.TrendBullish {
		t.Fatalf("direction = %s, want bullish", got.Trend.Direction)
	}
	if got.Trend.Strength <= 0 {
		t.Fatalf("uptrend strength = %f, want > 0", got.Trend.Strength)
	}
	if got.Indicators.MACD.Value <= 0 {
		t.Fatalf("uptrend MACD = %f, want > 0", got.Indicators.MACD.Value)
	}
}

func TestAnalyzeFlatSeries(t *testing.T) {
	a := NewAnalyzer(nil)
	got, err := a.Analyze("lsk", flatSeries(60, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Trend.Direction != models.TrendNeutral || got.Trend.Strength != 0 {
		t.Fatalf("flat trend = %s/%f, want neutral/0", got.Trend.Direction, got.Trend.Strength)
	}
	bb := got.Indicators.BollingerBands
	if bb.Upper != 50 || bb.Middle != 50 || bb.Lower != 50 {
		t.Fatalf("zero-variance bands = %+v, want all 50", bb)
	}
	if len(got.Patterns) != 0 {
		t.Fatalf("flat series matched patterns %v", got.Patterns)
	}
	if len(got.Support) != 0 || len(got.Resistance) != 0 {
		t.Fatalf("flat series produced levels s=%v r=%v", got.Support, got.Resistance)
	}
	if got.Indicators.Volume.Average != 50 || got.Indicators.Volume.Trend != 0 {
		t.Fatalf("volume profile = %+v", got.Indicators.Volume)
	}
}

func TestMACDHistogramIdentity(t *testing.T) {
	m := macd(risingSeries(60))
	if m.Histogram != m.Value-m.Signal {
		t.Fatalf("histogram %f != value-signal %f", m.Histogram, m.Value-m.Signal)
	}
}

func TestBollingerMiddleIsWindowMean(t *testing.T) {
	prices := risingSeries(60)
	bb := bollinger(prices, bollPeriod)

	var sum float64
	for _, p := range prices[len(prices)-bollPeriod:] {
		sum += p
	}
	want := sum / bollPeriod
	if bb.Middle != want {
		t.Fatalf("middle = %f, want %f", bb.Middle, want)
	}
	if bb.Upper < bb.Middle || bb.Lower > bb.Middle {
		t.Fatalf("band ordering violated: %+v", bb)
	}
}

func TestSupportResistance(t *testing.T) {
	prices := []float64{1, 1, 1.2, 1, 1, 0.8, 1, 1, 1.2, 1, 1}
	support, resistance := supportResistance(prices)

	if len(support) != 1 || support[0] != 0.8 {
		t.Fatalf("support = %v, want [0.8]", support)
	}
	if len(resistance) != 2 {
		t.Fatalf("resistance = %v, want two peaks", resistance)
	}
}

func TestDoubleTop(t *testing.T) {
	prices := []float64{1, 1, 1.2, 1, 1, 0.9, 1, 1, 1.19, 1, 1}
	if !isDoubleTop(prices) {
		t.Fatal("twin peaks over a deep valley should match double_top")
	}

	// peaks too far apart in height
	uneven := []float64{1, 1, 1.2, 1, 1, 0.9, 1, 1, 1.05, 1, 1}
	if isDoubleTop(uneven) {
		t.Fatal("mismatched peaks should not match double_top")
	}
}

func TestDoubleBottom(t *testing.T) {
	prices := []float64{1, 1, 0.8, 1, 1, 1.1, 1, 1, 0.81, 1, 1}
	if !isDoubleBottom(prices) {
		t.Fatal("twin troughs under a crest should match double_bottom")
	}
}

func TestHeadAndShoulders(t *testing.T) {
	prices := []float64{1, 1, 1.1, 1, 1, 1.3, 1, 1, 1.12, 1, 1}
	if !isHeadAndShoulders(prices) {
		t.Fatal("dominant head between level shoulders should match")
	}

	// head barely above the shoulders
	weak := []float64{1, 1, 1.1, 1, 1, 1.12, 1, 1, 1.1, 1, 1}
	if isHeadAndShoulders(weak) {
		t.Fatal("flat head should not match")
	}
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities()
	if !caps[PatternDoubleTop] || !caps[PatternDoubleBottom] || !caps[PatternHeadAndShoulders] {
		t.Fatalf("implemented detectors misreported: %v", caps)
	}
	if caps[PatternAscendingTriangle] || caps[PatternDescendingTriangle] {
		t.Fatalf("triangle detectors should report unimplemented: %v", caps)
	}
}
