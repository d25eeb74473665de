package technical

import (
	"math"

	"LiskPredict/internal/domain/models"
)

// All indicator code treats price series as oldest-first; the newest price is
// the last element. Windows are taken from the tail of the series.

const (
	rsiPeriod  = 14
	bollPeriod = 20
	macdFast   = 12
	macdSlow   = 26
	macdSpan   = 9
	trendFast  = 20
	trendSlow  = 50
)

// minSeriesLen is the window required by the slowest enabled indicator
// (the MACD long EMA).
const minSeriesLen = macdSlow

// rsi computes the Relative Strength Index over the most recent `period`
// deltas. A window with no losses yields exactly 100.
func rsi(prices []float64, period int) float64 {
	deltas := prices[len(prices)-period-1:]

	var gains, losses float64
	for i := 1; i < len(deltas); i++ {
		diff := deltas[i] - deltas[i-1]
		if diff >= 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ema computes an exponential moving average across the whole series,
// seeded with the first element.
func ema(prices []float64, period int) float64 {
	multiplier := 2 / (float64(period) + 1)
	v := prices[0]
	for i := 1; i < len(prices); i++ {
		v = (prices[i]-v)*multiplier + v
	}
	return v
}

// emaSeries records the running EMA at every index, seeded with the first
// element. Needed to build a MACD-line history for the signal line.
func emaSeries(prices []float64, period int) []float64 {
	multiplier := 2 / (float64(period) + 1)
	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = (prices[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}

// macd computes the MACD line as EMA12-EMA26 and the signal as a 9-period
// EMA over the MACD-line history derived from the same price series. A
// single-point signal would just collapse to the MACD value.
func macd(prices []float64) models.MACD {
	fast := emaSeries(prices, macdFast)
	slow := emaSeries(prices, macdSlow)

	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = fast[i] - slow[i]
	}

	value := line[len(line)-1]
	signal := ema(line, macdSpan)

	return models.MACD{
		Value:     value,
		Signal:    signal,
		Histogram: value - signal,
	}
}

// bollinger computes the 20-period SMA over the most recent window with a
// 2x population standard deviation envelope.
func bollinger(prices []float64, period int) models.BollingerBands {
	window := prices[len(prices)-period:]

	var sum float64
	for _, p := range window {
		sum += p
	}
	mid := sum / float64(period)

	var sq float64
	for _, p := range window {
		sq += (p - mid) * (p - mid)
	}
	sd := math.Sqrt(sq / float64(period))

	return models.BollingerBands{
		Upper:  mid + 2*sd,
		Middle: mid,
		Lower:  mid - 2*sd,
	}
}

// supportResistance scans for local extrema with a symmetric window of two
// on each side. Levels come out in discovery order, not deduplicated.
func supportResistance(prices []float64) (support, resistance []float64) {
	for i := 2; i < len(prices)-2; i++ {
		p := prices[i]
		if p < prices[i-1] && p < prices[i-2] && p < prices[i+1] && p < prices[i+2] {
			support = append(support, p)
		}
		if p > prices[i-1] && p > prices[i-2] && p > prices[i+1] && p > prices[i+2] {
			resistance = append(resistance, p)
		}
	}
	return support, resistance
}

// trend classifies direction against the EMA20/EMA50 stack. Strength is the
// relative distance from the slow EMA, clamped to [0,1].
func trend(prices []float64) models.Trend {
	fast := ema(prices, trendFast)
	slow := ema(prices, trendSlow)
	current := prices[len(prices)-1]

	direction := models.TrendNeutral
	var strength float64

	switch {
	case current > fast && fast > slow:
		direction = models.TrendBullish
		strength = (current - slow) / slow
	case current < fast && fast < slow:
		direction = models.TrendBearish
		strength = (slow - current) / slow
	}

	return models.Trend{
		Direction: direction,
		Strength:  math.Min(math.Abs(strength), 1),
	}
}
