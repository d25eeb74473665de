package technical

import (
	"LiskPredict/internal/domain/models"
	applogger "LiskPredict/pkg/logger"
)

// Analyzer computes a full technical analysis from a price series. It is
// stateless; every call derives everything from the series it is handed.
type Analyzer struct {
	l *applogger.Logger
}

func NewAnalyzer(l *applogger.Logger) *Analyzer {
	return &Analyzer{l: l}
}

// Analyze produces the technical view for one oldest-first price series.
// Series shorter than the slowest indicator window are rejected outright
// instead of degrading into NaN-prone partial results.
func (a *Analyzer) Analyze(symbol string, prices []float64) (models.TechnicalAnalysis, error) {
	if len(prices) < minSeriesLen {
		return models.TechnicalAnalysis{}, &models.InsufficientDataError{
			Indicator: "macd",
			Need:      minSeriesLen,
			Got:       len(prices),
		}
	}

	support, resistance := supportResistance(prices)
	if support == nil {
		support = []float64{}
	}
	if resistance == nil {
		resistance = []float64{}
	}

	// Price stands in as the liquidity proxy until the feed carries real
	// traded volume per bar.
	current := prices[len(prices)-1]
	var sum float64
	for _, p := range prices {
		sum += p
	}

	analysis := models.TechnicalAnalysis{
		Indicators: models.Indicators{
			RSI:            rsi(prices, rsiPeriod),
			MACD:           macd(prices),
			BollingerBands: bollinger(prices, bollPeriod),
			Volume: models.VolumeProfile{
				Current: current,
				Average: sum / float64(len(prices)),
				Trend:   (current - prices[0]) / prices[0],
			},
		},
		Patterns:   detectPatterns(prices),
		Support:    support,
		Resistance: resistance,
		Trend:      trend(prices),
	}

	if a.l != nil {
		a.l.Debug("technical analysis computed",
			applogger.String("symbol", symbol),
			applogger.Int("prices", len(prices)),
			applogger.String("trend", string(analysis.Trend.Direction)),
		)
	}

	return analysis, nil
}
