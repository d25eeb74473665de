package models

// TrendDirection classifies the price trend relative to its moving averages.
type TrendDirection string

const (
	TrendBullish TrendDirection = "bullish"
	TrendBearish TrendDirection = "bearish"
	TrendNeutral TrendDirection = "neutral"
)

// MACD holds the MACD line, its 9-period signal line and their difference.
type MACD struct {
	Value     float64 `json:"value"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerBands holds the 20-period SMA and its 2-sigma envelope.
type BollingerBands struct {
	Upper  float64 `json:"upper" validate:"gtefield=Lower"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// VolumeProfile summarizes current activity against the series average.
// Trend is the relative change across the whole window.
type VolumeProfile struct {
	Current float64 `json:"current"`
	Average float64 `json:"average"`
	Trend   float64 `json:"trend"`
}

// Indicators groups the computed technical indicators.
type Indicators struct {
	RSI            float64        `json:"rsi" validate:"gte=0,lte=100"`
	MACD           MACD           `json:"macd"`
	BollingerBands BollingerBands `json:"bollingerBands"`
	Volume         VolumeProfile  `json:"volume"`
}

// Trend describes direction and normalized strength in [0,1].
type Trend struct {
	Direction TrendDirection `json:"direction" validate:"oneof=bullish bearish neutral"`
	Strength  float64        `json:"strength" validate:"gte=0,lte=1"`
}

// TechnicalAnalysis is the full output of the technical analyzer for one
// price series. It is produced fresh per call and never persisted by the core.
type TechnicalAnalysis struct {
	Indicators Indicators `json:"indicators"`
	Patterns   []string   `json:"patterns" validate:"dive,oneof=double_top double_bottom head_and_shoulders ascending_triangle descending_triangle"`
	Support    []float64  `json:"support"`
	Resistance []float64  `json:"resistance"`
	Trend      Trend      `json:"trend"`
}
