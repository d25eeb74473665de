package models

// RiskLevel buckets the continuous risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Action is the trading recommendation.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Timeframe is the recommendation horizon.
type Timeframe string

const (
	TimeframeShort  Timeframe = "short_term"
	TimeframeMedium Timeframe = "medium_term"
	TimeframeLong   Timeframe = "long_term"
)

// Risk carries the score in [0,1], its bucket and the contributing factors.
type Risk struct {
	Level   RiskLevel `json:"level" validate:"oneof=low medium high"`
	Score   float64   `json:"score" validate:"gte=0,lte=1"`
	Factors []string  `json:"factors"`
}

// Signals groups categorical tags per origin plus cross-source alignments.
type Signals struct {
	Technical []string `json:"technical"`
	Sentiment []string `json:"sentiment"`
	Combined  []string `json:"combined"`
}

// Recommendation is the actionable output of the confidence analyzer.
type Recommendation struct {
	Action    Action    `json:"action" validate:"oneof=buy sell hold"`
	Strength  float64   `json:"strength" validate:"gte=0,lte=1"`
	Timeframe Timeframe `json:"timeframe" validate:"oneof=short_term medium_term long_term"`
}

// ConfidenceAssessment fuses technical and sentiment analyses. It is a pure
// function of its inputs, recomputed on every call.
type ConfidenceAssessment struct {
	Confidence     float64        `json:"confidence" validate:"gte=0,lte=1"`
	Risk           Risk           `json:"risk"`
	Signals        Signals        `json:"signals"`
	Recommendation Recommendation `json:"recommendation"`
}
