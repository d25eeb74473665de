package models

// PriceTargets are the projected prices per horizon.
type PriceTargets struct {
	ShortTerm  float64 `json:"shortTerm" validate:"gt=0"`
	MediumTerm float64 `json:"mediumTerm" validate:"gt=0"`
	LongTerm   float64 `json:"longTerm" validate:"gt=0"`
}

// PriceOutlook pairs the current price with the projections.
type PriceOutlook struct {
	Current    float64      `json:"current" validate:"gt=0"`
	Prediction PriceTargets `json:"prediction"`
}

// PredictionRecord is the compact persisted form of a prediction, as served
// by the history API.
type PredictionRecord struct {
	Symbol     string  `json:"symbol"`
	Timestamp  int64   `json:"timestamp"`
	Current    float64 `json:"current"`
	ShortTerm  float64 `json:"shortTerm"`
	MediumTerm float64 `json:"mediumTerm"`
	LongTerm   float64 `json:"longTerm"`
	Confidence float64 `json:"confidence"`
	Action     string  `json:"action"`
	RiskLevel  string  `json:"riskLevel"`
}

// Prediction is the final, immutable output of the engine. It is validated
// against its schema tags before being returned; a violation is a hard error.
type Prediction struct {
	Symbol     string               `json:"symbol" validate:"required"`
	Timestamp  int64                `json:"timestamp" validate:"gt=0"`
	Technical  TechnicalAnalysis    `json:"technical"`
	Sentiment  SentimentAnalysis    `json:"sentiment"`
	Confidence ConfidenceAssessment `json:"confidence"`
	Price      PriceOutlook         `json:"price"`
}
