package models

// Requests for prediction HTTP endpoints. Defined in domain for consistency and reuse.

type PredictRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	Window int    `query:"window" json:"window" default:"120" validate:"gte=26,lte=5000"`
}

type RefreshRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}

type SentimentRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}

type TechnicalRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	Window int    `query:"window" json:"window" default:"120" validate:"gte=26,lte=5000"`
}

type HistoryRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	Limit  int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
	Since  string `query:"since" json:"since"` // RFC3339 or unix seconds, parsed by the handler
}
