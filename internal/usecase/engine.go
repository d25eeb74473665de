package usecase

import (
	"context"
	"time"

	"LiskPredict/internal/domain/models"
	drepo "LiskPredict/internal/domain/repository"
	"LiskPredict/internal/services/analysis"
	"LiskPredict/internal/services/sentiment"
	"LiskPredict/internal/services/technical"
	xhttp "LiskPredict/pkg/http"
	applogger "LiskPredict/pkg/logger"
	"LiskPredict/pkg/queue"

	"github.com/go-playground/validator/v10"
)

// MsgPredictionCreated is the queue message type carrying a freshly
// generated prediction to the store and publish jobs.
const MsgPredictionCreated = "prediction.created"

// Price movement weights per factor and per horizon. The three factor
// weights sum to 1 so the movement factor stays within [-1, 1].
const (
	technicalWeight  = 0.4
	sentimentWeight  = 0.3
	confidenceWeight = 0.3

	shortHorizonScale  = 0.05
	mediumHorizonScale = 0.15
	longHorizonScale   = 0.3
)

// PredictionEngine fuses the technical, sentiment and confidence analyzers
// into a single validated prediction per symbol. Persisting and publishing
// the result happens off the request path through the job queue.
type PredictionEngine struct {
	history    drepo.PriceHistory
	technical  *technical.Analyzer
	sentiment  *sentiment.Analyzer
	confidence *analysis.ConfidenceAnalyzer
	queue      queue.QueueService
	metrics    drepo.Metrics
	logger     *applogger.Logger
	validate   *validator.Validate
	window     int
}

// NewPredictionEngine creates the engine. queue may be nil when no async
// sink is configured; predictions are then returned but not persisted.
func NewPredictionEngine(
	history drepo.PriceHistory,
	ta *technical.Analyzer,
	sa *sentiment.Analyzer,
	ca *analysis.ConfidenceAnalyzer,
	q queue.QueueService,
	metrics drepo.Metrics,
	l *applogger.Logger,
	window int,
) *PredictionEngine {
	if window <= 0 {
		window = 120
	}
	return &PredictionEngine{
		history:    history,
		technical:  ta,
		sentiment:  sa,
		confidence: ca,
		queue:      q,
		metrics:    metrics,
		logger:     l,
		validate:   xhttp.Validator(),
		window:     window,
	}
}

// Predict produces a full prediction for the symbol over the requested
// price window. Sentiment and technical analysis run concurrently; the
// first failure cancels the other and is returned as-is so callers can
// map it to a transport status.
func (e *PredictionEngine) Predict(ctx context.Context, symbol string, window int) (*models.Prediction, error) {
	start := time.Now()
	if window <= 0 {
		window = e.window
	}

	prices := e.history.Window(symbol, window)
	current, ok := e.history.Last(symbol)
	if !ok {
		return nil, &models.InsufficientDataError{Indicator: "price", Need: 1, Got: 0}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	techCh := make(chan models.TechnicalAnalysis, 1)
	sentCh := make(chan *models.SentimentAnalysis, 1)
	errCh := make(chan error, 2)

	go func() {
		ta, err := e.technical.Analyze(symbol, prices)
		if err != nil {
			errCh <- err
			cancel()
			return
		}
		techCh <- ta
	}()
	go func() {
		sa, err := e.sentiment.Analyze(ctx, symbol)
		if err != nil {
			errCh <- err
			cancel()
			return
		}
		sentCh <- sa
	}()

	var (
		tech models.TechnicalAnalysis
		sent *models.SentimentAnalysis
	)
	for i := 0; i < 2; i++ {
		select {
		case tech = <-techCh:
		case sent = <-sentCh:
		case err := <-errCh:
			e.metrics.RecordError("prediction")
			return nil, err
		}
	}

	conf := e.confidence.Analyze(&tech, sent)

	p := &models.Prediction{
		Symbol:     symbol,
		Timestamp:  time.Now().UnixMilli(),
		Technical:  tech,
		Sentiment:  *sent,
		Confidence: conf,
		Price: models.PriceOutlook{
			Current:    current,
			Prediction: priceTargets(current, &tech, sent, &conf),
		},
	}

	// Schema conformance is a hard error; a malformed prediction is never
	// repaired or served.
	if err := e.validate.StructCtx(ctx, p); err != nil {
		e.metrics.RecordError("prediction_schema")
		return nil, &models.ValidationError{Subject: "prediction", Err: err}
	}

	e.metrics.RecordPrediction(symbol, string(conf.Recommendation.Action))
	e.metrics.RecordLatency("predict", time.Since(start).Seconds())
	e.logger.Info("prediction generated",
		applogger.String("symbol", symbol),
		applogger.String("action", string(conf.Recommendation.Action)),
		applogger.Float64("confidence", conf.Confidence),
	)

	if e.queue != nil {
		if err := e.queue.PublishMessage(ctx, MsgPredictionCreated, p); err != nil {
			// async sinks never fail the caller
			e.metrics.RecordError("queue")
			e.logger.Warn("prediction enqueue failed", applogger.Error(err))
		}
	}
	return p, nil
}

// AnalyzeTechnical runs the technical analyzer alone over the symbol's
// recent prices.
func (e *PredictionEngine) AnalyzeTechnical(ctx context.Context, symbol string, window int) (*models.TechnicalAnalysis, error) {
	if window <= 0 {
		window = e.window
	}
	ta, err := e.technical.Analyze(symbol, e.history.Window(symbol, window))
	if err != nil {
		return nil, err
	}
	return &ta, nil
}

// AnalyzeSentiment runs the sentiment fan-out alone.
func (e *PredictionEngine) AnalyzeSentiment(ctx context.Context, symbol string) (*models.SentimentAnalysis, error) {
	return e.sentiment.Analyze(ctx, symbol)
}

// RefreshAnalysis drops cached sentiment for the symbol so the next
// prediction re-fetches every source.
func (e *PredictionEngine) RefreshAnalysis(ctx context.Context, symbol string) error {
	return e.sentiment.Refresh(ctx, symbol)
}

// priceTargets projects the current price over three horizons from a
// weighted blend of the trend, the news polarity and the recommendation.
// A neutral trend or a hold recommendation contributes nothing rather
// than dragging the projection down.
func priceTargets(current float64, tech *models.TechnicalAnalysis, sent *models.SentimentAnalysis, conf *models.ConfidenceAssessment) models.PriceTargets {
	technicalFactor := tech.Trend.Strength * directionSign(tech.Trend.Direction)
	sentimentFactor := sent.News.Overall * 0.5
	confidenceFactor := conf.Confidence * actionSign(conf.Recommendation.Action)

	movement := technicalFactor*technicalWeight +
		sentimentFactor*sentimentWeight +
		confidenceFactor*confidenceWeight

	return models.PriceTargets{
		ShortTerm:  current * (1 + movement*shortHorizonScale),
		MediumTerm: current * (1 + movement*mediumHorizonScale),
		LongTerm:   current * (1 + movement*longHorizonScale),
	}
}

func directionSign(d models.TrendDirection) float64 {
	switch d {
	case models.TrendBullish:
		return 1
	case models.TrendBearish:
		return -1
	default:
		return 0
	}
}

func actionSign(a models.Action) float64 {
	switch a {
	case models.ActionBuy:
		return 1
	case models.ActionSell:
		return -1
	default:
		return 0
	}
}
