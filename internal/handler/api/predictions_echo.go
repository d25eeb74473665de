package api

import (
	"errors"
	"net/http"
	"time"

	"LiskPredict/internal/domain/models"
	drepo "LiskPredict/internal/domain/repository"
	"LiskPredict/internal/usecase"
	xhttp "LiskPredict/pkg/http"
	xmid "LiskPredict/pkg/http/middleware"
	applogger "LiskPredict/pkg/logger"
	"LiskPredict/pkg/util"

	"github.com/labstack/echo/v4"
)

// PredictionsHandler exposes the prediction engine over HTTP.
type PredictionsHandler struct {
	logger    *applogger.Logger
	engine    *usecase.PredictionEngine
	store     drepo.PredictionStore
	collector *usecase.TickCollector
}

// NewPredictionsHandler creates the handler. store and collector may be
// nil when persistence or the live feed are disabled; the affected routes
// then report unavailability instead of being dropped.
func NewPredictionsHandler(l *applogger.Logger, engine *usecase.PredictionEngine, store drepo.PredictionStore, collector *usecase.TickCollector) *PredictionsHandler {
	return &PredictionsHandler{logger: l, engine: engine, store: store, collector: collector}
}

func (h *PredictionsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.Use(xmid.RateLimit(xmid.NewRateLimiter(), 20, 10))
	g.GET("/predictions/:symbol", h.Predict)
	g.POST("/predictions/:symbol/refresh", h.Refresh)
	g.GET("/predictions/:symbol/history", h.History)
	g.GET("/sentiment/:symbol", h.Sentiment)
	g.GET("/technical/:symbol", h.Technical)
}

func (h *PredictionsHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p, err := h.engine.Predict(c.Request().Context(), req.Symbol, req.Window)
	if err != nil {
		return h.analysisError(c, err)
	}
	return xhttp.SuccessResponse(c, p)
}

func (h *PredictionsHandler) Refresh(c echo.Context) error {
	req := &models.RefreshRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.engine.RefreshAnalysis(c.Request().Context(), req.Symbol); err != nil {
		h.logger.Error("refresh failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "refreshed", "symbol": req.Symbol})
}

func (h *PredictionsHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	var since time.Time
	if req.Since != "" {
		ts, ok := util.ParseTime(req.Since)
		if !ok {
			return xhttp.BadRequestResponse(c, "since must be RFC3339 or unix seconds")
		}
		since = ts
	}
	if h.store == nil {
		return xhttp.UnavailableResponse(c, "prediction history is not configured")
	}

	records, err := h.store.Latest(c.Request().Context(), req.Symbol, req.Limit, since)
	if err != nil {
		h.logger.Error("history query failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, records, int64(len(records)))
}

func (h *PredictionsHandler) Sentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	sa, err := h.engine.AnalyzeSentiment(c.Request().Context(), req.Symbol)
	if err != nil {
		return h.analysisError(c, err)
	}
	return xhttp.SuccessResponse(c, sa)
}

func (h *PredictionsHandler) Technical(c echo.Context) error {
	req := &models.TechnicalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ta, err := h.engine.AnalyzeTechnical(c.Request().Context(), req.Symbol, req.Window)
	if err != nil {
		return h.analysisError(c, err)
	}
	return xhttp.SuccessResponse(c, ta)
}

func (h *PredictionsHandler) Health(c echo.Context) error {
	status := map[string]interface{}{"status": "ok"}
	if h.collector != nil {
		status["feed_connected"] = h.collector.IsConnected()
	}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		status["store"] = "ok"
	}
	return c.JSON(http.StatusOK, status)
}

// analysisError maps domain analysis failures onto transport statuses.
// Too little price data is the caller's problem, an unreachable sentiment
// source is a transient upstream failure, and a schema violation is ours.
func (h *PredictionsHandler) analysisError(c echo.Context, err error) error {
	var insufficient *models.InsufficientDataError
	if errors.As(err, &insufficient) {
		return xhttp.BadRequestResponse(c, insufficient.Error())
	}
	var fetch *models.SourceFetchError
	if errors.As(err, &fetch) {
		h.logger.Warn("sentiment source unavailable", applogger.Error(err))
		return xhttp.UnavailableResponse(c, fetch.Error())
	}
	var invalid *models.ValidationError
	if errors.As(err, &invalid) {
		h.logger.Error("prediction schema violation", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	h.logger.Error("analysis failed", applogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}

var _ xhttp.Handler = (*PredictionsHandler)(nil)
