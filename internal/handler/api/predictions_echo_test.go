package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LiskPredict/internal/domain/models"
	"LiskPredict/internal/services/analysis"
	"LiskPredict/internal/services/sentiment"
	"LiskPredict/internal/services/technical"
	"LiskPredict/internal/usecase"
	pkgcache "LiskPredict/pkg/cache"
	applogger "LiskPredict/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubNews struct{}

func (stubNews) FetchNews(context.Context, string) ([]models.NewsItem, error) { return nil, nil }

type stubSocial struct{}

func (stubSocial) FetchPosts(context.Context, string) ([]models.SocialPost, error) {
	return nil, nil
}

type stubChain struct{}

func (stubChain) FetchTransfers(context.Context, string) ([]models.ChainTransfer, error) {
	return nil, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordPrediction(string, string) {}
func (noopMetrics) RecordError(string)              {}
func (noopMetrics) RecordCache(string, bool)        {}
func (noopMetrics) RecordLastPrice(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)   {}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	history := usecase.NewPriceBook(200)
	now := time.Now()
	for i := 0; i < 60; i++ {
		history.Append("lsk", 100+float64(i), 10, now.Add(time.Duration(i)*time.Second))
	}

	lc := pkgcache.NewLayeredCache(nil)
	t.Cleanup(func() { lc.Close() })
	sc := sentiment.NewCache(lc, sentiment.DefaultTTLs(), l, noopMetrics{})
	sa := sentiment.NewAnalyzer(sc, sentiment.NewProcessor(), stubNews{}, stubSocial{}, stubChain{}, l)
	eng := usecase.NewPredictionEngine(history, technical.NewAnalyzer(l), sa, analysis.NewConfidenceAnalyzer(), nil, noopMetrics{}, l, 120)

	e := echo.New()
	NewPredictionsHandler(l, eng, nil, nil).RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPredictEndpoint(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/api/predictions/lsk")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status int `json:"status"`
		Data   struct {
			Symbol string `json:"symbol"`
			Price  struct {
				Current float64 `json:"current"`
			} `json:"price"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Symbol != "lsk" || resp.Data.Price.Current != 159 {
		t.Fatalf("unexpected payload: %+v", resp.Data)
	}
}

func TestPredictUnknownSymbolIsBadRequest(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/api/predictions/doge")

	if rec.Code != http.StatusOK {
		t.Fatalf("envelope status = %d", rec.Code)
	}
	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a symbol without prices", resp.Status)
	}
}

func TestPredictWindowValidation(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/api/predictions/lsk?window=5")

	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for window below the indicator minimum", resp.Status)
	}
}

func TestTechnicalEndpoint(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/api/technical/lsk")

	var resp struct {
		Status int `json:"status"`
		Data   struct {
			Trend struct {
				Direction string `json:"direction"`
			} `json:"trend"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusOK || resp.Data.Trend.Direction != "bullish" {
		t.Fatalf("unexpected technical payload: %+v", resp)
	}
}

func TestSentimentEndpoint(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/api/sentiment/lsk")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHistoryWithoutStoreIsUnavailable(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/api/predictions/lsk/history")

	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 without a configured store", resp.Status)
	}
}

func TestHistorySinceValidation(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/api/predictions/lsk/history?since=yesterday")

	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for an unparseable since", resp.Status)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodPost, "/api/predictions/lsk/refresh")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
