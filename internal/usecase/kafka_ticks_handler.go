package usecase

import (
	"context"
	"encoding/json"
	"time"

	"LiskPredict/internal/domain/models"
	drepo "LiskPredict/internal/domain/repository"
	mid "LiskPredict/internal/middleware"
	pkgkafka "LiskPredict/pkg/kafka"
)

// KafkaTicksHandler ingests ticks from a Kafka topic into the rolling price
// history. It is the alternative to the WebSocket collector for deployments
// that already land market data on a broker.
type KafkaTicksHandler struct {
	topic   string
	history drepo.PriceHistory
	gate    *mid.TickGate
	metrics drepo.Metrics
}

func NewKafkaTicksHandler(topic string, history drepo.PriceHistory, gate *mid.TickGate, metrics drepo.Metrics) *KafkaTicksHandler {
	return &KafkaTicksHandler{topic: topic, history: history, gate: gate, metrics: metrics}
}

func (h *KafkaTicksHandler) Topic() string { return h.topic }

// incoming message schema: {symbol, t, c, v} with t in seconds or millis
func (h *KafkaTicksHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Symbol string  `json:"symbol"`
		T      int64   `json:"t"`
		C      float64 `json:"c"`
		V      float64 `json:"v"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.T > 1e11 { // ms
		m.T = m.T / 1000
	}
	at := time.Unix(m.T, 0)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(at).Seconds())

	if h.gate != nil {
		tick := &models.Tick{Symbol: m.Symbol, Price: m.C, Volume: m.V, Time: at}
		ok, err := h.gate.Admit(tick)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	h.history.Append(m.Symbol, m.C, m.V, at)
	h.metrics.RecordLastPrice(m.Symbol, m.C)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaTicksHandler)(nil)
