package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"LiskPredict/internal/domain/models"
	"LiskPredict/internal/domain/repository"
)

const predictionsSchema = `
CREATE TABLE IF NOT EXISTS %s (
    symbol      LowCardinality(String),
    ts          DateTime64(3),
    current     Float64,
    short_term  Float64,
    medium_term Float64,
    long_term   Float64,
    confidence  Float64,
    action      LowCardinality(String),
    risk_level  LowCardinality(String)
) ENGINE = MergeTree
ORDER BY (symbol, ts)
TTL toDateTime(ts) + INTERVAL 90 DAY`

// ClickHousePredictionStore implements PredictionStore on ClickHouse.
type ClickHousePredictionStore struct {
	db    *sql.DB
	table string
}

// NewClickHousePredictionStore creates ClickHouse-backed prediction storage.
func NewClickHousePredictionStore(db *sql.DB, table string) repository.PredictionStore {
	if table == "" {
		table = "predictions"
	}
	return &ClickHousePredictionStore{db: db, table: table}
}

func (s *ClickHousePredictionStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(predictionsSchema, s.table))
	if err != nil {
		return fmt.Errorf("init predictions schema: %w", err)
	}
	return nil
}

func (s *ClickHousePredictionStore) Store(ctx context.Context, p *models.Prediction) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (symbol, ts, current, short_term, medium_term, long_term, confidence, action, risk_level) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.table,
	)
	_, err := s.db.ExecContext(ctx, q,
		p.Symbol,
		time.UnixMilli(p.Timestamp),
		p.Price.Current,
		p.Price.Prediction.ShortTerm,
		p.Price.Prediction.MediumTerm,
		p.Price.Prediction.LongTerm,
		p.Confidence.Confidence,
		string(p.Confidence.Recommendation.Action),
		string(p.Confidence.Risk.Level),
	)
	return err
}

func (s *ClickHousePredictionStore) Latest(ctx context.Context, symbol string, limit int, since time.Time) ([]models.PredictionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	q := fmt.Sprintf(
		"SELECT symbol, ts, current, short_term, medium_term, long_term, confidence, action, risk_level FROM %s WHERE symbol = ?",
		s.table,
	)
	args := []interface{}{symbol}
	if !since.IsZero() {
		q += " AND ts >= ?"
		args = append(args, since)
	}
	q += " ORDER BY ts DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.PredictionRecord
	for rows.Next() {
		var r models.PredictionRecord
		var ts time.Time
		if err := rows.Scan(&r.Symbol, &ts, &r.Current, &r.ShortTerm, &r.MediumTerm, &r.LongTerm, &r.Confidence, &r.Action, &r.RiskLevel); err != nil {
			return nil, err
		}
		r.Timestamp = ts.UnixMilli()
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *ClickHousePredictionStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHousePredictionStore) Close() error {
	return nil // connection owned by pkg/clickhouse
}
