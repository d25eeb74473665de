package analysis

import (
	"math/rand"
	"reflect"
	"testing"

	"LiskPredict/internal/domain/models"
)

func bullishTechnical() *models.TechnicalAnalysis {
	return &models.TechnicalAnalysis{
		Indicators: models.Indicators{
			RSI: 75,
			MACD: models.MACD{
				Value:     1.2,
				Signal:    0.8,
				Histogram: 0.6,
			},
			BollingerBands: models.BollingerBands{
				Upper:  110,
				Middle: 100,
				Lower:  90,
			},
			Volume: models.VolumeProfile{
				Current: 105,
				Average: 100,
				Trend:   0.05,
			},
		},
		Patterns:   []string{},
		Support:    []float64{},
		Resistance: []float64{},
		Trend: models.Trend{
			Direction: models.TrendBullish,
			Strength:  0.6,
		},
	}
}

func positiveSentiment() *models.SentimentAnalysis {
	return &models.SentimentAnalysis{
		SocialMedia: models.SocialMedia{
			Reddit: models.PlatformSentiment{Sentiment: 0.6, Volume: 200, Trending: true},
		},
		News: models.News{
			Overall: 0.6,
			Sources: map[string]models.NewsSource{},
		},
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := NewConfidenceAnalyzer()
	first := a.Analyze(bullishTechnical(), positiveSentiment())
	second := a.Analyze(bullishTechnical(), positiveSentiment())
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same inputs produced different assessments")
	}
}

func TestBullishAlignmentRecommendsBuy(t *testing.T) {
	a := NewConfidenceAnalyzer()
	got := a.Analyze(bullishTechnical(), positiveSentiment())

	if got.Recommendation.Action != models.ActionBuy {
		t.Fatalf("action = %s, want buy", got.Recommendation.Action)
	}
	if got.Recommendation.Strength <= 0 {
		t.Fatalf("aligned buy should have positive strength, got %f", got.Recommendation.Strength)
	}
	if !contains(got.Signals.Combined, "bullish_alignment") {
		t.Fatalf("missing bullish_alignment, got %v", got.Signals.Combined)
	}
	if !contains(got.Signals.Technical, "overbought") {
		t.Fatalf("RSI 75 should tag overbought, got %v", got.Signals.Technical)
	}
	if !contains(got.Signals.Sentiment, "positive_news") {
		t.Fatalf("news 0.6 should tag positive_news, got %v", got.Signals.Sentiment)
	}
}

func TestNeutralAlignmentHolds(t *testing.T) {
	a := NewConfidenceAnalyzer()
	technical := bullishTechnical()
	technical.Trend.Direction = models.TrendNeutral
	sentiment := positiveSentiment()
	sentiment.News.Overall = 0.1

	got := a.Analyze(technical, sentiment)
	if got.Recommendation.Action != models.ActionHold {
		t.Fatalf("neutral alignment should hold, got %s", got.Recommendation.Action)
	}
	if got.Recommendation.Strength != 0 {
		t.Fatalf("hold strength = %f, want 0", got.Recommendation.Strength)
	}
}

func TestDisagreementHolds(t *testing.T) {
	a := NewConfidenceAnalyzer()
	sentiment := positiveSentiment()
	sentiment.News.Overall = -0.6

	got := a.Analyze(bullishTechnical(), sentiment)
	if got.Recommendation.Action != models.ActionHold {
		t.Fatalf("disagreement should hold, got %s", got.Recommendation.Action)
	}
}

func TestReversalPatternRiskAndTimeframe(t *testing.T) {
	a := NewConfidenceAnalyzer()
	technical := bullishTechnical()
	technical.Patterns = []string{"head_and_shoulders"}

	got := a.Analyze(technical, positiveSentiment())
	if !contains(got.Risk.Factors, "reversal_pattern") {
		t.Fatalf("missing reversal_pattern factor, got %v", got.Risk.Factors)
	}
	if got.Recommendation.Timeframe != models.TimeframeLong {
		t.Fatalf("timeframe = %s, want long_term", got.Recommendation.Timeframe)
	}
}

func TestStrongTrendMediumTimeframe(t *testing.T) {
	a := NewConfidenceAnalyzer()
	technical := bullishTechnical()
	technical.Trend.Strength = 0.85

	got := a.Analyze(technical, positiveSentiment())
	if got.Recommendation.Timeframe != models.TimeframeMedium {
		t.Fatalf("timeframe = %s, want medium_term", got.Recommendation.Timeframe)
	}
	if !contains(got.Risk.Factors, "strong_trend") {
		t.Fatalf("missing strong_trend factor, got %v", got.Risk.Factors)
	}
}

func TestRiskLevels(t *testing.T) {
	a := NewConfidenceAnalyzer()

	// Quiet inputs keep only the base risk.
	technical := bullishTechnical()
	technical.Indicators.BollingerBands = models.BollingerBands{Upper: 101, Middle: 100, Lower: 99}
	technical.Trend.Strength = 0.3
	sentiment := positiveSentiment()
	sentiment.News.Overall = 0.4

	got := a.Analyze(technical, sentiment)
	if got.Risk.Level != models.RiskMedium || got.Risk.Score != 0.5 {
		t.Fatalf("base risk = %s/%f, want medium/0.5", got.Risk.Level, got.Risk.Score)
	}

	// Pile on every factor.
	technical.Indicators.BollingerBands = models.BollingerBands{Upper: 120, Middle: 100, Lower: 80}
	technical.Indicators.Volume.Current = 10
	technical.Indicators.Volume.Average = 100
	technical.Patterns = []string{"head_and_shoulders"}
	technical.Trend.Strength = 0.9
	sentiment.News.Overall = 0.9

	got = a.Analyze(technical, sentiment)
	if got.Risk.Level != models.RiskHigh {
		t.Fatalf("stacked risk level = %s, want high", got.Risk.Level)
	}
	if got.Risk.Score != 1 {
		t.Fatalf("stacked risk score = %f, want clamped 1", got.Risk.Score)
	}
}

func TestBoundsFuzz(t *testing.T) {
	a := NewConfidenceAnalyzer()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		technical := &models.TechnicalAnalysis{
			Indicators: models.Indicators{
				RSI: rng.Float64() * 100,
				MACD: models.MACD{
					Value:     rng.NormFloat64(),
					Signal:    rng.NormFloat64(),
					Histogram: rng.NormFloat64(),
				},
				BollingerBands: models.BollingerBands{
					Upper:  100 + rng.Float64()*50,
					Middle: 100,
					Lower:  100 - rng.Float64()*50,
				},
				Volume: models.VolumeProfile{
					Current: rng.Float64() * 200,
					Average: rng.Float64() * 200,
				},
			},
			Patterns: []string{},
			Trend: models.Trend{
				Direction: models.TrendBullish,
				Strength:  rng.Float64(),
			},
		}
		sentiment := &models.SentimentAnalysis{
			SocialMedia: models.SocialMedia{
				Reddit: models.PlatformSentiment{
					Sentiment: rng.Float64()*2 - 1,
					Volume:    rng.Intn(5000),
				},
			},
			News: models.News{Overall: rng.Float64()*2 - 1},
		}

		got := a.Analyze(technical, sentiment)
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Fatalf("confidence out of bounds: %f", got.Confidence)
		}
		if got.Risk.Score < 0 || got.Risk.Score > 1 {
			t.Fatalf("risk score out of bounds: %f", got.Risk.Score)
		}
		if got.Recommendation.Strength < 0 || got.Recommendation.Strength > 1 {
			t.Fatalf("strength out of bounds: %f", got.Recommendation.Strength)
		}
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
