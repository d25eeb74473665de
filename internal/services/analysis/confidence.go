package analysis

import (
	"math"

	"LiskPredict/internal/domain/models"
)

const (
	baseConfidence = 0.5
	baseRisk       = 0.5

	patternHeadAndShoulders = "head_and_shoulders"
)

// ConfidenceAnalyzer fuses a technical and a sentiment analysis into a
// confidence score, risk assessment, signal tags and a recommendation.
// It is pure: the same inputs always produce the same assessment.
type ConfidenceAnalyzer struct{}

func NewConfidenceAnalyzer() *ConfidenceAnalyzer {
	return &ConfidenceAnalyzer{}
}

// Analyze computes the full assessment. Confidence is the mean of the
// technical and sentiment confidences.
func (a *ConfidenceAnalyzer) Analyze(technical *models.TechnicalAnalysis, sentiment *models.SentimentAnalysis) models.ConfidenceAssessment {
	technicalConfidence := technicalConfidence(technical)
	sentimentConfidence := sentimentConfidence(sentiment)
	confidence := (technicalConfidence + sentimentConfidence) / 2

	risk := riskScore(technical, sentiment)
	signals := generateSignals(technical, sentiment)
	recommendation := recommend(technical, sentiment, confidence, risk)

	return models.ConfidenceAssessment{
		Confidence:     confidence,
		Risk:           risk,
		Signals:        signals,
		Recommendation: recommendation,
	}
}

func technicalConfidence(t *models.TechnicalAnalysis) float64 {
	confidence := baseConfidence

	// Strong overbought/oversold reading
	if t.Indicators.RSI < 30 || t.Indicators.RSI > 70 {
		confidence += 0.1
	}

	// MACD momentum with line and signal agreeing in sign
	if math.Abs(t.Indicators.MACD.Histogram) > 0.5 &&
		t.Indicators.MACD.Value*t.Indicators.MACD.Signal > 0 {
		confidence += 0.1
	}

	// Price outside the Bollinger envelope
	current := t.Indicators.Volume.Current
	if current > t.Indicators.BollingerBands.Upper || current < t.Indicators.BollingerBands.Lower {
		confidence += 0.1
	}

	confidence += float64(len(t.Patterns)) * 0.05
	confidence += t.Trend.Strength * 0.2

	return clamp01(confidence)
}

func sentimentConfidence(s *models.SentimentAnalysis) float64 {
	confidence := baseConfidence

	socialScore := (s.SocialMedia.Reddit.Sentiment +
		s.SocialMedia.Twitter.Sentiment +
		s.SocialMedia.Telegram.Sentiment) / 3
	confidence += math.Abs(socialScore) * 0.2

	confidence += math.Abs(s.News.Overall) * 0.2

	totalVolume := s.SocialMedia.Reddit.Volume +
		s.SocialMedia.Twitter.Volume +
		s.SocialMedia.Telegram.Volume
	confidence += math.Min(float64(totalVolume)/1000, 0.2)

	return clamp01(confidence)
}

func riskScore(t *models.TechnicalAnalysis, s *models.SentimentAnalysis) models.Risk {
	score := baseRisk
	factors := []string{}

	// Wide Bollinger envelope means volatile prices
	if t.Indicators.BollingerBands.Middle != 0 {
		width := (t.Indicators.BollingerBands.Upper - t.Indicators.BollingerBands.Lower) /
			t.Indicators.BollingerBands.Middle
		if width > 0.1 {
			score += 0.2
			factors = append(factors, "high_volatility")
		}
	}

	if t.Indicators.Volume.Current < t.Indicators.Volume.Average*0.5 {
		score += 0.1
		factors = append(factors, "low_volume")
	}

	if math.Abs(s.News.Overall) > 0.7 {
		score += 0.1
		factors = append(factors, "extreme_sentiment")
	}

	if containsPattern(t.Patterns, patternHeadAndShoulders) {
		score += 0.2
		factors = append(factors, "reversal_pattern")
	}

	if t.Trend.Strength > 0.8 {
		score += 0.1
		factors = append(factors, "strong_trend")
	}

	level := models.RiskHigh
	switch {
	case score < 0.4:
		level = models.RiskLow
	case score < 0.7:
		level = models.RiskMedium
	}

	return models.Risk{
		Level:   level,
		Score:   clamp01(score),
		Factors: factors,
	}
}

func generateSignals(t *models.TechnicalAnalysis, s *models.SentimentAnalysis) models.Signals {
	technical := []string{}
	sentiment := []string{}
	combined := []string{}

	if t.Indicators.RSI < 30 {
		technical = append(technical, "oversold")
	}
	if t.Indicators.RSI > 70 {
		technical = append(technical, "overbought")
	}
	if t.Indicators.MACD.Histogram > 0 {
		technical = append(technical, "macd_bullish")
	}
	if t.Indicators.MACD.Histogram < 0 {
		technical = append(technical, "macd_bearish")
	}
	technical = append(technical, t.Patterns...)

	if s.News.Overall > 0.5 {
		sentiment = append(sentiment, "positive_news")
	}
	if s.News.Overall < -0.5 {
		sentiment = append(sentiment, "negative_news")
	}
	if s.SocialMedia.Reddit.Trending {
		sentiment = append(sentiment, "reddit_trending")
	}
	if s.SocialMedia.Twitter.Trending {
		sentiment = append(sentiment, "twitter_trending")
	}

	if t.Trend.Direction == models.TrendBullish && s.News.Overall > 0.3 {
		combined = append(combined, "bullish_alignment")
	}
	if t.Trend.Direction == models.TrendBearish && s.News.Overall < -0.3 {
		combined = append(combined, "bearish_alignment")
	}

	return models.Signals{
		Technical: technical,
		Sentiment: sentiment,
		Combined:  combined,
	}
}

// recommend acts only when the technical trend and the news sentiment point
// the same direction. Aligned neutrality stays a hold with zero strength.
func recommend(t *models.TechnicalAnalysis, s *models.SentimentAnalysis, confidence float64, risk models.Risk) models.Recommendation {
	action := models.ActionHold
	strength := 0.0
	timeframe := models.TimeframeShort

	sentimentDirection := models.TrendNeutral
	if s.News.Overall > 0.3 {
		sentimentDirection = models.TrendBullish
	} else if s.News.Overall < -0.3 {
		sentimentDirection = models.TrendBearish
	}

	if t.Trend.Direction == sentimentDirection {
		switch t.Trend.Direction {
		case models.TrendBullish:
			action = models.ActionBuy
			strength = confidence * (1 - risk.Score)
		case models.TrendBearish:
			action = models.ActionSell
			strength = confidence * (1 - risk.Score)
		}
	}

	if containsPattern(t.Patterns, patternHeadAndShoulders) {
		timeframe = models.TimeframeLong
	} else if t.Trend.Strength > 0.7 {
		timeframe = models.TimeframeMedium
	}

	return models.Recommendation{
		Action:    action,
		Strength:  clamp01(strength),
		Timeframe: timeframe,
	}
}

func containsPattern(patterns []string, name string) bool {
	for _, p := range patterns {
		if p == name {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
