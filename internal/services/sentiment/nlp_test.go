package sentiment

import (
	"testing"
)

func TestAnalyzeTextPositive(t *testing.T) {
	p := NewProcessor()
	r := p.AnalyzeText("Bullish breakout, expecting a strong rally and big gains")
	if r.Score <= 0 {
		t.Fatalf("expected positive score, got %f", r.Score)
	}
	if r.Score > 1 {
		t.Fatalf("score exceeds bound: %f", r.Score)
	}
}

func TestAnalyzeTextNegative(t *testing.T) {
	p := NewProcessor()
	r := p.AnalyzeText("Bearish dump incoming, fud and panic everywhere, scam warning")
	if r.Score >= 0 {
		t.Fatalf("expected negative score, got %f", r.Score)
	}
	if r.Score < -1 {
		t.Fatalf("score below bound: %f", r.Score)
	}
}

func TestAnalyzeTextNeutralEmpty(t *testing.T) {
	p := NewProcessor()
	if r := p.AnalyzeText(""); r.Score != 0 {
		t.Fatalf("empty text should be neutral, got %f", r.Score)
	}
}

func TestCryptoContextMultiWordTerm(t *testing.T) {
	score := cryptoContext("diamond hands forever")
	if score <= 0 {
		t.Fatalf("multi-word jargon not matched, got %f", score)
	}
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	p := NewProcessor()
	r := p.AnalyzeBatch(nil)
	if r.Overall != 0 {
		t.Fatalf("empty batch should be neutral, got %f", r.Overall)
	}
	if len(r.TrendingTopics) != 0 {
		t.Fatalf("empty batch should have no topics, got %v", r.TrendingTopics)
	}
}

func TestAnalyzeBatchOverallIsMean(t *testing.T) {
	p := NewProcessor()
	texts := []string{
		"bullish rally gains",
		"bearish crash loss",
	}
	single := (p.AnalyzeText(texts[0]).Score + p.AnalyzeText(texts[1]).Score) / 2
	batch := p.AnalyzeBatch(texts)
	if diff := batch.Overall - single; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("batch overall %f != mean of singles %f", batch.Overall, single)
	}
}

func TestTrendingTopics(t *testing.T) {
	texts := []string{
		"lisk upgrade announced today",
		"lisk upgrade shipping soon",
		"lisk community excited",
	}
	topics := trendingTopics(texts)
	if len(topics) == 0 || topics[0] != "lisk" {
		t.Fatalf("expected 'lisk' as top topic, got %v", topics)
	}
	if len(topics) > 5 {
		t.Fatalf("more than five topics: %v", topics)
	}
	for _, topic := range topics {
		if len(topic) < 4 {
			t.Fatalf("short word leaked into topics: %q", topic)
		}
	}
}

func TestPreprocessStripsPunctuation(t *testing.T) {
	got := preprocess("  Buy!!! NOW,   or... miss-out  ")
	want := "buy now or missout"
	if got != want {
		t.Fatalf("preprocess = %q, want %q", got, want)
	}
}
