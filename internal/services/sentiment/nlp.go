package sentiment

import (
	"regexp"
	"sort"
	"strings"
)

const (
	baseWeight    = 0.6
	contextWeight = 0.4
	jargonWeight  = 0.2
	trendingTopN  = 5
	minTopicLen   = 4
	keywordTopN   = 10
)

var nonWord = regexp.MustCompile(`[^\w\s]`)
var multiSpace = regexp.MustCompile(`\s+`)

// TextResult is the per-text NLP outcome.
type TextResult struct {
	Score         float64
	CryptoContext float64
	Keywords      []string
}

// BatchResult aggregates a set of texts.
type BatchResult struct {
	Overall          float64
	TrendingTopics   []string
	KeywordFrequency map[string]int
}

// Processor scores free text for market polarity. It blends a general
// word-polarity pass with a crypto jargon pass (0.6/0.4).
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// AnalyzeText scores a single text in [-1, 1].
func (p *Processor) AnalyzeText(text string) TextResult {
	clean := preprocess(text)
	tokens := tokenize(clean)

	base := baseScore(tokens)
	context := cryptoContext(clean)
	score := clamp(base*baseWeight+context*contextWeight, -1, 1)

	return TextResult{
		Score:         score,
		CryptoContext: context,
		Keywords:      topKeywords(tokens, keywordTopN),
	}
}

// AnalyzeBatch scores a set of texts and derives trending topics from them.
// An empty batch yields a neutral result.
func (p *Processor) AnalyzeBatch(texts []string) BatchResult {
	result := BatchResult{
		TrendingTopics:   []string{},
		KeywordFrequency: make(map[string]int),
	}
	if len(texts) == 0 {
		return result
	}

	var sum float64
	for _, text := range texts {
		tr := p.AnalyzeText(text)
		sum += tr.Score
		for _, kw := range tr.Keywords {
			result.KeywordFrequency[kw]++
		}
	}

	result.Overall = clamp(sum/float64(len(texts)), -1, 1)
	result.TrendingTopics = trendingTopics(texts)
	return result
}

func preprocess(text string) string {
	clean := strings.ToLower(text)
	clean = nonWord.ReplaceAllString(clean, "")
	clean = multiSpace.ReplaceAllString(clean, " ")
	return strings.TrimSpace(clean)
}

func tokenize(clean string) []string {
	if clean == "" {
		return nil
	}
	return strings.Fields(clean)
}

// baseScore averages word polarities over all tokens, so polarity dilutes in
// long neutral text the way an AFINN pass does.
func baseScore(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	var sum float64
	for _, token := range tokens {
		if score, ok := lexicon[token]; ok {
			sum += float64(score) / 5
		}
	}
	return sum / float64(len(tokens))
}

// cryptoContext shifts the score by jargonWeight per domain term present,
// matched as a substring so multi-word terms like "diamond hands" count.
func cryptoContext(clean string) float64 {
	var score float64
	for _, term := range cryptoPositive {
		if strings.Contains(clean, term) {
			score += jargonWeight
		}
	}
	for _, term := range cryptoNegative {
		if strings.Contains(clean, term) {
			score -= jargonWeight
		}
	}
	return clamp(score, -1, 1)
}

// trendingTopics ranks words longer than three characters by frequency
// across the batch and returns the top five, ties broken alphabetically.
func trendingTopics(texts []string) []string {
	freq := make(map[string]int)
	for _, text := range texts {
		for _, word := range tokenize(preprocess(text)) {
			if len(word) >= minTopicLen {
				freq[word]++
			}
		}
	}

	return topN(freq, trendingTopN)
}

func topKeywords(tokens []string, n int) []string {
	freq := make(map[string]int)
	for _, token := range tokens {
		if len(token) >= minTopicLen {
			freq[token]++
		}
	}
	return topN(freq, n)
}

func topN(freq map[string]int, n int) []string {
	type entry struct {
		word  string
		count int
	}
	entries := make([]entry, 0, len(freq))
	for word, count := range freq {
		entries = append(entries, entry{word, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].word < entries[j].word
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.word
	}
	return words
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
