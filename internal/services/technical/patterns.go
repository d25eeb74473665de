package technical

// Chart pattern detection over an oldest-first price window. Each detector is
// a pure predicate. The triangle detectors are declared but not implemented;
// Capabilities reports which ones carry real geometry so callers can assert
// on capability instead of silently-absent matches.

const (
	PatternDoubleTop          = "double_top"
	PatternDoubleBottom       = "double_bottom"
	PatternHeadAndShoulders   = "head_and_shoulders"
	PatternAscendingTriangle  = "ascending_triangle"
	PatternDescendingTriangle = "descending_triangle"
)

// peakTolerance is the max relative spread between matching peaks/troughs.
const peakTolerance = 0.02

// valleyDepth is the minimum relative dip between the extrema of a double
// top/bottom for the pattern to count.
const valleyDepth = 0.03

// shoulderTolerance bounds the relative spread between the two shoulders.
const shoulderTolerance = 0.05

type detector struct {
	name        string
	implemented bool
	match       func(prices []float64) bool
}

var detectors = []detector{
	{PatternDoubleTop, true, isDoubleTop},
	{PatternDoubleBottom, true, isDoubleBottom},
	{PatternHeadAndShoulders, true, isHeadAndShoulders},
	{PatternAscendingTriangle, false, nil},
	{PatternDescendingTriangle, false, nil},
}

// Capabilities reports per-pattern whether real detection geometry exists.
func Capabilities() map[string]bool {
	caps := make(map[string]bool, len(detectors))
	for _, d := range detectors {
		caps[d.name] = d.implemented
	}
	return caps
}

func detectPatterns(prices []float64) []string {
	patterns := []string{}
	for _, d := range detectors {
		if d.implemented && d.match(prices) {
			patterns = append(patterns, d.name)
		}
	}
	return patterns
}

// localMaxima returns indices of points strictly above both neighbors two
// deep, matching the support/resistance window.
func localMaxima(prices []float64) []int {
	var idx []int
	for i := 2; i < len(prices)-2; i++ {
		p := prices[i]
		if p > prices[i-1] && p > prices[i-2] && p > prices[i+1] && p > prices[i+2] {
			idx = append(idx, i)
		}
	}
	return idx
}

func localMinima(prices []float64) []int {
	var idx []int
	for i := 2; i < len(prices)-2; i++ {
		p := prices[i]
		if p < prices[i-1] && p < prices[i-2] && p < prices[i+1] && p < prices[i+2] {
			idx = append(idx, i)
		}
	}
	return idx
}

func within(a, b, tolerance float64) bool {
	ref := a
	if b > ref {
		ref = b
	}
	if ref == 0 {
		return a == b
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff/ref <= tolerance
}

func minBetween(prices []float64, from, to int) float64 {
	low := prices[from]
	for i := from + 1; i <= to; i++ {
		if prices[i] < low {
			low = prices[i]
		}
	}
	return low
}

func maxBetween(prices []float64, from, to int) float64 {
	high := prices[from]
	for i := from + 1; i <= to; i++ {
		if prices[i] > high {
			high = prices[i]
		}
	}
	return high
}

// isDoubleTop matches two peaks of near-equal height separated by a valley
// at least valleyDepth below the lower peak.
func isDoubleTop(prices []float64) bool {
	peaks := localMaxima(prices)
	if len(peaks) < 2 {
		return false
	}
	a, b := peaks[len(peaks)-2], peaks[len(peaks)-1]
	if !within(prices[a], prices[b], peakTolerance) {
		return false
	}
	lower := prices[a]
	if prices[b] < lower {
		lower = prices[b]
	}
	valley := minBetween(prices, a, b)
	return valley <= lower*(1-valleyDepth)
}

// isDoubleBottom is the mirror of isDoubleTop.
func isDoubleBottom(prices []float64) bool {
	troughs := localMinima(prices)
	if len(troughs) < 2 {
		return false
	}
	a, b := troughs[len(troughs)-2], troughs[len(troughs)-1]
	if !within(prices[a], prices[b], peakTolerance) {
		return false
	}
	higher := prices[a]
	if prices[b] > higher {
		higher = prices[b]
	}
	crest := maxBetween(prices, a, b)
	return crest >= higher*(1+valleyDepth)
}

// isHeadAndShoulders matches three consecutive peaks where the middle one
// dominates and the shoulders sit at comparable heights.
func isHeadAndShoulders(prices []float64) bool {
	peaks := localMaxima(prices)
	if len(peaks) < 3 {
		return false
	}
	l, h, r := peaks[len(peaks)-3], peaks[len(peaks)-2], peaks[len(peaks)-1]
	left, head, right := prices[l], prices[h], prices[r]
	if head <= left*(1+valleyDepth) || head <= right*(1+valleyDepth) {
		return false
	}
	return within(left, right, shoulderTolerance)
}
