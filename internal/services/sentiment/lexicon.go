package sentiment

// Word polarities for the base sentiment pass, AFINN-style scores in [-5, 5].
// Scores are divided by 5 when applied so the base score lands in [-1, 1].
var lexicon = map[string]int{
	"gain":          2,
	"gains":         2,
	"profit":        2,
	"profits":       2,
	"win":           4,
	"winning":       4,
	"good":          3,
	"great":         3,
	"excellent":     3,
	"strong":        2,
	"growth":        2,
	"positive":      2,
	"success":       2,
	"successful":    3,
	"opportunity":   2,
	"confident":     2,
	"optimistic":    2,
	"recover":       2,
	"recovery":      2,
	"improve":       2,
	"improved":      2,
	"record":        2,
	"soar":          3,
	"soaring":       3,
	"jump":          2,
	"climb":         1,
	"rise":          1,
	"rising":        1,
	"up":            1,
	"high":          1,
	"bad":           -3,
	"terrible":      -3,
	"awful":         -3,
	"weak":          -2,
	"loss":          -3,
	"losses":        -3,
	"lose":          -3,
	"losing":        -3,
	"negative":      -2,
	"fail":          -2,
	"failed":        -2,
	"failure":       -2,
	"fear":          -2,
	"panic":         -3,
	"worry":         -3,
	"worried":       -3,
	"doubt":         -1,
	"drop":          -2,
	"dropping":      -2,
	"fall":          -2,
	"falling":       -2,
	"plunge":        -3,
	"plummet":       -3,
	"collapse":      -4,
	"down":          -1,
	"low":           -1,
	"fraud":         -4,
	"lawsuit":       -3,
	"investigation": -2,
	"uncertain":     -2,
	"uncertainty":   -2,
	"volatile":      -1,
	"volatility":    -1,
}

// Crypto jargon carries domain weight the general lexicon misses. Each term
// present in a text shifts the context score by 0.2 in its direction.
var cryptoPositive = []string{
	"bullish", "moon", "hodl", "diamond hands", "accumulate", "breakout",
	"rally", "surge", "gain", "profit", "growth", "adoption", "partnership",
	"development", "upgrade", "innovation", "potential", "opportunity",
}

var cryptoNegative = []string{
	"bearish", "dump", "sell", "fud", "scam", "rug", "manipulation",
	"crash", "loss", "risk", "concern", "warning", "caution",
	"regulation", "ban", "hack", "vulnerability",
}
