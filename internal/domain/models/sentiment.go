package models

// SourceType identifies a sentiment data source for fetching and caching.
type SourceType string

const (
	SourceNews    SourceType = "news"
	SourceSocial  SourceType = "social"
	SourceOnChain SourceType = "onchain"
)

// SourceTypes lists every source, in the order the analyzer fans out.
var SourceTypes = []SourceType{SourceSocial, SourceNews, SourceOnChain}

// PlatformSentiment is the per-platform social media summary.
type PlatformSentiment struct {
	Sentiment float64 `json:"sentiment" validate:"gte=-1,lte=1"`
	Volume    int     `json:"volume" validate:"gte=0"`
	Trending  bool    `json:"trending"`
}

// SocialMedia aggregates the tracked platforms. Only Reddit is actively
// fetched; Twitter and Telegram stay zero-valued until those feeds land.
type SocialMedia struct {
	Reddit   PlatformSentiment `json:"reddit"`
	Twitter  PlatformSentiment `json:"twitter"`
	Telegram PlatformSentiment `json:"telegram"`
}

// NewsSource is a per-outlet sentiment/volume pair.
type NewsSource struct {
	Sentiment float64 `json:"sentiment" validate:"gte=-1,lte=1"`
	Volume    int     `json:"volume" validate:"gte=0"`
}

// News holds the overall news polarity and the per-outlet breakdown.
type News struct {
	Overall float64               `json:"overall" validate:"gte=-1,lte=1"`
	Sources map[string]NewsSource `json:"sources" validate:"dive"`
}

// WhaleMovements counts large transfers and their net direction.
type WhaleMovements struct {
	LargeTransactions int     `json:"largeTransactions" validate:"gte=0"`
	NetFlow           float64 `json:"netFlow"`
}

// ExchangeFlows tracks value moving on and off exchanges.
type ExchangeFlows struct {
	Inflow  float64 `json:"inflow"`
	Outflow float64 `json:"outflow"`
}

// NetworkActivity summarizes raw chain throughput.
type NetworkActivity struct {
	Transactions    int `json:"transactions" validate:"gte=0"`
	ActiveAddresses int `json:"activeAddresses" validate:"gte=0"`
}

// OnChain is the on-chain sentiment block.
type OnChain struct {
	WhaleMovements  WhaleMovements  `json:"whaleMovements"`
	ExchangeFlows   ExchangeFlows   `json:"exchangeFlows"`
	NetworkActivity NetworkActivity `json:"networkActivity"`
}

// SentimentAnalysis is the unified sentiment view assembled from the three
// source aggregators.
type SentimentAnalysis struct {
	SocialMedia SocialMedia `json:"socialMedia"`
	News        News        `json:"news"`
	OnChain     OnChain     `json:"onChain"`
}
