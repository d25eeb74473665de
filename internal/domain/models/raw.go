package models

// Raw source payloads as shaped by the fetchers. The provider JSON schemas
// are fetcher-specific; only these canonical item shapes cross the boundary.

// NewsItem is one article from the news API.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Outlet      string `json:"outlet"`
}

// SocialPost is one post from the social/forum API.
type SocialPost struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ChainTransfer is one transaction from the chain explorer API.
type ChainTransfer struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Value float64 `json:"value"`
}
