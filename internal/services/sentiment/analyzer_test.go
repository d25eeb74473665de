package sentiment

import (
	"context"
	"errors"
	"testing"
	"time"

	"LiskPredict/internal/domain/models"
	"LiskPredict/pkg/cache"
	applogger "LiskPredict/pkg/logger"
)

type fakeNews struct {
	items []models.NewsItem
	err   error
	calls int
}

func (f *fakeNews) FetchNews(_ context.Context, _ string) ([]models.NewsItem, error) {
	f.calls++
	return f.items, f.err
}

type fakeSocial struct {
	posts []models.SocialPost
	err   error
	calls int
}

func (f *fakeSocial) FetchPosts(_ context.Context, _ string) ([]models.SocialPost, error) {
	f.calls++
	return f.posts, f.err
}

type fakeChain struct {
	transfers []models.ChainTransfer
	err       error
	calls     int
}

func (f *fakeChain) FetchTransfers(_ context.Context, _ string) ([]models.ChainTransfer, error) {
	f.calls++
	return f.transfers, f.err
}

type noopMetrics struct{}

func (noopMetrics) RecordPrediction(string, string) {}
func (noopMetrics) RecordError(string)              {}
func (noopMetrics) RecordCache(string, bool)        {}
func (noopMetrics) RecordLastPrice(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)   {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newTestAnalyzer(t *testing.T, news *fakeNews, social *fakeSocial, chain *fakeChain) *Analyzer {
	t.Helper()
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })
	sc := NewCache(mem, DefaultTTLs(), testLogger(t), noopMetrics{})
	return NewAnalyzer(sc, NewProcessor(), news, social, chain, testLogger(t))
}

func TestAnalyzeMergesAllSources(t *testing.T) {
	news := &fakeNews{items: []models.NewsItem{
		{Title: "Lisk rally continues", Description: "strong gains", Outlet: "CoinDesk"},
		{Title: "Upgrade shipped", Description: "bullish development", Outlet: "CoinDesk"},
	}}
	social := &fakeSocial{posts: []models.SocialPost{
		{Title: "moon soon", Body: "hodl and accumulate"},
	}}
	chain := &fakeChain{transfers: []models.ChainTransfer{
		{From: "0xabc", To: "lsk", Value: 2e18},
		{From: "0xdef", To: "0xother", Value: 5e17},
	}}

	a := newTestAnalyzer(t, news, social, chain)
	got, err := a.Analyze(context.Background(), "LSK")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if got.SocialMedia.Reddit.Volume != 1 {
		t.Fatalf("reddit volume = %d, want 1", got.SocialMedia.Reddit.Volume)
	}
	if got.SocialMedia.Reddit.Sentiment <= 0 {
		t.Fatalf("expected positive social sentiment, got %f", got.SocialMedia.Reddit.Sentiment)
	}
	if got.SocialMedia.Twitter != (models.PlatformSentiment{}) {
		t.Fatalf("twitter should stay zero-valued")
	}
	if got.News.Sources["CoinDesk"].Volume != 2 {
		t.Fatalf("CoinDesk volume = %d, want 2", got.News.Sources["CoinDesk"].Volume)
	}
	if got.OnChain.WhaleMovements.LargeTransactions != 1 {
		t.Fatalf("whale count = %d, want 1", got.OnChain.WhaleMovements.LargeTransactions)
	}
	if got.OnChain.NetworkActivity.Transactions != 2 {
		t.Fatalf("tx count = %d, want 2", got.OnChain.NetworkActivity.Transactions)
	}
	if got.OnChain.NetworkActivity.ActiveAddresses != 2 {
		t.Fatalf("active addresses = %d, want 2", got.OnChain.NetworkActivity.ActiveAddresses)
	}
}

func TestAnalyzeCacheHitSuppressesFetch(t *testing.T) {
	news := &fakeNews{}
	social := &fakeSocial{}
	chain := &fakeChain{}

	a := newTestAnalyzer(t, news, social, chain)
	ctx := context.Background()

	if _, err := a.Analyze(ctx, "lsk"); err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	if _, err := a.Analyze(ctx, "LSK"); err != nil {
		t.Fatalf("second analyze: %v", err)
	}

	// Symbol casing must not defeat the cache.
	if news.calls != 1 || social.calls != 1 || chain.calls != 1 {
		t.Fatalf("fetch calls = %d/%d/%d, want 1/1/1", news.calls, social.calls, chain.calls)
	}
}

func TestAnalyzeFailFast(t *testing.T) {
	boom := errors.New("provider down")
	news := &fakeNews{err: boom}
	social := &fakeSocial{}
	chain := &fakeChain{}

	a := newTestAnalyzer(t, news, social, chain)
	_, err := a.Analyze(context.Background(), "lsk")
	if err == nil {
		t.Fatal("expected error")
	}

	var sfe *models.SourceFetchError
	if !errors.As(err, &sfe) {
		t.Fatalf("expected SourceFetchError, got %T", err)
	}
	if sfe.Source != models.SourceNews {
		t.Fatalf("source = %s, want news", sfe.Source)
	}
	if !errors.Is(err, boom) {
		t.Fatal("underlying error not wrapped")
	}
}

func TestAnalyzeTimeoutMarked(t *testing.T) {
	news := &fakeNews{}
	social := &fakeSocial{}
	chain := &fakeChain{err: context.DeadlineExceeded}

	a := newTestAnalyzer(t, news, social, chain)
	_, err := a.AnalyzeOnChain(context.Background(), "lsk")
	if err == nil {
		t.Fatal("expected error")
	}
	var sfe *models.SourceFetchError
	if !errors.As(err, &sfe) || !sfe.Timeout {
		t.Fatalf("expected timeout-marked SourceFetchError, got %v", err)
	}
}

func TestRefreshInvalidatesCache(t *testing.T) {
	news := &fakeNews{}
	social := &fakeSocial{}
	chain := &fakeChain{}

	a := newTestAnalyzer(t, news, social, chain)
	ctx := context.Background()

	if _, err := a.Analyze(ctx, "lsk"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if err := a.Refresh(ctx, "lsk"); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := a.Analyze(ctx, "lsk"); err != nil {
		t.Fatalf("analyze after refresh: %v", err)
	}

	if news.calls != 2 || social.calls != 2 || chain.calls != 2 {
		t.Fatalf("fetch calls = %d/%d/%d, want 2/2/2", news.calls, social.calls, chain.calls)
	}
}

func TestRefreshSingleSource(t *testing.T) {
	news := &fakeNews{}
	social := &fakeSocial{}
	chain := &fakeChain{}

	a := newTestAnalyzer(t, news, social, chain)
	ctx := context.Background()

	if _, err := a.Analyze(ctx, "lsk"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if err := a.Refresh(ctx, "lsk", models.SourceNews); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := a.Analyze(ctx, "lsk"); err != nil {
		t.Fatalf("analyze after refresh: %v", err)
	}

	if news.calls != 2 {
		t.Fatalf("news calls = %d, want 2", news.calls)
	}
	if social.calls != 1 || chain.calls != 1 {
		t.Fatalf("social/chain refetched: %d/%d, want 1/1", social.calls, chain.calls)
	}
}

func TestCacheKeyScheme(t *testing.T) {
	if got := Key("LSK", models.SourceNews); got != "sentiment:news:lsk" {
		t.Fatalf("key = %q", got)
	}
}

func TestCacheTTLPerSource(t *testing.T) {
	ttls := DefaultTTLs()
	if ttls.For(models.SourceOnChain) != time.Minute {
		t.Fatalf("onchain ttl = %v, want 1m", ttls.For(models.SourceOnChain))
	}
	if ttls.For(models.SourceNews) != 5*time.Minute {
		t.Fatalf("news ttl = %v, want 5m", ttls.For(models.SourceNews))
	}
}
