package sentiment

import (
	"context"
	"errors"
	"time"

	"LiskPredict/internal/domain/models"
	"LiskPredict/internal/domain/repository"
	applogger "LiskPredict/pkg/logger"
	"LiskPredict/pkg/util"
)

// Value threshold for a whale transfer, in the chain's smallest unit.
const whaleThreshold = 1e18

const defaultFetchTimeout = 5 * time.Second

// Analyzer assembles the unified sentiment view from three sources. All
// three must succeed: a failed source fails the whole analysis rather than
// returning a partially populated result.
type Analyzer struct {
	cache        *Cache
	nlp          *Processor
	news         repository.NewsFetcher
	social       repository.SocialFetcher
	chain        repository.ChainFetcher
	fetchTimeout time.Duration
	logger       *applogger.Logger
}

type AnalyzerOption func(*Analyzer)

// WithFetchTimeout overrides the per-source fetch deadline.
func WithFetchTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		if d > 0 {
			a.fetchTimeout = d
		}
	}
}

func NewAnalyzer(
	cache *Cache,
	nlp *Processor,
	news repository.NewsFetcher,
	social repository.SocialFetcher,
	chain repository.ChainFetcher,
	l *applogger.Logger,
	opts ...AnalyzerOption,
) *Analyzer {
	a := &Analyzer{
		cache:        cache,
		nlp:          nlp,
		news:         news,
		social:       social,
		chain:        chain,
		fetchTimeout: defaultFetchTimeout,
		logger:       l,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze fans out to the three sources concurrently and merges their
// results. The first failure cancels the remaining fetches.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*models.SentimentAnalysis, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		social *models.PlatformSentiment
		news   *models.News
		chain  *models.OnChain
	)

	errCh := make(chan error, 3)

	go func() {
		v, err := a.AnalyzeSocial(ctx, symbol)
		social = v
		errCh <- err
	}()
	go func() {
		v, err := a.AnalyzeNews(ctx, symbol)
		news = v
		errCh <- err
	}()
	go func() {
		v, err := a.AnalyzeOnChain(ctx, symbol)
		chain = v
		errCh <- err
	}()

	var firstErr error
	for i := 0; i < 3; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	if firstErr != nil {
		a.logger.Error("sentiment analysis failed",
			applogger.String("symbol", symbol),
			applogger.Error(firstErr),
		)
		return nil, firstErr
	}

	return &models.SentimentAnalysis{
		SocialMedia: models.SocialMedia{
			Reddit:   *social,
			Twitter:  models.PlatformSentiment{},
			Telegram: models.PlatformSentiment{},
		},
		News:    *news,
		OnChain: *chain,
	}, nil
}

// AnalyzeSocial scores recent social posts for a symbol, serving from cache
// when a fresh entry exists.
func (a *Analyzer) AnalyzeSocial(ctx context.Context, symbol string) (*models.PlatformSentiment, error) {
	if cached, ok := a.cache.GetSocial(ctx, symbol); ok {
		return cached, nil
	}

	fctx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	posts, err := a.social.FetchPosts(fctx, symbol)
	if err != nil {
		return nil, a.fetchError(models.SourceSocial, fctx, err)
	}

	texts := make([]string, len(posts))
	for i, post := range posts {
		texts[i] = post.Title + " " + post.Body
	}
	batch := a.nlp.AnalyzeBatch(texts)

	result := &models.PlatformSentiment{
		Sentiment: batch.Overall,
		Volume:    len(posts),
		Trending:  len(batch.TrendingTopics) > 0,
	}

	a.cache.SetSocial(ctx, symbol, result)
	return result, nil
}

// AnalyzeNews scores recent headlines and groups volume per outlet.
func (a *Analyzer) AnalyzeNews(ctx context.Context, symbol string) (*models.News, error) {
	if cached, ok := a.cache.GetNews(ctx, symbol); ok {
		return cached, nil
	}

	fctx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	items, err := a.news.FetchNews(fctx, symbol)
	if err != nil {
		return nil, a.fetchError(models.SourceNews, fctx, err)
	}

	texts := make([]string, len(items))
	sources := make(map[string]models.NewsSource)
	for i, item := range items {
		texts[i] = item.Title + " " + item.Description
		src := sources[item.Outlet]
		src.Volume++
		sources[item.Outlet] = src
	}
	batch := a.nlp.AnalyzeBatch(texts)

	result := &models.News{
		Overall: batch.Overall,
		Sources: sources,
	}

	a.cache.SetNews(ctx, symbol, result)
	return result, nil
}

// AnalyzeOnChain summarizes transfer activity: whale counts, net flow,
// exchange flows, and raw network throughput.
func (a *Analyzer) AnalyzeOnChain(ctx context.Context, symbol string) (*models.OnChain, error) {
	if cached, ok := a.cache.GetOnChain(ctx, symbol); ok {
		return cached, nil
	}

	fctx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	transfers, err := a.chain.FetchTransfers(fctx, symbol)
	if err != nil {
		return nil, a.fetchError(models.SourceOnChain, fctx, err)
	}

	subject := util.NormalizeSymbol(symbol)
	var whales int
	var netFlow float64
	flows := models.ExchangeFlows{}
	addresses := make(map[string]struct{})

	for _, tx := range transfers {
		if tx.Value > whaleThreshold {
			whales++
		}
		if util.NormalizeSymbol(tx.From) == subject {
			netFlow -= tx.Value
		} else {
			netFlow += tx.Value
		}
		if util.NormalizeSymbol(tx.To) == subject {
			flows.Inflow += tx.Value
		} else {
			flows.Outflow += tx.Value
		}
		addresses[tx.From] = struct{}{}
	}

	result := &models.OnChain{
		WhaleMovements: models.WhaleMovements{
			LargeTransactions: whales,
			NetFlow:           netFlow,
		},
		ExchangeFlows: flows,
		NetworkActivity: models.NetworkActivity{
			Transactions:    len(transfers),
			ActiveAddresses: len(addresses),
		},
	}

	a.cache.SetOnChain(ctx, symbol, result)
	return result, nil
}

// Refresh invalidates cached entries so the next analysis refetches.
func (a *Analyzer) Refresh(ctx context.Context, symbol string, sources ...models.SourceType) error {
	return a.cache.Invalidate(ctx, symbol, sources...)
}

func (a *Analyzer) fetchError(source models.SourceType, ctx context.Context, err error) error {
	var sfe *models.SourceFetchError
	if errors.As(err, &sfe) {
		return err
	}
	return &models.SourceFetchError{
		Source:  source,
		Timeout: errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded),
		Err:     err,
	}
}
