package repository

import (
	"context"

	"LiskPredict/internal/domain/models"
)

// Raw data fetchers, one per sentiment source. Implementations talk to the
// provider APIs; the aggregators shape their items into sentiment summaries.

type NewsFetcher interface {
	FetchNews(ctx context.Context, symbol string) ([]models.NewsItem, error)
}

type SocialFetcher interface {
	FetchPosts(ctx context.Context, symbol string) ([]models.SocialPost, error)
}

type ChainFetcher interface {
	FetchTransfers(ctx context.Context, symbol string) ([]models.ChainTransfer, error)
}
