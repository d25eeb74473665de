package sources

import (
	"context"
	"fmt"

	"LiskPredict/internal/domain/models"
	xhttp "LiskPredict/pkg/http"
)

// NewsClient fetches recent articles from a CryptoPanic-style news API.
type NewsClient struct {
	client  *xhttp.Client
	baseURL string
	apiKey  string
}

func NewNewsClient(client *xhttp.Client, baseURL, apiKey string) *NewsClient {
	return &NewsClient{client: client, baseURL: baseURL, apiKey: apiKey}
}

type newsAPIResponse struct {
	Results []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Source      struct {
			Title string `json:"title"`
		} `json:"source"`
	} `json:"results"`
}

func (c *NewsClient) FetchNews(ctx context.Context, symbol string) ([]models.NewsItem, error) {
	var resp newsAPIResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/api/v1/posts/", c.baseURL),
		QueryParams: map[string][]string{
			"auth_token": {c.apiKey},
			"currencies": {symbol},
			"kind":       {"news"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}

	items := make([]models.NewsItem, len(resp.Results))
	for i, r := range resp.Results {
		items[i] = models.NewsItem{
			Title:       r.Title,
			Description: r.Description,
			Outlet:      r.Source.Title,
		}
	}
	return items, nil
}
