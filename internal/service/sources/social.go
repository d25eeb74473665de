package sources

import (
	"context"
	"fmt"

	"LiskPredict/internal/domain/models"
	xhttp "LiskPredict/pkg/http"
)

// SocialClient fetches recent posts from a Reddit-style search API.
type SocialClient struct {
	client    *xhttp.Client
	baseURL   string
	subreddit string
}

func NewSocialClient(client *xhttp.Client, baseURL, subreddit string) *SocialClient {
	if subreddit == "" {
		subreddit = "cryptocurrency"
	}
	return &SocialClient{client: client, baseURL: baseURL, subreddit: subreddit}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title    string `json:"title"`
				Selftext string `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *SocialClient) FetchPosts(ctx context.Context, symbol string) ([]models.SocialPost, error) {
	var resp redditListing
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/r/%s/search.json", c.baseURL, c.subreddit),
		QueryParams: map[string][]string{
			"q":     {symbol},
			"sort":  {"hot"},
			"limit": {"100"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	posts := make([]models.SocialPost, len(resp.Data.Children))
	for i, child := range resp.Data.Children {
		posts[i] = models.SocialPost{
			Title: child.Data.Title,
			Body:  child.Data.Selftext,
		}
	}
	return posts, nil
}
