package sources

import (
	"context"
	"fmt"
	"strconv"

	"LiskPredict/internal/domain/models"
	xhttp "LiskPredict/pkg/http"
)

// ChainClient fetches transfer activity from an Etherscan-style explorer API.
type ChainClient struct {
	client  *xhttp.Client
	baseURL string
	apiKey  string
}

func NewChainClient(client *xhttp.Client, baseURL, apiKey string) *ChainClient {
	return &ChainClient{client: client, baseURL: baseURL, apiKey: apiKey}
}

type explorerResponse struct {
	Result []struct {
		From  string `json:"from"`
		To    string `json:"to"`
		Value string `json:"value"`
	} `json:"result"`
}

func (c *ChainClient) FetchTransfers(ctx context.Context, symbol string) ([]models.ChainTransfer, error) {
	var resp explorerResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/api", c.baseURL),
		QueryParams: map[string][]string{
			"module":  {"account"},
			"action":  {"txlist"},
			"address": {symbol},
			"sort":    {"desc"},
			"apikey":  {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch transfers: %w", err)
	}

	transfers := make([]models.ChainTransfer, 0, len(resp.Result))
	for _, tx := range resp.Result {
		value, err := strconv.ParseFloat(tx.Value, 64)
		if err != nil {
			// explorers report value as a decimal string; skip malformed rows
			continue
		}
		transfers = append(transfers, models.ChainTransfer{
			From:  tx.From,
			To:    tx.To,
			Value: value,
		})
	}
	return transfers, nil
}
