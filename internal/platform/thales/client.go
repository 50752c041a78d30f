// Package thales implements the GraphQL client for the Thales markets
// subgraph, the source of sports market metadata (teams and sport tags).
package thales

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

// Client is a GraphQL client for the Thales markets subgraph.
type Client struct {
	subgraphURL string
	maxMarkets  int
	httpClient  *http.Client
}

// NewClient creates a new Thales subgraph client.
//
// subgraphURL is the hosted-service endpoint, e.g.
// "https://api.thegraph.com/subgraphs/name/thales-markets/thales-markets-v2".
// maxMarkets bounds the sportMarkets query; the subgraph caps "first" at
// 1000.
func NewClient(subgraphURL string, maxMarkets int) *Client {
	if maxMarkets <= 0 || maxMarkets > 1000 {
		maxMarkets = 1000
	}
	return &Client{
		subgraphURL: subgraphURL,
		maxMarkets:  maxMarkets,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// graphqlRequest is the standard GraphQL request envelope.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the standard GraphQL response envelope.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchMarkets queries market metadata from the subgraph and returns it with
// each market's sport category already classified from its first tag. Any
// transport or decode failure is returned as-is; there is no partial result.
func (c *Client) FetchMarkets(ctx context.Context) ([]domain.Market, error) {
	query := `
		query SportMarkets($first: Int!) {
			sportMarkets(first: $first) {
				address
				homeTeam
				awayTeam
				tags
			}
		}
	`

	variables := map[string]any{
		"first": c.maxMarkets,
	}

	respData, err := c.doQuery(ctx, query, variables)
	if err != nil {
		return nil, fmt.Errorf("thales: fetch markets: %w", err)
	}

	var result struct {
		SportMarkets []apiMarket `json:"sportMarkets"`
	}
	if err := json.Unmarshal(respData, &result); err != nil {
		return nil, fmt.Errorf("thales: decode markets: %w", err)
	}

	markets := make([]domain.Market, 0, len(result.SportMarkets))
	for i := range result.SportMarkets {
		m, err := result.SportMarkets[i].toDomainMarket()
		if err != nil {
			return nil, fmt.Errorf("thales: market %d: %w", i, err)
		}
		markets = append(markets, m)
	}

	return markets, nil
}

// --------------------------------------------------------------------------
// Internal helpers
// --------------------------------------------------------------------------

// doQuery executes a GraphQL query against the subgraph endpoint and returns
// the raw "data" field from the response.
func (c *Client) doQuery(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	reqBody := graphqlRequest{
		Query:     query,
		Variables: variables,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.subgraphURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", gqlResp.Errors[0].Message)
	}

	return gqlResp.Data, nil
}
