// Package flipside implements the REST client for pre-built Flipside
// analytics queries: the betting transaction window and the collateral
// token volume table.
package flipside

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

// Client fetches finished query results from the Flipside node API. Each
// pre-built query has its own result URL, so the URL is an argument rather
// than client state.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new Flipside query result client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchTransactions retrieves the betting transaction window from the given
// query result URL. Dates and amounts are parsed eagerly; a malformed row
// fails the whole fetch rather than being skipped.
func (c *Client) FetchTransactions(ctx context.Context, url string) ([]domain.Transaction, error) {
	body, err := c.doGet(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("flipside: fetch transactions: %w", err)
	}

	var rows []apiTransaction
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("flipside: decode transactions: %w", err)
	}

	txs := make([]domain.Transaction, 0, len(rows))
	for i := range rows {
		tx, err := rows[i].toDomainTransaction()
		if err != nil {
			return nil, fmt.Errorf("flipside: transaction %d: %w", i, err)
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// FetchTokenVolume retrieves the pre-aggregated collateral token volume
// table from the given query result URL. The upstream query already summed
// volumes and counted distinct wallets; rows pass through with only column
// selection.
func (c *Client) FetchTokenVolume(ctx context.Context, url string) ([]domain.TokenVolume, error) {
	body, err := c.doGet(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("flipside: fetch token volume: %w", err)
	}

	var rows []apiTokenVolume
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("flipside: decode token volume: %w", err)
	}

	tokens := make([]domain.TokenVolume, 0, len(rows))
	for i := range rows {
		tokens = append(tokens, rows[i].toDomainTokenVolume())
	}

	return tokens, nil
}

// --------------------------------------------------------------------------
// Internal helpers
// --------------------------------------------------------------------------

// doGet sends an unauthenticated GET request and returns the response body.
func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
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

	return body, nil
}
