package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/amirasaad/invest/pkg/config"
)

// CoinGeckoProvider fetches spot USD prices from a CoinGecko compatible
// simple/price endpoint.
type CoinGeckoProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewCoinGeckoProvider(cfg *config.PriceFeed, logger *slog.Logger) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		baseURL:    cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("provider", "coingecko"),
	}
}

// FetchPrices returns coin id -> USD price. Coins missing upstream are
// left out of the result.
func (p *CoinGeckoProvider) FetchPrices(ctx context.Context, coins []string) (map[string]float64, error) {
	q := url.Values{
		"ids":           {strings.Join(coins, ",")},
		"vs_currencies": {"usd"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	p.logger.Debug("Fetching prices", "coins", coins)
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var raw map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	out := make(map[string]float64, len(raw))
	for coin, quotes := range raw {
		if usd, ok := quotes["usd"]; ok {
			out[coin] = usd
		}
	}
	return out, nil
}
