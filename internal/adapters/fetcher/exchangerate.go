package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cortex/internal/core/domain"
)

const DefaultExchangeRateURL = "https://api.exchangerate-api.com/v4"

type ExchangeRate struct {
	client  JSONGetter
	baseURL string
}

func NewExchangeRate(client JSONGetter, baseURL string) *ExchangeRate {
	if baseURL == "" {
		baseURL = DefaultExchangeRateURL
	}

	return &ExchangeRate{client: client, baseURL: baseURL}
}

type exchangeRateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (e *ExchangeRate) Rate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	var resp exchangeRateResponse
	if err := e.client.GetJSON(ctx, e.baseURL+"/latest/"+url.PathEscape(from), nil, &resp); err != nil {
		return 0, fmt.Errorf("exchangerate: %w", err)
	}

	rate, ok := resp.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("exchangerate %s->%s: %w", from, to, domain.ErrNotFound)
	}

	return rate, nil
}
