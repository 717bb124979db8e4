package fetcher

import (
	"context"
	"fmt"
	"net/url"

	"cortex/internal/core/domain"
)

const DefaultYahooURL = "https://query1.finance.yahoo.com"

type Yahoo struct {
	client  JSONGetter
	baseURL string
}

func NewYahoo(client JSONGetter, baseURL string) *Yahoo {
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}

	return &Yahoo{client: client, baseURL: baseURL}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCloses returns six months of daily closing prices, skipping days without a close.
func (y *Yahoo) DailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	query := url.Values{}
	query.Set("range", "6mo")
	query.Set("interval", "1d")

	var resp yahooChartResponse
	rawURL := y.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol) + "?" + query.Encode()
	if err := y.client.GetJSON(ctx, rawURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("yahoo chart %s: %w", symbol, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("yahoo chart %s: %s", symbol, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, domain.ErrNotFound)
	}

	raw := resp.Chart.Result[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, c := range raw {
		if c != nil {
			closes = append(closes, *c)
		}
	}

	return closes, nil
}
