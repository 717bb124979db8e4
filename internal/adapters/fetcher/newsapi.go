package fetcher

import (
	"context"
	"fmt"
	"net/url"

	"cortex/internal/core/port"
)

const DefaultNewsAPIURL = "https://newsapi.org/v2"

type NewsAPI struct {
	client  JSONGetter
	baseURL string
	apiKey  string
}

func NewNewsAPI(client JSONGetter, baseURL, apiKey string) *NewsAPI {
	if baseURL == "" {
		baseURL = DefaultNewsAPIURL
	}

	return &NewsAPI{client: client, baseURL: baseURL, apiKey: apiKey}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"articles"`
}

func (n *NewsAPI) TopHeadlines(ctx context.Context, category, country string) ([]port.Article, error) {
	query := url.Values{}
	query.Set("category", category)
	if country != "" {
		query.Set("country", country)
	}

	return n.fetch(ctx, "/top-headlines", query)
}

func (n *NewsAPI) Everything(ctx context.Context, q string) ([]port.Article, error) {
	query := url.Values{}
	query.Set("q", q)

	return n.fetch(ctx, "/everything", query)
}

func (n *NewsAPI) fetch(ctx context.Context, path string, query url.Values) ([]port.Article, error) {
	var resp newsAPIResponse

	err := n.client.GetJSON(ctx, n.baseURL+path+"?"+query.Encode(), map[string]string{"X-Api-Key": n.apiKey}, &resp)
	if err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}

	if resp.Status == "error" {
		return nil, fmt.Errorf("newsapi error %s: %s", resp.Code, resp.Message)
	}

	articles := make([]port.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" || a.Title == "[Removed]" {
			continue
		}
		articles = append(articles, port.Article{Title: a.Title, URL: a.URL})
	}

	return articles, nil
}
