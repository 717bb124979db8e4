package port

import "context"

type Weather struct {
	Name        string
	Region      string
	Country     string
	Temperature float64
	Description string
	Humidity    float64
	WindSpeed   float64
	FeelsLike   float64
}

type WeatherFetcher interface {
	CurrentWeather(ctx context.Context, location string) (Weather, error)
}

type Article struct {
	Title string
	URL   string
}

type NewsFetcher interface {
	TopHeadlines(ctx context.Context, category, country string) ([]Article, error)
	Everything(ctx context.Context, query string) ([]Article, error)
}

type QuoteFetcher interface {
	// DailyCloses returns daily closing prices for the last months, oldest first.
	DailyCloses(ctx context.Context, symbol string) ([]float64, error)
}

type Card struct {
	Name        string
	Number      string
	Set         string
	Rarity      string
	MarketPrice float64
	ImageURL    string
}

type CardFetcher interface {
	FindCard(ctx context.Context, name, number string) (Card, error)
}

type RateConverter interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

type ImageFinder interface {
	FindImage(ctx context.Context, query string) (string, error)
}

type SentimentScorer interface {
	Score(text string) float64
}

type FeedItem struct {
	Title    string
	Link     string
	ImageURL string
}

type FeedSource interface {
	// Fetch returns the current items of a feed, newest first.
	Fetch(ctx context.Context) ([]FeedItem, error)
}
