package command

import (
	"context"
	"fmt"
	"strings"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"
)

const (
	newsUsage    = "Please specify a category. Usage: `!news <category> [location]`"
	newsArticles = 5
)

type News struct {
	fetcher    port.NewsFetcher
	weather    *Weather
	textSender port.TextSender
	command    string
}

// NewNews creates the news handler. The weather category is answered by weather.
func NewNews(fetcher port.NewsFetcher, weather *Weather, sender port.TextSender, command string) *News {
	return &News{fetcher: fetcher, weather: weather, textSender: sender, command: command}
}

func (n *News) GetCommand() string {
	return n.command
}

func (n *News) GetDescription() string {
	return "Fetches top news headlines or weather information."
}

func (n *News) Respond(ctx context.Context, message *domain.Message, args []string) error {
	reply, err := n.report(ctx, args)
	if err != nil {
		return err
	}

	_, err = n.textSender.SendMessageReply(ctx, message, reply)
	return err
}

func (n *News) report(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return newsUsage, nil
	}

	category := strings.ToLower(args[0])
	location := strings.Join(args[1:], " ")

	if category == "weather" {
		if n.weather == nil {
			return "Weather is not available right now.", nil
		}
		return n.weather.report(ctx, location)
	}

	country := strings.ToLower(location)
	if len(location) > 2 {
		code, ok := CountryCode(location)
		if !ok {
			return fmt.Sprintf("Unable to find ISO code for the location: **%s**.", location), nil
		}
		country = code
	}

	articles, err := n.fetcher.TopHeadlines(ctx, category, country)
	if err != nil {
		return "", fmt.Errorf("failed to fetch news: %w", err)
	}

	scope := "Global"
	if country != "" {
		scope = country
	}

	if len(articles) == 0 {
		return fmt.Sprintf("No news found for category **%s** in **%s**.", category, scope), nil
	}

	if len(articles) > newsArticles {
		articles = articles[:newsArticles]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📰 **Top News in %s (%s):**\n", category, scope)
	for i, article := range articles {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, article.Title, article.URL)
	}

	return b.String(), nil
}
