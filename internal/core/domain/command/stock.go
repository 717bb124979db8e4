package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	stockUsage          = "Please specify a stock symbol. Usage: `!stock <symbol>`"
	stockNotEnoughData  = "Not enough data for deep analysis. Please try another stock symbol."
	stockMinDataPoints  = 60
	sentimentAdjustment = 0.05
)

type Stock struct {
	quotes     port.QuoteFetcher
	news       port.NewsFetcher
	scorer     port.SentimentScorer
	textSender port.TextSender
	command    string
	l          *zerolog.Logger
}

type StockParams struct {
	Quotes     port.QuoteFetcher
	News       port.NewsFetcher
	Scorer     port.SentimentScorer
	TextSender port.TextSender
	Command    string
}

func NewStock(p StockParams) *Stock {
	logger := log.With().Str("command", p.Command).Str("handler", "stock").Logger()

	return &Stock{
		quotes:     p.Quotes,
		news:       p.News,
		scorer:     p.Scorer,
		textSender: p.TextSender,
		command:    p.Command,
		l:          &logger,
	}
}

func (s *Stock) GetCommand() string {
	return s.command
}

func (s *Stock) GetDescription() string {
	return "Analyzes stock data, news sentiment, and provides insights."
}

func (s *Stock) Respond(ctx context.Context, message *domain.Message, args []string) error {
	reply, err := s.analyze(ctx, args)
	if err != nil {
		return err
	}

	_, err = s.textSender.SendMessageReply(ctx, message, reply)
	return err
}

func (s *Stock) analyze(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return stockUsage, nil
	}

	symbol := strings.ToUpper(args[0])

	closes, err := s.quotes.DailyCloses(ctx, symbol)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("failed to fetch quotes for %s: %w", symbol, err)
	}

	if len(closes) < stockMinDataPoints {
		return stockNotEnoughData, nil
	}

	sentiment := s.sentiment(ctx, symbol)
	last := closes[len(closes)-1]
	predicted := domain.PredictNext(closes) * (1 + sentiment*sentimentAdjustment)

	return fmt.Sprintf(`📊 **Stock Analysis for %s**
- **Latest Price**: $%.2f
- **Predicted Next Price**: $%.2f
- **Trend Prediction**: %s
- **Percentage Change**: %.2f%%
- **News Sentiment Score**: %.2f`,
		symbol,
		last,
		predicted,
		domain.Trend(last, predicted),
		domain.PercentChange(last, predicted),
		sentiment), nil
}

// sentiment averages the score of recent headlines. Missing news counts as neutral.
func (s *Stock) sentiment(ctx context.Context, symbol string) float64 {
	if s.news == nil || s.scorer == nil {
		return 0
	}

	articles, err := s.news.Everything(ctx, symbol)
	if err != nil {
		s.l.Warn().Err(err).Str("symbol", symbol).Msg("failed to fetch headlines, assuming neutral sentiment")
		return 0
	}

	if len(articles) == 0 {
		return 0
	}

	var total float64
	for _, article := range articles {
		total += s.scorer.Score(article.Title)
	}

	return total / float64(len(articles))
}
