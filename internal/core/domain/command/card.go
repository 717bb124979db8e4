package command

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	cardUsage = "Please specify a Pokémon card name and card number. Usage: `!pokemon_card <card name> <card number>`"
	// cardSamples synthetic price points are generated within ±cardSpread/2 of the market price.
	cardSamples = 5
	cardSpread  = 0.1
)

type PokemonCard struct {
	cards      port.CardFetcher
	rates      port.RateConverter
	textSender port.TextSender
	command    string
	random     func() float64
	l          *zerolog.Logger
}

type PokemonCardParams struct {
	Cards      port.CardFetcher
	Rates      port.RateConverter
	TextSender port.TextSender
	Command    string
}

func NewPokemonCard(p PokemonCardParams) *PokemonCard {
	logger := log.With().Str("command", p.Command).Str("handler", "pokemon_card").Logger()

	return &PokemonCard{
		cards:      p.Cards,
		rates:      p.Rates,
		textSender: p.TextSender,
		command:    p.Command,
		random:     rand.Float64,
		l:          &logger,
	}
}

func (c *PokemonCard) GetCommand() string {
	return c.command
}

func (c *PokemonCard) GetDescription() string {
	return "Analyzes Pokémon card price trends and predicts future prices."
}

func (c *PokemonCard) Respond(ctx context.Context, message *domain.Message, args []string) error {
	reply, err := c.analyze(ctx, args)
	if err != nil {
		return err
	}

	_, err = c.textSender.SendMessageReply(ctx, message, reply)
	return err
}

func (c *PokemonCard) analyze(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return cardUsage, nil
	}

	name := strings.Join(args[:len(args)-1], " ")
	number := args[len(args)-1]

	card, err := c.cards.FindCard(ctx, name, number)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Sprintf("No matching Pokémon card found for %q with card number %q. "+
			"Please check your input and try again.", name, number), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch card: %w", err)
	}

	current := card.MarketPrice
	if current <= 0 {
		return fmt.Sprintf("No current price data available for %q with card number %q.", card.Name, card.Number), nil
	}

	prices := make([]float64, cardSamples)
	for i := range prices {
		prices[i] = current * (1 + (c.random()-0.5)*cardSpread)
	}

	predicted := domain.PredictNext(prices)
	rate, currency := c.rate(ctx)

	return fmt.Sprintf(`📊 **Pokémon Card Analysis for %q**
- **Set**: %s
- **Rarity**: %s
- **Card Number**: %s
- **Current Price**: $%.2f %s
- **Predicted Next Price**: $%.2f %s
- **Trend Prediction**: %s
- **Percentage Change**: %.2f%%`,
		card.Name,
		card.Set,
		card.Rarity,
		card.Number,
		current*rate, currency,
		predicted*rate, currency,
		domain.Trend(current, predicted),
		domain.PercentChange(current, predicted)), nil
}

// rate returns the USD to CAD conversion, falling back to plain USD.
func (c *PokemonCard) rate(ctx context.Context) (float64, string) {
	if c.rates == nil {
		return 1, "USD"
	}

	rate, err := c.rates.Rate(ctx, "USD", "CAD")
	if err != nil || rate <= 0 {
		c.l.Warn().Err(err).Msg("failed to fetch exchange rate, showing USD")
		return 1, "USD"
	}

	return rate, "CAD"
}
