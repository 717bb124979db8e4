package fetcher

import (
	"context"
	"fmt"
	"net/url"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"
)

const DefaultPokemonTCGURL = "https://api.pokemontcg.io/v2"

// price variants checked for a market price, in order
var cardPriceVariants = []string{"holofoil", "normal", "reverseHolofoil", "1stEditionHolofoil"}

type PokemonTCG struct {
	client  JSONGetter
	baseURL string
	apiKey  string
}

func NewPokemonTCG(client JSONGetter, baseURL, apiKey string) *PokemonTCG {
	if baseURL == "" {
		baseURL = DefaultPokemonTCGURL
	}

	return &PokemonTCG{client: client, baseURL: baseURL, apiKey: apiKey}
}

type pokemonTCGResponse struct {
	Data []struct {
		Name   string `json:"name"`
		Number string `json:"number"`
		Rarity string `json:"rarity"`
		Set    struct {
			Name string `json:"name"`
		} `json:"set"`
		Images struct {
			Small string `json:"small"`
			Large string `json:"large"`
		} `json:"images"`
		TCGPlayer struct {
			Prices map[string]struct {
				Market *float64 `json:"market"`
			} `json:"prices"`
		} `json:"tcgplayer"`
	} `json:"data"`
}

func (p *PokemonTCG) FindCard(ctx context.Context, name, number string) (port.Card, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("name:%q number:%q", name, number))

	var headers map[string]string
	if p.apiKey != "" {
		headers = map[string]string{"X-Api-Key": p.apiKey}
	}

	var resp pokemonTCGResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/cards?"+query.Encode(), headers, &resp); err != nil {
		return port.Card{}, fmt.Errorf("pokemontcg: %w", err)
	}

	if len(resp.Data) == 0 {
		return port.Card{}, fmt.Errorf("pokemontcg %s %s: %w", name, number, domain.ErrNotFound)
	}

	card := resp.Data[0]

	var market float64
	for _, variant := range cardPriceVariants {
		if price, ok := card.TCGPlayer.Prices[variant]; ok && price.Market != nil {
			market = *price.Market
			break
		}
	}

	return port.Card{
		Name:        card.Name,
		Number:      card.Number,
		Set:         card.Set.Name,
		Rarity:      card.Rarity,
		MarketPrice: market,
		ImageURL:    card.Images.Large,
	}, nil
}
