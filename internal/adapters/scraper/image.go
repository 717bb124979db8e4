package scraper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"

	"cortex/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const (
	DefaultImageSearchURL = "https://www.google.com/search?hl=en&tbm=isch"

	// leading results are logos and page chrome
	imageSkip = 3
	imagePick = 10
)

type ImageSearch struct {
	client      Getter
	searchURL   string
	fallbackURL string
	intn        func(n int) int
}

func NewImageSearch(client Getter, searchURL, fallbackURL string) *ImageSearch {
	if searchURL == "" {
		searchURL = DefaultImageSearchURL
	}

	return &ImageSearch{
		client:      client,
		searchURL:   searchURL,
		fallbackURL: fallbackURL,
		intn:        rand.IntN,
	}
}

// FindImage returns one of the first results of an image search, or the fallback image when there are none.
func (s *ImageSearch) FindImage(ctx context.Context, query string) (string, error) {
	searchURL, err := s.buildURL(query)
	if err != nil {
		return "", err
	}

	body, err := s.client.Get(ctx, searchURL, map[string]string{"Accept-Language": "en"})
	if err != nil {
		return "", fmt.Errorf("error searching images: %w", err)
	}

	imgs, err := elements(body, "img")
	if err != nil {
		return "", fmt.Errorf("error parsing image results: %w", err)
	}

	var candidates []string
	for img := range imgs {
		src := attr(img, "src")
		if src == "" {
			src = attr(img, "data-src")
		}
		if strings.HasPrefix(src, "https") {
			candidates = append(candidates, src)
		}
	}

	if len(candidates) > imageSkip {
		candidates = candidates[imageSkip:]
		if len(candidates) > imagePick {
			candidates = candidates[:imagePick]
		}
		return candidates[s.intn(len(candidates))], nil
	}

	if s.fallbackURL != "" {
		log.Debug().Str("query", query).Msg("no image results, using fallback image")
		return s.fallbackURL, nil
	}

	return "", fmt.Errorf("image %q: %w", query, domain.ErrNotFound)
}

func (s *ImageSearch) buildURL(query string) (string, error) {
	u, err := url.Parse(s.searchURL)
	if err != nil {
		return "", fmt.Errorf("%w: image search url: %w", domain.ErrMissingConfig, err)
	}

	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
