package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"
)

// Page watches a web page for its newest link starting with a prefix, such as a profile's latest post.
type Page struct {
	client     Getter
	url        string
	linkPrefix string
}

func NewPage(client Getter, pageURL, linkPrefix string) (*Page, error) {
	if linkPrefix == "" {
		return nil, fmt.Errorf("%w: link prefix for %s", domain.ErrMissingConfig, pageURL)
	}
	if _, err := url.Parse(pageURL); err != nil {
		return nil, fmt.Errorf("%w: page url: %w", domain.ErrMissingConfig, err)
	}

	return &Page{client: client, url: pageURL, linkPrefix: linkPrefix}, nil
}

// Fetch returns the first matching link on the page, or no items when nothing matches.
func (p *Page) Fetch(ctx context.Context) ([]port.FeedItem, error) {
	body, err := p.client.Get(ctx, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("error fetching page: %w", err)
	}

	anchors, err := elements(body, "a")
	if err != nil {
		return nil, fmt.Errorf("error parsing page: %w", err)
	}

	base, _ := url.Parse(p.url)

	for a := range anchors {
		href := attr(a, "href")
		if !strings.HasPrefix(href, p.linkPrefix) {
			continue
		}

		ref, err := url.Parse(href)
		if err != nil {
			continue
		}

		return []port.FeedItem{{Link: base.ResolveReference(ref).String()}}, nil
	}

	return nil, nil
}
