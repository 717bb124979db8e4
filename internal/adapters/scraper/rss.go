package scraper

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"cortex/internal/core/port"
)

type rssDocument struct {
	Channel struct {
		Items []struct {
			Title     string `xml:"title"`
			Link      string `xml:"link"`
			Enclosure struct {
				URL string `xml:"url,attr"`
			} `xml:"enclosure"`
		} `xml:"item"`
	} `xml:"channel"`
}

// RSS reads the items of an RSS 2.0 feed.
type RSS struct {
	client Getter
	url    string
}

func NewRSS(client Getter, feedURL string) *RSS {
	return &RSS{client: client, url: feedURL}
}

func (r *RSS) Fetch(ctx context.Context) ([]port.FeedItem, error) {
	body, err := r.client.Get(ctx, r.url, map[string]string{"Accept": "application/rss+xml, application/xml"})
	if err != nil {
		return nil, fmt.Errorf("error fetching rss: %w", err)
	}

	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("error decoding rss: %w", err)
	}

	items := make([]port.FeedItem, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		items = append(items, port.FeedItem{
			Title:    strings.TrimSpace(it.Title),
			Link:     strings.TrimSpace(it.Link),
			ImageURL: strings.TrimSpace(it.Enclosure.URL),
		})
	}

	return items, nil
}
