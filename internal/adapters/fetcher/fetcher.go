// Package fetcher holds the clients of the third-party JSON APIs used by commands.
package fetcher

import "context"

type JSONGetter interface {
	GetJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error
}
