package driven

import "context"

// Fetcher retrieves raw bytes from a source URL.
// Implementations are expected to rate-limit and set a User-Agent.
type Fetcher interface {
	// Fetch retrieves the content at url. It returns the payload or an
	// error; a non-2xx response is an error.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
