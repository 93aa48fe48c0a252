// Package source retrieves and decodes claim-review documents.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// FetchError is a failed retrieval. StatusCode is 0 when the request never
// produced an HTTP response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves raw document bytes from an http(s) URL or a local path,
// serving repeated fetches of the same location from its cache.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
	cache      Cache
	log        zerolog.Logger
}

// NewFetcher creates a Fetcher. A nil cache disables caching.
func NewFetcher(timeout time.Duration, maxBytes int64, cache Cache, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
		cache:    cache,
		log:      log,
	}
}

// Fetch returns the document at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if f.cache != nil {
		if data, ok := f.cache.Get(location); ok {
			f.log.Debug().Str("url", location).Msg("document served from cache")
			return data, nil
		}
	}

	start := time.Now()
	var (
		data []byte
		err  error
	)
	if isHTTP(location) {
		data, err = f.fetchHTTP(ctx, location)
	} else {
		data, err = f.readFile(location)
	}
	if err != nil {
		f.log.Warn().Err(err).Str("url", location).Msg("document fetch failed")
		return nil, err
	}

	f.log.Info().
		Str("url", location).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("document fetched")
	if f.cache != nil {
		f.cache.Set(location, data)
	}
	return data, nil
}

// Invalidate drops any cached copy of location.
func (f *Fetcher) Invalidate(location string) {
	if f.cache != nil {
		f.cache.Delete(location)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	body, err := f.readLimited(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	return body, nil
}

func (f *Fetcher) readFile(path string) ([]byte, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &FetchError{URL: path, Err: err}
	}
	defer fh.Close()

	body, err := f.readLimited(fh)
	if err != nil {
		return nil, &FetchError{URL: path, Err: err}
	}
	return body, nil
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", f.maxBytes)
	}
	return body, nil
}

func isHTTP(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
