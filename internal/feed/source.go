package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	UserAgent = "afisha-events/1.0 (github.com/pfrederiksen/afisha-events)"
	Timeout   = 30 * time.Second
)

// ErrUnexpectedStatus is returned when an HTTP resource answers with a
// status other than 200.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Source opens feed resources by URL or file path
type Source struct {
	client *http.Client
}

// NewSource creates a Source whose HTTP requests give up after timeout.
// A non-positive timeout falls back to Timeout.
func NewSource(timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Source{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsURL reports whether location is fetched over HTTP
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Open returns a reader for the resource. The caller closes it.
func (s *Source) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if location == "" {
		return nil, errors.New("no resource location configured")
	}

	if !IsURL(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("opening file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: %w: %d", location, ErrUnexpectedStatus, resp.StatusCode)
	}

	return resp.Body, nil
}

// FetchRecords opens the feed and decodes its records
func (s *Source) FetchRecords(ctx context.Context, location string, opts PostOptions) ([]Record, DecodeStats, error) {
	body, err := s.Open(ctx, location)
	if err != nil {
		return nil, DecodeStats{}, err
	}
	defer body.Close()

	return DecodeRecords(body, opts)
}
