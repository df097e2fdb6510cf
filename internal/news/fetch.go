package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultNewsURL is the news endpoint of the reference deployment.
	DefaultNewsURL = "http://localhost:3000/api/news"

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 8 << 20
)

// Fetcher reads the full news corpus.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Post, error)
}

// FetcherFunc adapts a function to Fetcher. Used for in-process sources such
// as the SQLite repository.
type FetcherFunc func(ctx context.Context) ([]Post, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) ([]Post, error) {
	return f(ctx)
}

// HTTPFetcher GETs a JSON array of posts. No query parameters or credentials
// are sent; the whole corpus comes back in one response.
type HTTPFetcher struct {
	Client *http.Client
	URL    string
}

// NewHTTPFetcher creates a fetcher for url. A timeout of 0 leaves the
// transport default in place.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	if url == "" {
		url = DefaultNewsURL
	}
	return &HTTPFetcher{
		URL: url,
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 5 * time.Second,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Fetch issues the request and decodes the body. Every failure is a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, &FetchError{Code: ErrCodeTransport, URL: f.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Code: ErrCodeTransport, URL: f.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Code: ErrCodeStatus, URL: f.URL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Code: ErrCodeTransport, URL: f.URL, Err: err}
	}

	posts, err := DecodePosts(body)
	if err != nil {
		return nil, &FetchError{Code: ErrCodeDecode, URL: f.URL, Err: err}
	}
	return posts, nil
}

// DecodePosts parses a JSON array of posts. Anything other than an array,
// including null, is rejected.
func DecodePosts(data []byte) ([]Post, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("expected a JSON array of posts")
	}
	var posts []Post
	if err := json.Unmarshal(trimmed, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
