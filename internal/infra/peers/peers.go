// Package peers acquires the bootstrap network contacts list published at a
// well-known HTTP endpoint: one multiaddr per line, blank lines and
// #-comments ignored.
package peers

import (
	"bufio"
	"context"
	"fmt"
	gohttp "net/http"
	"strings"

	"github.com/bochaco/stableset-net/internal/pkg/transport/http"

	"github.com/hashicorp/go-retryablehttp"
)

// Fetcher downloads the contacts list with retries.
type Fetcher struct {
	client *retryablehttp.Client
	url    string
}

// NewFetcher returns a Fetcher for the given contacts URL.
func NewFetcher(url string, opts ...http.Option) *Fetcher {
	return &Fetcher{
		client: http.NewClient(opts...),
		url:    url,
	}
}

// Fetch downloads and parses the contacts list, returning the multiaddr
// strings of the published bootstrap peers.
func (f *Fetcher) Fetch(ctx context.Context) ([]string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, gohttp.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching network contacts from %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != gohttp.StatusOK {
		return nil, fmt.Errorf("fetching network contacts from %s: unexpected status %d", f.url, resp.StatusCode)
	}

	var addrs []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addrs = append(addrs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading network contacts list: %w", err)
	}

	return addrs, nil
}
