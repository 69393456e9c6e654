package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Limits applied when downloading the two feeds. The static archive is
// orders of magnitude larger than a realtime snapshot.
const (
	StaticTimeout   = 60 * time.Second
	StaticMaxSize   = 800 << 20 // 800 MB
	RealtimeTimeout = 30 * time.Second
	RealtimeMaxSize = 1 << 20 // 1 MB
)

type GetOptions struct {
	MaxSize int
	Timeout time.Duration
}

// A thing capable of downloading a file. The board is single-shot, so
// there is no caching and no retry: a failed download fails the run.
type Downloader interface {
	Get(ctx context.Context, url string, headers map[string]string, options GetOptions) ([]byte, error)
}

// HTTP is the stock Downloader.
type HTTP struct{}

func (HTTP) Get(ctx context.Context, url string, headers map[string]string, options GetOptions) ([]byte, error) {
	return HTTPGet(ctx, url, headers, options)
}

// Gets a file. Provided as convenience for implementing custom
// Downloaders.
func HTTPGet(ctx context.Context, url string, headers map[string]string, options GetOptions) ([]byte, error) {
	client := &http.Client{
		Timeout: options.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for k, v := range headers {
		req.Header.Add(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if options.MaxSize > 0 {
		reader = io.LimitReader(resp.Body, int64(options.MaxSize))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return body, nil
}
