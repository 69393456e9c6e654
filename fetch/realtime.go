package fetch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"trainboard.dev/trainboard/model"
	"trainboard.dev/trainboard/parse"
)

// Feed downloads and decodes a realtime snapshot.
func Feed(ctx context.Context, dl Downloader, url string) (*model.Feed, error) {
	log.Debug().Str("url", url).Msg("Fetching realtime feed")

	body, err := dl.Get(ctx, url, nil, GetOptions{
		Timeout: RealtimeTimeout,
		MaxSize: RealtimeMaxSize,
	})
	if err != nil {
		return nil, fmt.Errorf("downloading realtime feed: %w", err)
	}

	feed, err := parse.ParseRealtime(body)
	if err != nil {
		return nil, fmt.Errorf("parsing realtime feed: %w", err)
	}

	log.Debug().
		Int("trip_updates", len(feed.TripUpdates)).
		Uint64("timestamp", feed.Timestamp).
		Msg("Parsed realtime feed")

	return feed, nil
}
