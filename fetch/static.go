package fetch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"trainboard.dev/trainboard/model"
	"trainboard.dev/trainboard/parse"
)

// Schedule downloads and parses the static timetable archive.
func Schedule(ctx context.Context, dl Downloader, url string) (*model.Schedule, error) {
	log.Debug().Str("url", url).Msg("Fetching static timetable")

	body, err := dl.Get(ctx, url, nil, GetOptions{
		Timeout: StaticTimeout,
		MaxSize: StaticMaxSize,
	})
	if err != nil {
		return nil, fmt.Errorf("downloading static timetable: %w", err)
	}

	sched, err := parse.ParseStatic(body)
	if err != nil {
		return nil, fmt.Errorf("parsing static timetable: %w", err)
	}

	log.Debug().
		Int("trips", len(sched.Trips)).
		Int("stops", len(sched.Stops)).
		Msg("Parsed static timetable")

	return sched, nil
}
