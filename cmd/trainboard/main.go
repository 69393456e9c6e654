package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"trainboard.dev/trainboard"
	"trainboard.dev/trainboard/config"
	"trainboard.dev/trainboard/fetch"
	"trainboard.dev/trainboard/model"
)

var rootCmd = &cobra.Command{
	Use:           "trainboard <station>",
	Short:         "Commuter train departure board",
	Long:          "Shows upcoming train departures for a station, adjusted by the realtime feed",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func main() {
	if os.Getenv("TRAINBOARD_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRAINBOARD_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Send()
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	station := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The two feeds are independent; fetch them in parallel. Either
	// failing fails the run.
	var sched *model.Schedule
	var feed *model.Feed

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		sched, err = fetch.Schedule(ctx, fetch.HTTP{}, cfg.StaticURL)
		return err
	})
	g.Go(func() error {
		var err error
		feed, err = fetch.Feed(ctx, fetch.HTTP{}, cfg.RealtimeURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	board := &trainboard.Board{
		Schedule:      sched,
		Feed:          feed,
		Location:      cfg.Location,
		DayTransition: cfg.DayTransition,
	}

	departures, err := board.Departures(station, time.Now())
	if err != nil {
		return err
	}

	for _, dep := range departures {
		fmt.Printf("%s  %-14s %s\n", dep.Time.Format("15:04"), dep.TripID, dep.Headsign)
	}

	return nil
}
