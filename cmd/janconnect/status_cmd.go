package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"janconnect/cmd/janconnect/ui"
	"janconnect/internal/store"
	"janconnect/internal/submit"
)

var statusCmd = &cobra.Command{
	Use:   "status [tracking-id]",
	Short: "Show a submission and its status timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	trackingID := strings.ToUpper(strings.TrimSpace(args[0]))
	if !submit.ValidTrackingID(trackingID) {
		return fmt.Errorf("%q does not look like a tracking id (e.g. JC123456AB7X)", trackingID)
	}

	history, err := store.NewStore(stateDir)
	if err != nil {
		return err
	}
	defer history.Close()

	var (
		sub    *store.Submission
		events []store.StatusEvent
	)
	g, _ := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		sub, err = history.GetByTrackingID(trackingID)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = history.Timeline(trackingID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no submission found for %s", trackingID)
		}
		return err
	}

	fmt.Println(ui.TitleStyle.Render(sub.TrackingID))
	fmt.Printf("%-12s %s\n", "Flow:", sub.Flow)
	fmt.Printf("%-12s %s\n", "Status:", sub.Status)
	fmt.Printf("%-12s %s\n", "Submitted:", sub.SubmittedAt.Local().Format("02/01/2006 15:04"))
	if sub.Record != nil {
		if sub.Record.Title != "" {
			fmt.Printf("%-12s %s\n", "Title:", sub.Record.Title)
		}
		fmt.Printf("%-12s %s\n", "Category:", sub.Record.Category)
	}

	fmt.Println("\nTimeline:")
	for _, ev := range events {
		line := fmt.Sprintf("  %s  %s", ev.At.Local().Format("02/01/2006 15:04"), ev.Status)
		if ev.Note != "" {
			line += "  - " + ev.Note
		}
		fmt.Println(line)
	}
	return nil
}
