package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"janconnect/cmd/janconnect/ui"
	"janconnect/internal/store"
)

var (
	listFlow     string
	listStatus   string
	listCategory string
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List past submissions",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listFlow, "flow", "", "filter by flow (report or letter)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum entries to show")
}

func runList(cmd *cobra.Command, args []string) error {
	history, err := store.NewStore(stateDir)
	if err != nil {
		return err
	}
	defer history.Close()

	subs, err := history.List(store.ListFilter{
		Flow:     listFlow,
		Status:   listStatus,
		Category: listCategory,
		Limit:    listLimit,
	})
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		fmt.Println("No submissions yet. File one with 'janconnect report' or 'janconnect letter'.")
		return nil
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(ui.Primary)
	fmt.Println(header.Render(fmt.Sprintf("%-14s %-8s %-14s %-18s %s",
		"TRACKING ID", "FLOW", "STATUS", "SUBMITTED", "TITLE")))
	for _, s := range subs {
		title := s.Record.Title
		if title == "" {
			title = s.Record.Category
		}
		fmt.Printf("%-14s %-8s %-14s %-18s %s\n",
			s.TrackingID, s.Flow, s.Status,
			s.SubmittedAt.Local().Format("02/01/2006 15:04"), title)
	}
	return nil
}
