package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"janconnect/cmd/janconnect/ui"
	"janconnect/internal/catalog"
	"janconnect/internal/draft"
	"janconnect/internal/report"
	"janconnect/internal/store"
	"janconnect/internal/submit"
	"janconnect/internal/wizard"
)

var (
	reportDiscard bool
	reportAttach  []string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "File a civic issue report",
	Long: `Opens the four-step issue report wizard: issue details, location and
media, priority and department, then review and submit.

An in-progress report is saved as a draft after every change and resumed
the next time you run this command. Use --discard to throw the draft
away and start over.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportDiscard, "discard", false, "discard any saved draft and start fresh")
	reportCmd.Flags().StringArrayVar(&reportAttach, "attach", nil, "attach an image file (repeatable, max 5 kept)")
}

// newBackend picks the submission backend: the configured HTTP endpoint
// when one is set, otherwise the built-in simulated intake.
func newBackend(prefix string) submit.Backend {
	if cfg.SubmitEndpoint != "" {
		return submit.NewHTTPBackend(cfg.SubmitEndpoint, prefix, cfg.GetSubmitTimeout())
	}
	return submit.NewSimulatedBackend(prefix, simulatedDelay)
}

func runReport(cmd *cobra.Command, args []string) error {
	drafts := draft.NewFileStore(stateDir, draft.KeyIssueReport)
	if reportDiscard {
		if err := drafts.Clear(); err != nil {
			return err
		}
	}

	ctrl, err := wizard.NewController(wizard.FlowReport, drafts, newBackend(submit.PrefixReport))
	if err != nil {
		return err
	}

	for _, path := range reportAttach {
		added, err := attachImage(ctrl, path)
		if err != nil {
			return err
		}
		if !added {
			fmt.Printf("Skipping %s: a report holds at most %d images\n", path, report.MaxImages)
		}
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	model := ui.NewReportWizard(ctrl, cat)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	if ctrl.Submitted() {
		return recordHistory("report", ctrl)
	}
	return nil
}

// attachImage stages a local image file on the draft record.
func attachImage(ctrl *wizard.Controller, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("cannot attach %s: %w", path, err)
	}
	return ctrl.AddImage(report.Attachment{
		ID:        uuid.NewString(),
		Name:      filepath.Base(path),
		SizeBytes: info.Size(),
		MimeType:  mime.TypeByExtension(filepath.Ext(path)),
		LocalURL:  path,
	})
}

// recordHistory writes a completed submission into the local history
// database. History is best-effort: the submission already succeeded.
func recordHistory(flow string, ctrl *wizard.Controller) error {
	history, err := store.NewStore(stateDir)
	if err != nil {
		fmt.Printf("Submitted. Tracking ID: %s (history unavailable: %v)\n", ctrl.Record().TrackingID, err)
		return nil
	}
	defer history.Close()

	if _, err := history.SaveSubmission(flow, ctrl.Record()); err != nil {
		fmt.Printf("Submitted. Tracking ID: %s (history write failed: %v)\n", ctrl.Record().TrackingID, err)
		return nil
	}
	fmt.Printf("Submitted. Tracking ID: %s\n", ctrl.Record().TrackingID)
	return nil
}
