package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"janconnect/cmd/janconnect/ui"
	"janconnect/internal/catalog"
	"janconnect/internal/draft"
	"janconnect/internal/letter"
	"janconnect/internal/submit"
	"janconnect/internal/wizard"
)

// simulatedDelay approximates a real intake round trip when no endpoint
// is configured.
const simulatedDelay = 1500 * time.Millisecond

var letterDiscard bool

var letterCmd = &cobra.Command{
	Use:   "letter",
	Short: "Draft and submit a formal grievance letter",
	Long: `Opens the grievance letter wizard: describe the grievance, pick a
recipient, choose tone and letter type, then preview the generated
letter before submitting.

With a Gemini API key configured (GEMINI_API_KEY or 'janconnect config
set gemini_api_key ...') the letter is drafted by AI and streamed live.
Without one, a formal letter is assembled from built-in templates.`,
	RunE: runLetter,
}

func init() {
	letterCmd.Flags().BoolVar(&letterDiscard, "discard", false, "discard any saved draft and start fresh")
}

func runLetter(cmd *cobra.Command, args []string) error {
	drafts := draft.NewFileStore(stateDir, draft.KeyLetter)
	if letterDiscard {
		if err := drafts.Clear(); err != nil {
			return err
		}
	}

	ctrl, err := wizard.NewController(wizard.FlowLetter, drafts, newBackend(submit.PrefixLetter))
	if err != nil {
		return err
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	client, err := letter.NewClient(cmd.Context(), cfg.GeminiAPIKey, cfg.GetModel(), cfg.GetLetterTimeout())
	if err != nil {
		// A broken client still leaves the template path available.
		fmt.Println("Note: AI generation unavailable, using templates:", err)
	}
	svc := letter.NewService(client)

	model := ui.NewLetterWizard(ctrl, cat, svc)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	if ctrl.Submitted() {
		return recordHistory("letter", ctrl)
	}
	return nil
}
