package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"janconnect/internal/catalog"
	"janconnect/internal/draft"
	"janconnect/internal/report"
	"janconnect/internal/wizard"
)

type stubSubmitter struct{}

func (stubSubmitter) Submit(context.Context, *report.Record) (string, error) {
	return "JC123456ABCD", nil
}

func newTestReportWizard(t *testing.T) *ReportWizard {
	t.Helper()
	ctrl, err := wizard.NewController(wizard.FlowReport, draft.NewMemStore(), stubSubmitter{})
	require.NoError(t, err)
	cat, err := catalog.Load()
	require.NoError(t, err)
	return NewReportWizard(ctrl, cat)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestCycle(t *testing.T) {
	require.Equal(t, 1, cycle(0, 3, false))
	require.Equal(t, 0, cycle(2, 3, false))
	require.Equal(t, 2, cycle(0, 3, true))
	require.Equal(t, 0, cycle(0, 0, false))
}

func TestParseCoord(t *testing.T) {
	require.Nil(t, parseCoord(""))
	require.Nil(t, parseCoord("not a number"))
	v := parseCoord(" 23.3441 ")
	require.NotNil(t, v)
	require.InDelta(t, 23.3441, *v, 1e-9)
}

func TestReportWizardBlockedOnEmptyStep(t *testing.T) {
	m := newTestReportWizard(t)

	// Enter on the title field tries to advance; validation holds it.
	updated, _ := m.Update(keyMsg("enter"))
	w := updated.(*ReportWizard)
	require.Equal(t, 0, w.ctrl.Step())

	view := w.View()
	require.Contains(t, view, "Title is required")
	require.Contains(t, view, "Description is required")
}

func TestReportWizardViewPerStep(t *testing.T) {
	m := newTestReportWizard(t)
	require.Contains(t, m.View(), "Issue Details")

	// Seed a valid record directly and walk forward.
	rec := m.ctrl.Record()
	require.NoError(t, m.ctrl.Update("title", func(r *report.Record) {
		r.Title = "Pothole on station road"
		r.Category = "roads"
		r.Description = "A deep pothole has formed near the crossing."
	}))
	m.title.SetValue(rec.Title)
	m.desc.SetValue(rec.Description)

	updated, _ := m.Update(keyMsg("enter"))
	w := updated.(*ReportWizard)
	require.Equal(t, wizard.StepLocationMedia, w.ctrl.Step())
	require.Contains(t, w.View(), "Address")
}

func TestReportWizardEscGoesBack(t *testing.T) {
	m := newTestReportWizard(t)
	require.NoError(t, m.ctrl.Update("title", func(r *report.Record) {
		r.Title = "Pothole"
		r.Category = "roads"
		r.Description = "Deep pothole near the railway crossing."
	}))
	m.title.SetValue("Pothole")
	m.desc.SetValue("Deep pothole near the railway crossing.")
	updated, _ := m.Update(keyMsg("enter"))
	w := updated.(*ReportWizard)
	require.Equal(t, wizard.StepLocationMedia, w.ctrl.Step())

	updated, _ = w.Update(keyMsg("esc"))
	w = updated.(*ReportWizard)
	require.Equal(t, wizard.StepIssueDetails, w.ctrl.Step())
}

func TestRenderOptionsMarksCursorAndChosen(t *testing.T) {
	opts := []catalog.Option{{Value: "a", Label: "Alpha"}, {Value: "b", Label: "Beta"}}

	out := renderOptions(opts, 1, true, "")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "  "))
	require.True(t, strings.HasPrefix(lines[1], "> "))

	out = renderOptions(opts, 0, true, "b")
	require.Contains(t, out, "Beta *")
	require.NotContains(t, out, "Alpha *")
}

func TestRenderOptionsUnsetShowsNoSelection(t *testing.T) {
	// A list the user never touched must not look pre-selected: no
	// caret when unfocused and no committed-value mark.
	opts := []catalog.Option{{Value: "a", Label: "Alpha"}, {Value: "b", Label: "Beta"}}
	out := renderOptions(opts, 0, false, "")
	require.NotContains(t, out, ">")
	require.NotContains(t, out, "*")
}

func TestReportWizardFreshViewHasNoSelection(t *testing.T) {
	m := newTestReportWizard(t)
	require.NotContains(t, m.View(), "*")
}

func TestLetterWizardPresetApplies(t *testing.T) {
	ctrl, err := wizard.NewController(wizard.FlowLetter, draft.NewMemStore(), stubSubmitter{})
	require.NoError(t, err)
	cat, err := catalog.Load()
	require.NoError(t, err)
	m := NewLetterWizard(ctrl, cat, nil)

	require.NotEmpty(t, cat.Presets)
	m.applyPreset(cat.Presets[0])
	rec := ctrl.Record()
	require.Equal(t, cat.Presets[0].Template, rec.Template)
	require.Equal(t, cat.Presets[0].Tone, rec.Tone)
	require.Equal(t, cat.Presets[0].Urgency, rec.Urgency)
	require.Equal(t, cat.Presets[0].RequestType, rec.RequestType)
}

func TestLetterWizardCancelledGenerationShowsNoError(t *testing.T) {
	ctrl, err := wizard.NewController(wizard.FlowLetter, draft.NewMemStore(), stubSubmitter{})
	require.NoError(t, err)
	cat, err := catalog.Load()
	require.NoError(t, err)
	m := NewLetterWizard(ctrl, cat, nil)
	m.generating = true

	// Esc during streaming cancels the generation context; the trailing
	// done message must not surface that as a failure.
	updated, _ := m.Update(letterDoneMsg{err: context.Canceled})
	w := updated.(*LetterWizard)
	require.False(t, w.generating)
	require.Empty(t, w.submitErr)

	updated, _ = w.Update(letterDoneMsg{err: errors.New("model unavailable")})
	w = updated.(*LetterWizard)
	require.Equal(t, "model unavailable", w.submitErr)
}

func TestLetterWizardViewShowsRecipients(t *testing.T) {
	ctrl, err := wizard.NewController(wizard.FlowLetter, draft.NewMemStore(), stubSubmitter{})
	require.NoError(t, err)
	cat, err := catalog.Load()
	require.NoError(t, err)
	m := NewLetterWizard(ctrl, cat, nil)

	require.NoError(t, ctrl.Update("category", func(r *report.Record) {
		r.Category = cat.LetterCategories[0]
		r.Location = "Harmu Housing Colony"
		r.Description = strings.Repeat("Water pressure has been dropping every evening. ", 2)
	}))
	m.location.SetValue("Harmu Housing Colony")
	m.desc.SetValue(ctrl.Record().Description)

	updated, _ := m.Update(keyMsg("enter"))
	w := updated.(*LetterWizard)
	require.Equal(t, wizard.StepRecipient, w.ctrl.Step())
	require.Contains(t, w.View(), cat.Recipients[0].Name)
}
