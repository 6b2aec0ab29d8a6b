package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"janconnect/internal/catalog"
	"janconnect/internal/letter"
	"janconnect/internal/logging"
	"janconnect/internal/report"
	"janconnect/internal/wizard"
)

var letterStepNames = [wizard.StepCount]string{
	"Grievance Details",
	"Select Recipient",
	"Letter Preferences",
	"Preview & Submit",
}

type letterChunkMsg string

type letterDoneMsg struct {
	res letter.Result
	err error
}

// LetterWizard is the interactive grievance letter flow: three gated
// form steps, then AI (or template) generation with live streaming.
type LetterWizard struct {
	ctrl *wizard.Controller
	cat  *catalog.Catalog
	svc  *letter.Service

	location textinput.Model
	desc     textarea.Model
	editor   textarea.Model

	catCursor  int
	recCursor  int
	prefCursor int // which preference row has focus
	toneIdx    int
	urgIdx     int
	tmplIdx    int
	reqIdx     int

	spinner    spinner.Model
	generating bool
	streamed   strings.Builder
	genCh      chan tea.Msg
	cancelGen  context.CancelFunc
	advisory   string
	mode       letter.Mode

	editing    bool
	submitting bool
	submitErr  string
	width      int
	quitting   bool
}

// NewLetterWizard builds the model over a controller session, seeding
// from any resumed draft.
func NewLetterWizard(ctrl *wizard.Controller, cat *catalog.Catalog, svc *letter.Service) *LetterWizard {
	rec := ctrl.Record()

	location := textinput.New()
	location.Placeholder = "Area, ward, city"
	location.CharLimit = 200
	location.SetValue(rec.Location)

	desc := textarea.New()
	desc.Placeholder = "Describe your grievance in detail (minimum 50 characters)"
	desc.SetHeight(6)
	desc.SetValue(rec.Description)

	editor := textarea.New()
	editor.SetHeight(16)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Accent)

	m := &LetterWizard{
		ctrl:     ctrl,
		cat:      cat,
		svc:      svc,
		location: location,
		desc:     desc,
		editor:   editor,
		spinner:  sp,
	}
	m.catCursor = indexOfString(cat.LetterCategories, rec.Category)
	if rec.Recipient != nil {
		for i, r := range cat.Recipients {
			if r.ID == rec.Recipient.ID {
				m.recCursor = i
			}
		}
	}
	m.toneIdx = optionIndex(cat.Tones, string(rec.Tone))
	m.urgIdx = optionIndex(cat.Urgencies, string(rec.Urgency))
	m.tmplIdx = optionIndex(cat.Templates, string(rec.Template))
	m.reqIdx = optionIndex(cat.RequestTypes, string(rec.RequestType))
	return m
}

func indexOfString(ss []string, v string) int {
	for i, s := range ss {
		if s == v {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (m *LetterWizard) Init() tea.Cmd {
	return m.location.Focus()
}

// Update implements tea.Model.
func (m *LetterWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case letterChunkMsg:
		m.streamed.WriteString(string(msg))
		return m, waitForGen(m.genCh)

	case letterDoneMsg:
		m.generating = false
		m.cancelGen = nil
		if msg.err != nil {
			// A user-cancelled generation is not a failure; the preview
			// simply stays on whatever letter was there before.
			if !errors.Is(msg.err, context.Canceled) {
				m.submitErr = msg.err.Error()
			}
			return m, nil
		}
		m.mode = msg.res.Mode
		m.advisory = msg.res.Advisory
		text := msg.res.Text
		if err := m.ctrl.Update("generatedLetter", func(r *report.Record) { r.GeneratedLetter = text }); err != nil {
			logging.UIDebug("store generated letter: %v", err)
		}
		m.editor.SetValue(text)
		return m, nil

	case submitResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.submitErr = msg.err.Error()
			return m, nil
		}
		return m, tea.Quit

	case spinner.TickMsg:
		if m.generating || m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateInputs(msg)
}

func (m *LetterWizard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		m.stopGeneration()
		m.quitting = true
		return m, tea.Quit
	}

	if m.editing {
		return m.updateEditor(msg)
	}

	if msg.String() == "esc" {
		if m.generating {
			// Leaving the preview mid-stream stops chunk delivery.
			m.stopGeneration()
			return m, nil
		}
		if m.ctrl.Step() == 0 {
			m.quitting = true
			return m, tea.Quit
		}
		m.ctrl.Back()
		return m, m.focusCurrent()
	}

	switch m.ctrl.Step() {
	case wizard.StepGrievance:
		return m.updateGrievance(msg)
	case wizard.StepRecipient:
		return m.updateRecipient(msg)
	case wizard.StepPreferences:
		return m.updatePreferences(msg)
	default:
		return m.updatePreview(msg)
	}
}

// Focus order on Grievance Details: category(0), location(1), description(2).
func (m *LetterWizard) updateGrievance(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.prefCursor = cycle(m.prefCursor, 3, msg.String() == "shift+tab")
		return m, m.focusCurrent()
	case "up", "down":
		if m.prefCursor == 0 {
			m.catCursor = cycle(m.catCursor, len(m.cat.LetterCategories), msg.String() == "up")
			value := m.cat.LetterCategories[m.catCursor]
			m.set("category", func(r *report.Record) { r.Category = value })
			return m, nil
		}
	case "enter":
		if m.prefCursor != 2 {
			m.advance()
			return m, m.focusCurrent()
		}
	case "ctrl+n":
		m.advance()
		return m, m.focusCurrent()
	}
	return m.updateInputs(msg)
}

func (m *LetterWizard) updateRecipient(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "down":
		m.recCursor = cycle(m.recCursor, len(m.cat.Recipients), msg.String() == "up")
	case "enter", "ctrl+n":
		chosen := m.cat.Recipients[m.recCursor]
		m.set("recipient", func(r *report.Record) { r.Recipient = &chosen })
		m.advance()
	}
	return m, nil
}

func (m *LetterWizard) updatePreferences(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "tab", "shift+tab":
		m.prefCursor = cycle(m.prefCursor, 4, key == "shift+tab")
	case "up", "down":
		up := key == "up"
		switch m.prefCursor {
		case 0:
			m.toneIdx = cycle(m.toneIdx, len(m.cat.Tones), up)
			value := report.Tone(m.cat.Tones[m.toneIdx].Value)
			m.set("tone", func(r *report.Record) { r.Tone = value })
		case 1:
			m.urgIdx = cycle(m.urgIdx, len(m.cat.Urgencies), up)
			value := report.Urgency(m.cat.Urgencies[m.urgIdx].Value)
			m.set("urgency", func(r *report.Record) { r.Urgency = value })
		case 2:
			m.tmplIdx = cycle(m.tmplIdx, len(m.cat.Templates), up)
			value := report.Template(m.cat.Templates[m.tmplIdx].Value)
			m.set("template", func(r *report.Record) { r.Template = value })
		case 3:
			m.reqIdx = cycle(m.reqIdx, len(m.cat.RequestTypes), up)
			value := report.RequestType(m.cat.RequestTypes[m.reqIdx].Value)
			m.set("requestType", func(r *report.Record) { r.RequestType = value })
		}
	case "enter", "ctrl+n":
		m.advance()
		if m.ctrl.Step() == wizard.StepPreview && m.ctrl.Record().GeneratedLetter == "" {
			return m, m.startGeneration()
		}
	default:
		// Digits apply a preset from the template library.
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.cat.Presets) {
			m.applyPreset(m.cat.Presets[n-1])
		}
	}
	return m, nil
}

func (m *LetterWizard) applyPreset(p catalog.Preset) {
	m.set("template", func(r *report.Record) {
		r.Template = p.Template
		r.Tone = p.Tone
		r.Urgency = p.Urgency
		r.RequestType = p.RequestType
	})
	m.toneIdx = optionIndex(m.cat.Tones, string(p.Tone))
	m.urgIdx = optionIndex(m.cat.Urgencies, string(p.Urgency))
	m.tmplIdx = optionIndex(m.cat.Templates, string(p.Template))
	m.reqIdx = optionIndex(m.cat.RequestTypes, string(p.RequestType))
}

func (m *LetterWizard) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}
	switch msg.String() {
	case "r":
		return m, m.startGeneration()
	case "e":
		m.editing = true
		m.editor.SetValue(m.ctrl.Record().GeneratedLetter)
		return m, m.editor.Focus()
	case "enter", "s":
		m.submitting = true
		m.submitErr = ""
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return submitResultMsg{err: m.ctrl.Submit(context.Background())}
		})
	}
	return m, nil
}

func (m *LetterWizard) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		text := m.editor.Value()
		m.set("generatedLetter", func(r *report.Record) { r.GeneratedLetter = text })
		m.editing = false
		m.editor.Blur()
		return m, nil
	case "esc":
		m.editing = false
		m.editor.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *LetterWizard) startGeneration() tea.Cmd {
	m.generating = true
	m.submitErr = ""
	m.advisory = ""
	m.streamed.Reset()

	ch := make(chan tea.Msg, 64)
	ctx, cancel := context.WithCancel(context.Background())
	m.genCh = ch
	m.cancelGen = cancel

	rec := m.ctrl.Record().Clone()
	go func() {
		defer close(ch)
		res, err := m.svc.Stream(ctx, rec, func(chunk string) {
			ch <- letterChunkMsg(chunk)
		})
		ch <- letterDoneMsg{res: res, err: err}
	}()
	return tea.Batch(m.spinner.Tick, waitForGen(ch))
}

func (m *LetterWizard) stopGeneration() {
	if m.cancelGen != nil {
		m.cancelGen()
		m.cancelGen = nil
	}
	m.generating = false
}

func waitForGen(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *LetterWizard) advance() {
	m.syncRecord()
	if m.ctrl.Next() {
		m.prefCursor = 0
	}
}

func (m *LetterWizard) syncRecord() {
	if m.ctrl.Step() == wizard.StepGrievance {
		loc := m.location.Value()
		m.set("location", func(r *report.Record) { r.Location = loc })
		desc := m.desc.Value()
		m.set("description", func(r *report.Record) { r.Description = desc })
	}
}

func (m *LetterWizard) set(field string, mutate func(*report.Record)) {
	if err := m.ctrl.Update(field, mutate); err != nil {
		logging.UIDebug("update %s failed: %v", field, err)
	}
}

func (m *LetterWizard) focusCurrent() tea.Cmd {
	m.location.Blur()
	m.desc.Blur()
	if m.ctrl.Step() == wizard.StepGrievance {
		switch m.prefCursor {
		case 1:
			return m.location.Focus()
		case 2:
			return m.desc.Focus()
		}
	}
	return nil
}

func (m *LetterWizard) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.location, cmd = m.location.Update(msg)
	cmds = append(cmds, cmd)
	m.desc, cmd = m.desc.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *LetterWizard) View() string {
	if m.quitting {
		return ""
	}
	rec := m.ctrl.Record()
	if m.ctrl.Submitted() {
		return BoxStyle.Render(
			SuccessStyle.Render("Letter submitted!") + "\n\n" +
				"Tracking ID: " + SelectedStyle.Render(rec.TrackingID) + "\n" +
				HelpStyle.Render("Use 'janconnect status "+rec.TrackingID+"' to follow progress."),
		) + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("AI Grievance Letter") + "\n")
	b.WriteString(StepIndicator(m.ctrl.Step(), wizard.StepCount, letterStepNames[m.ctrl.Step()]) + "\n\n")

	switch m.ctrl.Step() {
	case wizard.StepGrievance:
		b.WriteString(LabelStyle.Render("Category") + "\n")
		b.WriteString(renderStrings(m.cat.LetterCategories, m.catCursor, m.prefCursor == 0, rec.Category))
		b.WriteString("\n" + LabelStyle.Render("Location") + "\n" + m.location.View() + "\n\n")
		b.WriteString(LabelStyle.Render("Description") + "\n" + m.desc.View() + "\n")
	case wizard.StepRecipient:
		for i, r := range m.cat.Recipients {
			marker := "  "
			line := fmt.Sprintf("%s — %s, %s", r.Name, r.Designation, r.Department)
			if i == m.recCursor {
				marker = "> "
				line = SelectedStyle.Render(line)
			}
			b.WriteString(marker + line + "\n")
		}
	case wizard.StepPreferences:
		rows := []struct {
			label string
			opts  []catalog.Option
			idx   int
		}{
			{"Tone", m.cat.Tones, m.toneIdx},
			{"Urgency", m.cat.Urgencies, m.urgIdx},
			{"Letter Type", m.cat.Templates, m.tmplIdx},
			{"Request", m.cat.RequestTypes, m.reqIdx},
		}
		for i, row := range rows {
			label := row.label
			if i == m.prefCursor {
				label = SelectedStyle.Render(label)
			} else {
				label = LabelStyle.Render(label)
			}
			b.WriteString(fmt.Sprintf("%-24s %s\n", label, row.opts[row.idx].Label))
		}
		b.WriteString("\n" + LabelStyle.Render("Presets") + "\n")
		for i, p := range m.cat.Presets {
			b.WriteString(HelpStyle.Render(fmt.Sprintf("%d. %s", i+1, p.Title)) + "\n")
		}
	case wizard.StepPreview:
		b.WriteString(m.previewView(rec))
	}

	for _, field := range []string{"category", "location", "description", "recipient", "tone", "urgency", "template", "requestType"} {
		if msg, ok := m.ctrl.Errors()[field]; ok {
			b.WriteString(ErrorStyle.Render("• "+msg) + "\n")
		}
	}
	if m.submitErr != "" {
		b.WriteString(ErrorStyle.Render(m.submitErr) + "\n")
	}
	if m.ctrl.Step() != wizard.StepPreview {
		b.WriteString("\n" + HelpStyle.Render("tab next field · enter continue · esc back · ctrl+c save & exit") + "\n")
	}
	return b.String()
}

func (m *LetterWizard) previewView(rec *report.Record) string {
	var b strings.Builder
	if m.editing {
		b.WriteString(m.editor.View() + "\n")
		b.WriteString(HelpStyle.Render("ctrl+s save · esc cancel") + "\n")
		return b.String()
	}
	if m.generating {
		b.WriteString(m.spinner.View() + " Generating letter...\n\n")
		b.WriteString(m.streamed.String() + "\n")
		b.WriteString(HelpStyle.Render("esc cancel generation") + "\n")
		return b.String()
	}
	if m.submitting {
		b.WriteString(m.spinner.View() + " Submitting...\n")
		return b.String()
	}

	if m.advisory != "" {
		b.WriteString(HelpStyle.Render(m.advisory) + "\n\n")
	}
	b.WriteString(renderLetter(rec.GeneratedLetter, m.width) + "\n")
	b.WriteString(HelpStyle.Render("enter submit · r regenerate · e edit · esc back") + "\n")
	return b.String()
}

// renderLetter passes the letter through glamour so long paragraphs wrap
// cleanly in the terminal; on renderer failure the raw text is shown.
func renderLetter(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-4, 100)),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// renderStrings mirrors renderOptions for plain string lists: the caret
// is only a navigation hint, the committed value is what gets marked.
func renderStrings(ss []string, cursor int, focused bool, chosen string) string {
	var b strings.Builder
	for i, s := range ss {
		marker := "  "
		if i == cursor && focused {
			marker = "> "
		}
		if chosen != "" && s == chosen {
			s = SelectedStyle.Render(s + " *")
		}
		b.WriteString(marker + s + "\n")
	}
	return b.String()
}
