package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"janconnect/internal/catalog"
	"janconnect/internal/logging"
	"janconnect/internal/report"
	"janconnect/internal/wizard"
)

var reportStepNames = [wizard.StepCount]string{
	"Issue Details",
	"Location & Media",
	"Priority & Department",
	"Review & Submit",
}

// submitResultMsg carries the outcome of the async submission.
type submitResultMsg struct{ err error }

// ReportWizard is the interactive four-step issue report flow.
type ReportWizard struct {
	ctrl *wizard.Controller
	cat  *catalog.Catalog

	title   textinput.Model
	desc    textarea.Model
	address textinput.Model
	lat     textinput.Model
	lng     textinput.Model

	catCursor  int
	prioCursor int
	deptCursor int
	focus      int

	spinner    spinner.Model
	submitting bool
	submitErr  string
	width      int
	quitting   bool
}

// NewReportWizard builds the model over an existing controller session,
// seeding inputs from any resumed draft.
func NewReportWizard(ctrl *wizard.Controller, cat *catalog.Catalog) *ReportWizard {
	rec := ctrl.Record()

	title := textinput.New()
	title.Placeholder = "Brief title for the issue"
	title.CharLimit = 120
	title.SetValue(rec.Title)
	title.Focus()

	desc := textarea.New()
	desc.Placeholder = "Describe the issue in detail (minimum 20 characters)"
	desc.SetHeight(5)
	desc.SetValue(rec.Description)

	address := textinput.New()
	address.Placeholder = "Street, locality, city"
	address.CharLimit = 200
	address.SetValue(rec.Address)

	lat := textinput.New()
	lat.Placeholder = "Latitude (e.g. 23.3441)"
	lat.CharLimit = 20
	if rec.Latitude != nil {
		lat.SetValue(strconv.FormatFloat(*rec.Latitude, 'f', -1, 64))
	}

	lng := textinput.New()
	lng.Placeholder = "Longitude (e.g. 85.3096)"
	lng.CharLimit = 20
	if rec.Longitude != nil {
		lng.SetValue(strconv.FormatFloat(*rec.Longitude, 'f', -1, 64))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Accent)

	m := &ReportWizard{
		ctrl:    ctrl,
		cat:     cat,
		title:   title,
		desc:    desc,
		address: address,
		lat:     lat,
		lng:     lng,
		spinner: sp,
	}
	m.catCursor = optionIndex(cat.ReportCategories, rec.Category)
	m.prioCursor = optionIndex(cat.Priorities, string(rec.Priority))
	m.deptCursor = optionIndex(cat.Departments, string(rec.Department))
	return m
}

func optionIndex(opts []catalog.Option, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (m *ReportWizard) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *ReportWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case submitResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.submitErr = msg.err.Error()
			return m, nil
		}
		return m, tea.Quit

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			// The draft is already persisted; just leave.
			m.quitting = true
			return m, tea.Quit
		case "esc":
			if m.ctrl.Step() == 0 {
				m.quitting = true
				return m, tea.Quit
			}
			m.ctrl.Back()
			m.focus = 0
			return m, m.focusCurrent()
		}
		return m.updateStep(msg)
	}
	return m.updateInputs(msg)
}

func (m *ReportWizard) updateStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ctrl.Step() {
	case wizard.StepIssueDetails:
		return m.updateIssueDetails(msg)
	case wizard.StepLocationMedia:
		return m.updateLocation(msg)
	case wizard.StepPriorityDept:
		return m.updatePriorityDept(msg)
	default:
		return m.updateReview(msg)
	}
}

// Focus order on Issue Details: title(0), category(1), description(2).
func (m *ReportWizard) updateIssueDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focus = cycle(m.focus, 3, msg.String() == "shift+tab")
		return m, m.focusCurrent()
	case "up", "down":
		if m.focus == 1 {
			m.catCursor = cycle(m.catCursor, len(m.cat.ReportCategories), msg.String() == "up")
			value := m.cat.ReportCategories[m.catCursor].Value
			m.set("category", func(r *report.Record) { r.Category = value })
			return m, nil
		}
	case "enter":
		if m.focus != 2 { // enter inside the textarea inserts a newline
			m.advance()
			return m, m.focusCurrent()
		}
	case "ctrl+n":
		m.advance()
		return m, m.focusCurrent()
	}
	return m.updateInputs(msg)
}

// Focus order on Location & Media: address(0), lat(1), lng(2).
func (m *ReportWizard) updateLocation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focus = cycle(m.focus, 3, msg.String() == "shift+tab")
		return m, m.focusCurrent()
	case "enter", "ctrl+n":
		m.advance()
		return m, m.focusCurrent()
	}
	return m.updateInputs(msg)
}

func (m *ReportWizard) updatePriorityDept(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focus = cycle(m.focus, 2, msg.String() == "shift+tab")
	case "up", "down":
		up := msg.String() == "up"
		if m.focus == 0 {
			m.prioCursor = cycle(m.prioCursor, len(m.cat.Priorities), up)
			value := report.Priority(m.cat.Priorities[m.prioCursor].Value)
			m.set("priority", func(r *report.Record) { r.Priority = value })
		} else {
			m.deptCursor = cycle(m.deptCursor, len(m.cat.Departments), up)
			value := report.Department(m.cat.Departments[m.deptCursor].Value)
			m.set("department", func(r *report.Record) { r.Department = value })
		}
	case "enter", "ctrl+n":
		m.advance()
	}
	return m, nil
}

func (m *ReportWizard) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "s":
		m.submitting = true
		m.submitErr = ""
		return m, tea.Batch(m.spinner.Tick, m.submitCmd())
	case "d":
		if err := m.ctrl.Discard(); err != nil {
			m.submitErr = err.Error()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *ReportWizard) submitCmd() tea.Cmd {
	return func() tea.Msg {
		return submitResultMsg{err: m.ctrl.Submit(context.Background())}
	}
}

// advance syncs the inputs into the record and asks the controller to
// move forward; validation errors keep us on the step.
func (m *ReportWizard) advance() {
	m.syncRecord()
	if m.ctrl.Next() {
		m.focus = 0
	}
}

func (m *ReportWizard) syncRecord() {
	switch m.ctrl.Step() {
	case wizard.StepIssueDetails:
		title := m.title.Value()
		m.set("title", func(r *report.Record) { r.Title = title })
		desc := m.desc.Value()
		m.set("description", func(r *report.Record) { r.Description = desc })
	case wizard.StepLocationMedia:
		addr := m.address.Value()
		m.set("address", func(r *report.Record) { r.Address = addr })
		lat := parseCoord(m.lat.Value())
		lng := parseCoord(m.lng.Value())
		m.set("location", func(r *report.Record) {
			r.Latitude = lat
			r.Longitude = lng
		})
	}
}

func parseCoord(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (m *ReportWizard) set(field string, mutate func(*report.Record)) {
	if err := m.ctrl.Update(field, mutate); err != nil {
		logging.UIDebug("update %s failed: %v", field, err)
	}
}

func (m *ReportWizard) focusCurrent() tea.Cmd {
	m.title.Blur()
	m.desc.Blur()
	m.address.Blur()
	m.lat.Blur()
	m.lng.Blur()

	switch m.ctrl.Step() {
	case wizard.StepIssueDetails:
		switch m.focus {
		case 0:
			return m.title.Focus()
		case 2:
			return m.desc.Focus()
		}
	case wizard.StepLocationMedia:
		switch m.focus {
		case 0:
			return m.address.Focus()
		case 1:
			return m.lat.Focus()
		case 2:
			return m.lng.Focus()
		}
	}
	return nil
}

func (m *ReportWizard) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	cmds = append(cmds, cmd)
	m.desc, cmd = m.desc.Update(msg)
	cmds = append(cmds, cmd)
	m.address, cmd = m.address.Update(msg)
	cmds = append(cmds, cmd)
	m.lat, cmd = m.lat.Update(msg)
	cmds = append(cmds, cmd)
	m.lng, cmd = m.lng.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *ReportWizard) View() string {
	if m.quitting {
		return ""
	}
	rec := m.ctrl.Record()
	if m.ctrl.Submitted() {
		return BoxStyle.Render(
			SuccessStyle.Render("Report submitted!") + "\n\n" +
				"Tracking ID: " + SelectedStyle.Render(rec.TrackingID) + "\n" +
				HelpStyle.Render("Use 'janconnect status "+rec.TrackingID+"' to follow progress."),
		) + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Report a Civic Issue") + "\n")
	b.WriteString(StepIndicator(m.ctrl.Step(), wizard.StepCount, reportStepNames[m.ctrl.Step()]) + "\n\n")

	switch m.ctrl.Step() {
	case wizard.StepIssueDetails:
		b.WriteString(LabelStyle.Render("Title") + "\n" + m.title.View() + "\n\n")
		b.WriteString(LabelStyle.Render("Category") + "\n")
		b.WriteString(renderOptions(m.cat.ReportCategories, m.catCursor, m.focus == 1, rec.Category))
		b.WriteString("\n" + LabelStyle.Render("Description") + "\n" + m.desc.View() + "\n")
	case wizard.StepLocationMedia:
		b.WriteString(LabelStyle.Render("Address") + "\n" + m.address.View() + "\n\n")
		b.WriteString(LabelStyle.Render("Coordinates") + "\n")
		b.WriteString(m.lat.View() + "\n" + m.lng.View() + "\n")
		if n := len(rec.Images); n > 0 {
			b.WriteString("\n" + LabelStyle.Render(fmt.Sprintf("Attached images: %d of %d", n, report.MaxImages)) + "\n")
		}
	case wizard.StepPriorityDept:
		b.WriteString(LabelStyle.Render("Priority") + "\n")
		b.WriteString(renderOptions(m.cat.Priorities, m.prioCursor, m.focus == 0, string(rec.Priority)))
		b.WriteString("\n" + LabelStyle.Render("Department") + "\n")
		b.WriteString(renderOptions(m.cat.Departments, m.deptCursor, m.focus == 1, string(rec.Department)))
	case wizard.StepReview:
		b.WriteString(m.reviewSummary(rec))
		if m.submitting {
			b.WriteString("\n" + m.spinner.View() + " Submitting...\n")
		} else {
			b.WriteString("\n" + HelpStyle.Render("enter submit · d discard · esc back") + "\n")
		}
	}

	for _, field := range []string{"title", "category", "description", "address", "location", "priority", "department"} {
		if msg, ok := m.ctrl.Errors()[field]; ok {
			b.WriteString(ErrorStyle.Render("• "+msg) + "\n")
		}
	}
	if m.submitErr != "" {
		b.WriteString(ErrorStyle.Render("Submission failed: "+m.submitErr) + "\n")
		b.WriteString(HelpStyle.Render("Press enter to retry.") + "\n")
	}

	if m.ctrl.Step() != wizard.StepReview {
		b.WriteString("\n" + HelpStyle.Render("tab next field · enter continue · esc back · ctrl+c save & exit") + "\n")
	}
	return b.String()
}

func (m *ReportWizard) reviewSummary(rec *report.Record) string {
	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-12s", label)) + value + "\n")
	}
	row("Title", rec.Title)
	row("Category", catalog.LabelFor(m.cat.ReportCategories, rec.Category))
	row("Priority", catalog.LabelFor(m.cat.Priorities, string(rec.Priority)))
	row("Department", catalog.LabelFor(m.cat.Departments, string(rec.Department)))
	row("Address", rec.Address)
	if rec.Latitude != nil && rec.Longitude != nil {
		row("Coordinates", fmt.Sprintf("%.4f, %.4f", *rec.Latitude, *rec.Longitude))
	}
	row("Images", strconv.Itoa(len(rec.Images)))
	b.WriteString("\n" + rec.Description + "\n")
	return BoxStyle.Render(b.String())
}

// renderOptions draws a pick list. The caret only tracks where up/down
// will go next; a value is highlighted only once the user has actually
// committed it, so an untouched list shows no selection.
func renderOptions(opts []catalog.Option, cursor int, focused bool, chosen string) string {
	var b strings.Builder
	for i, o := range opts {
		marker := "  "
		if i == cursor && focused {
			marker = "> "
		}
		line := o.Label
		if chosen != "" && o.Value == chosen {
			line = SelectedStyle.Render(line + " *")
		}
		b.WriteString(marker + line + "\n")
	}
	return b.String()
}

// cycle moves an index one step through n entries, wrapping around.
func cycle(i, n int, backwards bool) int {
	if n == 0 {
		return 0
	}
	if backwards {
		return (i - 1 + n) % n
	}
	return (i + 1) % n
}
