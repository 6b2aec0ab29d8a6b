package wizard

import (
	"strings"
	"testing"

	"janconnect/internal/report"
)

func validReportRecord() *report.Record {
	lat, lng := 23.3441, 85.3096
	return &report.Record{
		Title:       "Pothole on station road",
		Category:    "roads",
		Description: "A deep pothole has formed near the railway crossing and grows after every rain.",
		Address:     "Station Road, Ranchi",
		Latitude:    &lat,
		Longitude:   &lng,
		Priority:    report.PriorityHigh,
		Department:  report.DeptPWD,
	}
}

func validLetterRecord() *report.Record {
	return &report.Record{
		Category:    "Water Supply Issues",
		Description: strings.Repeat("The water supply in our colony has been irregular for weeks. ", 2),
		Location:    "Harmu Housing Colony, Ranchi",
		Recipient:   &report.Official{ID: 1, Name: "Shri Rajesh Kumar Singh", Designation: "MLA"},
		Tone:        report.ToneFormal,
		Urgency:     report.UrgencyHigh,
		Template:    report.TemplateComplaint,
		RequestType: report.RequestResolution,
	}
}

func TestReportStepRules(t *testing.T) {
	tests := []struct {
		name    string
		step    int
		mutate  func(*report.Record)
		wantKey string
	}{
		{"complete record passes issue details", StepIssueDetails, nil, ""},
		{"missing title", StepIssueDetails, func(r *report.Record) { r.Title = " " }, "title"},
		{"missing category", StepIssueDetails, func(r *report.Record) { r.Category = "" }, "category"},
		{"bogus category", StepIssueDetails, func(r *report.Record) { r.Category = "weather" }, "category"},
		{"short description", StepIssueDetails, func(r *report.Record) { r.Description = "too short" }, "description"},
		{"exactly 20 chars passes", StepIssueDetails, func(r *report.Record) { r.Description = strings.Repeat("x", 20) }, ""},
		{"complete record passes location", StepLocationMedia, nil, ""},
		{"missing address", StepLocationMedia, func(r *report.Record) { r.Address = "" }, "address"},
		{"latitude without longitude", StepLocationMedia, func(r *report.Record) { r.Longitude = nil }, "location"},
		{"longitude without latitude", StepLocationMedia, func(r *report.Record) { r.Latitude = nil }, "location"},
		{"missing both coordinates", StepLocationMedia, func(r *report.Record) { r.Latitude, r.Longitude = nil, nil }, "location"},
		{"complete record passes priority step", StepPriorityDept, nil, ""},
		{"missing priority", StepPriorityDept, func(r *report.Record) { r.Priority = "" }, "priority"},
		{"missing department", StepPriorityDept, func(r *report.Record) { r.Department = "" }, "department"},
		{"review validates nothing", StepReview, func(r *report.Record) { *r = report.Record{} }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validReportRecord()
			if tt.mutate != nil {
				tt.mutate(rec)
			}
			errs := Validate(FlowReport, tt.step, rec)
			if tt.wantKey == "" {
				if len(errs) != 0 {
					t.Fatalf("expected clean step, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantKey]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantKey, errs)
			}
		})
	}
}

func TestLetterStepRules(t *testing.T) {
	tests := []struct {
		name    string
		step    int
		mutate  func(*report.Record)
		wantKey string
	}{
		{"complete record passes grievance step", StepGrievance, nil, ""},
		{"short description blocked at 49", StepGrievance, func(r *report.Record) { r.Description = strings.Repeat("x", 49) }, "description"},
		{"50 chars passes", StepGrievance, func(r *report.Record) { r.Description = strings.Repeat("x", 50) }, ""},
		{"missing location", StepGrievance, func(r *report.Record) { r.Location = "" }, "location"},
		{"missing recipient", StepRecipient, func(r *report.Record) { r.Recipient = nil }, "recipient"},
		{"missing tone", StepPreferences, func(r *report.Record) { r.Tone = "" }, "tone"},
		{"bogus urgency", StepPreferences, func(r *report.Record) { r.Urgency = "urgent" }, "urgency"},
		{"missing template", StepPreferences, func(r *report.Record) { r.Template = "" }, "template"},
		{"preview validates nothing", StepPreview, func(r *report.Record) { *r = report.Record{} }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validLetterRecord()
			if tt.mutate != nil {
				tt.mutate(rec)
			}
			errs := Validate(FlowLetter, tt.step, rec)
			if tt.wantKey == "" {
				if len(errs) != 0 {
					t.Fatalf("expected clean step, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantKey]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantKey, errs)
			}
		})
	}
}

func TestLocationStepRequiresCoordinates(t *testing.T) {
	// An address alone is not a complete location. A record that never
	// captured coordinates must be held at the location step.
	rec := &report.Record{Address: "Station Road, Ranchi"}
	errs := Validate(FlowReport, StepLocationMedia, rec)
	if msg, ok := errs["location"]; !ok {
		t.Fatalf("expected a location error, got %v", errs)
	} else if msg != "Please provide location coordinates" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestDescriptionMinimumsDiverge(t *testing.T) {
	// The report wizard accepts 20 characters; the letter wizard
	// requires 50 for the analogous field. Both minimums are asserted
	// here so a refactor that unifies them fails loudly.
	rec := validReportRecord()
	rec.Description = strings.Repeat("x", 25)
	if errs := Validate(FlowReport, StepIssueDetails, rec); len(errs) != 0 {
		t.Fatalf("report flow rejected a 25-char description: %v", errs)
	}

	lrec := validLetterRecord()
	lrec.Description = strings.Repeat("x", 25)
	errs := Validate(FlowLetter, StepGrievance, lrec)
	if _, ok := errs["description"]; !ok {
		t.Fatal("letter flow accepted a 25-char description")
	}
}
