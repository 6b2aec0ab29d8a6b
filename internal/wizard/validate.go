// Package wizard implements the step-gated submission flows: per-step
// field validation and the controller state machine that owns one
// in-progress record at a time.
package wizard

import (
	"strings"

	"janconnect/internal/report"
)

// Flow selects which rule set and step sequence a controller runs.
type Flow int

const (
	// FlowReport is the four-step civic issue report.
	FlowReport Flow = iota
	// FlowLetter is the four-step AI-assisted grievance letter.
	FlowLetter
)

// Step indices for the report flow.
const (
	StepIssueDetails = iota
	StepLocationMedia
	StepPriorityDept
	StepReview
)

// Step indices for the letter flow.
const (
	StepGrievance = iota
	StepRecipient
	StepPreferences
	StepPreview
)

// StepCount is the number of steps in either flow.
const StepCount = 4

// Minimum description lengths differ between the two flows on purpose:
// a report only needs enough text to act on, while the letter flow needs
// enough material for generation to produce something coherent.
const (
	minReportDescription = 20
	minLetterDescription = 50
)

// Errors maps field names to human-readable messages. A step is complete
// iff its Errors value is empty.
type Errors map[string]string

// Validate returns the field errors for one step of a flow. It is a pure
// function of the record; it never mutates anything.
func Validate(flow Flow, step int, rec *report.Record) Errors {
	if flow == FlowLetter {
		return validateLetterStep(step, rec)
	}
	return validateReportStep(step, rec)
}

func validateReportStep(step int, rec *report.Record) Errors {
	errs := Errors{}
	switch step {
	case StepIssueDetails:
		if strings.TrimSpace(rec.Title) == "" {
			errs["title"] = "Title is required"
		}
		if rec.Category == "" {
			errs["category"] = "Please select a category"
		} else if !report.ValidReportCategory(rec.Category) {
			errs["category"] = "Unknown category"
		}
		if desc := strings.TrimSpace(rec.Description); desc == "" {
			errs["description"] = "Description is required"
		} else if len(desc) < minReportDescription {
			errs["description"] = "Description must be at least 20 characters"
		}
	case StepLocationMedia:
		if strings.TrimSpace(rec.Address) == "" {
			errs["address"] = "Address is required"
		}
		// Both coordinates are required; a missing pair or a half-filled
		// pair gets the same combined error.
		if rec.Latitude == nil || rec.Longitude == nil {
			errs["location"] = "Please provide location coordinates"
		}
	case StepPriorityDept:
		if rec.Priority == "" {
			errs["priority"] = "Please select a priority level"
		} else if !rec.Priority.Valid() {
			errs["priority"] = "Unknown priority level"
		}
		if rec.Department == "" {
			errs["department"] = "Please select a department"
		} else if !rec.Department.Valid() {
			errs["department"] = "Unknown department"
		}
	case StepReview:
		// Nothing new: earlier gates already hold by construction.
	}
	return errs
}

func validateLetterStep(step int, rec *report.Record) Errors {
	errs := Errors{}
	switch step {
	case StepGrievance:
		if rec.Category == "" {
			errs["category"] = "Please select a grievance category"
		} else if !report.ValidLetterCategory(rec.Category) {
			errs["category"] = "Unknown grievance category"
		}
		if desc := strings.TrimSpace(rec.Description); desc == "" {
			errs["description"] = "Description is required"
		} else if len(desc) < minLetterDescription {
			errs["description"] = "Please provide at least 50 characters describing your grievance"
		}
		if strings.TrimSpace(rec.Location) == "" {
			errs["location"] = "Location is required"
		}
	case StepRecipient:
		if rec.Recipient == nil {
			errs["recipient"] = "Please select a recipient"
		}
	case StepPreferences:
		if !rec.Tone.Valid() {
			errs["tone"] = "Please select a tone"
		}
		if !rec.Urgency.Valid() {
			errs["urgency"] = "Please select an urgency level"
		}
		if !rec.Template.Valid() {
			errs["template"] = "Please select a letter type"
		}
		if !rec.RequestType.Valid() {
			errs["requestType"] = "Please select a request type"
		}
	case StepPreview:
	}
	return errs
}
