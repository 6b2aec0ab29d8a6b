package report

// Priority is the 4-level scale of the issue-reporting flow.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists the valid priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool { return contains(Priorities, p) }

// Department is the fixed enumeration of government departments a report
// can be routed to.
type Department string

const (
	DeptMunicipal   Department = "municipal"
	DeptPWD         Department = "pwd"
	DeptElectricity Department = "electricity"
	DeptWater       Department = "water"
	DeptHealth      Department = "health"
	DeptPolice      Department = "police"
	DeptFire        Department = "fire"
	DeptTransport   Department = "transport"
)

// Departments lists the valid departments in display order.
var Departments = []Department{
	DeptMunicipal, DeptPWD, DeptElectricity, DeptWater,
	DeptHealth, DeptPolice, DeptFire, DeptTransport,
}

func (d Department) Valid() bool { return contains(Departments, d) }

// Tone controls the register of a generated letter.
type Tone string

const (
	ToneFormal     Tone = "formal"
	ToneUrgent     Tone = "urgent"
	ToneDiplomatic Tone = "diplomatic"
)

// Tones lists the valid tones in display order.
var Tones = []Tone{ToneFormal, ToneUrgent, ToneDiplomatic}

func (t Tone) Valid() bool { return contains(Tones, t) }

// Urgency is the letter flow's 4-level scale. It is deliberately a
// different enumeration from Priority; the two flows never shared one.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Urgencies lists the valid urgencies in display order.
var Urgencies = []Urgency{UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyCritical}

func (u Urgency) Valid() bool { return contains(Urgencies, u) }

// Template selects the letter skeleton.
type Template string

const (
	TemplateComplaint  Template = "complaint"
	TemplateRTI        Template = "rti"
	TemplateSuggestion Template = "suggestion"
	TemplateFollowUp   Template = "followup"
)

// Templates lists the valid letter templates in display order.
var Templates = []Template{TemplateComplaint, TemplateRTI, TemplateSuggestion, TemplateFollowUp}

func (t Template) Valid() bool { return contains(Templates, t) }

// RequestType states what the letter asks the recipient to do.
type RequestType string

const (
	RequestResolution  RequestType = "resolution"
	RequestInformation RequestType = "information"
	RequestMeeting     RequestType = "meeting"
	RequestInspection  RequestType = "inspection"
)

// RequestTypes lists the valid request types in display order.
var RequestTypes = []RequestType{RequestResolution, RequestInformation, RequestMeeting, RequestInspection}

func (r RequestType) Valid() bool { return contains(RequestTypes, r) }

// ReportCategories are the machine categories of the issue-reporting flow.
var ReportCategories = []string{
	"roads", "water", "electricity", "sanitation", "streetlights",
	"drainage", "parks", "healthcare", "education", "safety", "other",
}

// LetterCategories are the display categories of the letter flow. The two
// flows intentionally keep separate category sets.
var LetterCategories = []string{
	"Water Supply Issues",
	"Road & Infrastructure",
	"Electricity Problems",
	"Waste Management",
	"Public Transportation",
	"Healthcare Services",
	"Education Facilities",
	"Police & Security",
	"Municipal Services",
	"Environmental Issues",
	"Other",
}

// ValidReportCategory reports membership in ReportCategories.
func ValidReportCategory(c string) bool {
	for _, cat := range ReportCategories {
		if cat == c {
			return true
		}
	}
	return false
}

// ValidLetterCategory reports membership in LetterCategories.
func ValidLetterCategory(c string) bool {
	for _, cat := range LetterCategories {
		if cat == c {
			return true
		}
	}
	return false
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
