package letter

import (
	"fmt"
	"strings"
	"time"

	"janconnect/internal/report"
)

// casual-to-formal rewrites applied to the raw description. Ordered:
// earlier entries must not produce text a later entry would mangle.
var formalizations = []struct{ from, to string }{
	{"I think", "It appears that"},
	{"really bad", "severely inadequate"},
	{"a lot of", "numerous"},
	{"very", "extremely"},
}

// Fallback deterministically assembles letter text from fixed templates.
// It has no external dependencies and never fails, which is what lets the
// service guarantee a letter even when the API is down.
func Fallback(rec *report.Record, now time.Time) string {
	to := recipientOf(rec)
	return fmt.Sprintf(`Date: %s

To,
%s
%s
%s
%s

Subject: %s

%s,

%s

%s

Yours sincerely,

[Your Name]
[Your Address]
[Your Phone Number]
[Your Email]`,
		letterDate(now),
		orDefault(to.Name, defaultRecipientName),
		orDefault(to.Designation, defaultDesignation),
		orDefault(to.Department, defaultDepartment),
		orDefault(to.Address, defaultOfficeAddress),
		SubjectLine(rec),
		salutation(to.Designation),
		letterBody(rec),
		closing(rec),
	)
}

// SubjectLine builds the template-specific subject, with an URGENT:
// prefix for critical complaints.
func SubjectLine(rec *report.Record) string {
	category := orDefault(rec.Category, defaultCategory)
	switch rec.Template {
	case report.TemplateRTI:
		return fmt.Sprintf("Application for Information under Right to Information Act, 2005 - %s", category)
	case report.TemplateSuggestion:
		return fmt.Sprintf("Suggestion for Improvement - %s", category)
	case report.TemplateComplaint:
		prefix := ""
		if rec.Urgency == report.UrgencyCritical {
			prefix = "URGENT: "
		}
		return fmt.Sprintf("%sComplaint regarding %s in %s", prefix, category, orDefault(rec.Location, "specified area"))
	default:
		return fmt.Sprintf("Follow-up on %s Issue", category)
	}
}

func salutation(designation string) string {
	d := strings.ToLower(designation)
	if strings.Contains(d, "commissioner") || strings.Contains(d, "magistrate") {
		return "Dear Sir/Madam"
	}
	return "Respected Sir/Madam"
}

func letterBody(rec *report.Record) string {
	var b strings.Builder

	urgentMarker := ""
	if rec.Urgency == report.UrgencyCritical {
		urgentMarker = "urgent "
	}
	fmt.Fprintf(&b, "I am writing to bring to your attention a matter of %sconcern regarding %s in %s.\n\n",
		urgentMarker,
		strings.ToLower(orDefault(rec.Category, defaultCategory)),
		orDefault(rec.Location, "the specified area"))

	b.WriteString(formalize(orDefault(rec.Description, "Issue description not provided")))
	b.WriteString("\n\n")

	if rec.AdditionalDetails != "" {
		fmt.Fprintf(&b, "Additional Information:\n%s\n\n", rec.AdditionalDetails)
	}

	b.WriteString(requestParagraph(rec.RequestType))
	b.WriteString("\n\nI would be grateful for your prompt attention to this matter and look forward to a positive response. Please feel free to contact me if you require any additional information.\n\nThank you for your time and consideration.")

	return b.String()
}

// formalize applies the casual-to-formal substring rewrites and re-flows
// the text into paragraphs of three sentences.
func formalize(description string) string {
	enhanced := description
	for _, f := range formalizations {
		enhanced = strings.ReplaceAll(enhanced, f.from, f.to)
	}

	sentences := strings.Split(enhanced, ". ")
	var paragraphs []string
	var current strings.Builder
	for i, sentence := range sentences {
		current.WriteString(sentence)
		if i < len(sentences)-1 {
			current.WriteString(". ")
		}
		if (i+1)%3 == 0 || i == len(sentences)-1 {
			paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

func requestParagraph(rt report.RequestType) string {
	switch rt {
	case report.RequestResolution:
		return "I kindly request your immediate intervention to resolve this issue. The situation is causing significant inconvenience to the residents and requires urgent attention from the concerned authorities."
	case report.RequestInformation:
		return "I would appreciate if you could provide information regarding the current status of this matter and the steps being taken to address it."
	case report.RequestMeeting:
		return "I would be grateful if you could arrange a meeting to discuss this matter in detail and explore possible solutions."
	case report.RequestInspection:
		return "I request you to kindly arrange for an official inspection of the site to assess the situation and take appropriate action."
	default:
		return "I kindly request your immediate attention and appropriate action to resolve this matter at the earliest."
	}
}

func closing(rec *report.Record) string {
	switch {
	case rec.Urgency == report.UrgencyCritical:
		return "Given the urgent nature of this matter, I hope for your immediate attention and swift action."
	case rec.Tone == report.ToneDiplomatic:
		return "I am confident that with your support and guidance, this matter can be resolved amicably for the benefit of all concerned."
	default:
		return "I trust that you will give this matter your due consideration and take appropriate action."
	}
}
