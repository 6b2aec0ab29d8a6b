// Package letter turns a submission record into formal grievance letter
// text, either through the Gemini API or a deterministic template
// fallback when the API is not available.
package letter

import (
	"fmt"
	"strings"
	"time"

	"janconnect/internal/report"
)

// Defaults substituted for unset record fields when building prompts and
// fallback letters, mirroring the web client's behavior.
const (
	defaultRecipientName = "Government Official"
	defaultDesignation   = "Official"
	defaultDepartment    = "Government Department"
	defaultOfficeAddress = "Government Office"
	defaultCategory      = "General Issue"
	defaultLocation      = "Not specified"
)

// letterDate formats the correspondence date in Indian dd/mm/yyyy style.
func letterDate(now time.Time) string {
	return now.Format("02/01/2006")
}

func recipientOf(rec *report.Record) report.Official {
	if rec.Recipient != nil {
		return *rec.Recipient
	}
	return report.Official{
		Name:        defaultRecipientName,
		Designation: defaultDesignation,
		Department:  defaultDepartment,
		Address:     defaultOfficeAddress,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// BuildPrompt assembles the single structured generation prompt covering
// every letter-relevant field plus the formatting instructions Indian
// government correspondence expects.
func BuildPrompt(rec *report.Record, now time.Time) string {
	to := recipientOf(rec)
	tone := string(rec.Tone)
	if tone == "" {
		tone = string(report.ToneFormal)
	}
	urgency := string(rec.Urgency)
	if urgency == "" {
		urgency = string(report.UrgencyNormal)
	}
	template := string(rec.Template)
	if template == "" {
		template = string(report.TemplateComplaint)
	}
	requestType := string(rec.RequestType)
	if requestType == "" {
		requestType = string(report.RequestResolution)
	}

	var b strings.Builder
	b.WriteString("Generate a professional grievance letter with the following specifications:\n\n")
	b.WriteString("**Letter Details:**\n")
	fmt.Fprintf(&b, "- Date: %s\n", letterDate(now))
	fmt.Fprintf(&b, "- Recipient: %s\n", orDefault(to.Name, defaultRecipientName))
	fmt.Fprintf(&b, "- Recipient Designation: %s\n", orDefault(to.Designation, defaultDesignation))
	fmt.Fprintf(&b, "- Recipient Department: %s\n", orDefault(to.Department, defaultDepartment))
	fmt.Fprintf(&b, "- Recipient Address: %s\n", orDefault(to.Address, defaultOfficeAddress))
	fmt.Fprintf(&b, "- Issue Category: %s\n", orDefault(rec.Category, defaultCategory))
	fmt.Fprintf(&b, "- Location: %s\n", orDefault(rec.Location, defaultLocation))
	fmt.Fprintf(&b, "- Urgency Level: %s\n", urgency)
	fmt.Fprintf(&b, "- Tone: %s\n", tone)
	fmt.Fprintf(&b, "- Template Type: %s\n", template)
	fmt.Fprintf(&b, "- Request Type: %s\n", requestType)

	b.WriteString("\n**Issue Description:**\n")
	b.WriteString(orDefault(rec.Description, "Please provide a detailed description of the issue."))
	b.WriteString("\n\n**Additional Details:**\n")
	b.WriteString(orDefault(rec.AdditionalDetails, "No additional details provided."))

	b.WriteString("\n\n**Instructions:**\n")
	fmt.Fprintf(&b, `1. Create a professional, well-structured grievance letter following Indian government correspondence standards
2. Include proper date, recipient details, and subject line
3. Use formal language appropriate for government communication
4. Structure the letter with clear paragraphs: opening, issue description, impact, request for action, and closing
5. Ensure the tone matches the specified preference (%s)
6. Make the urgency level (%s) apparent in the language used
7. Include appropriate salutation and closing based on the recipient's designation
8. Format for official correspondence with proper spacing and structure
9. Include placeholders for sender's details at the end: [Your Name], [Your Address], [Your Phone Number], [Your Email]
10. Ensure the letter is professional, respectful, and persuasive
`, tone, urgency)

	b.WriteString(`
**Subject Line Requirements:**
- For complaint: "Complaint regarding [category] in [location]"
- For RTI: "Application for Information under Right to Information Act, 2005"
- For suggestion: "Suggestion for Improvement - [category]"
- Add "URGENT:" prefix if urgency is critical

Generate only the letter content without any additional explanations or markdown formatting.`)

	return b.String()
}
