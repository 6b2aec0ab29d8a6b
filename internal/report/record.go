// Package report defines the submission record shared by the issue-reporting
// and letter-generation wizards, plus the fixed enumerations both flows
// validate against.
package report

import (
	"time"
)

// MaxImages caps the number of attachments on a single record.
const MaxImages = 5

// Attachment describes one uploaded image. LocalURL points at the staged
// copy on disk; nothing is transferred until submission.
type Attachment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`
	LocalURL  string `json:"localUrl"`
}

// Official identifies a government official a record can be addressed or
// escalated to. Records reference officials by ID; the full rows live in
// the catalog.
type Official struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Designation    string `json:"designation"`
	Department     string `json:"department"`
	Address        string `json:"address,omitempty"`
	Contact        string `json:"contact,omitempty"`
	Email          string `json:"email,omitempty"`
	RelevanceScore int    `json:"relevanceScore,omitempty"`
}

// Record is the aggregate a wizard session accumulates. Exactly one Record
// is live per session; the wizard controller is its only mutator. Field
// names in JSON match the draft format of the original web client so old
// drafts stay readable.
type Record struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Location    string   `json:"location,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`

	Images            []Attachment `json:"images,omitempty"`
	Priority          Priority     `json:"priority,omitempty"`
	Department        Department   `json:"department,omitempty"`
	SelectedOfficials []int        `json:"selectedOfficials,omitempty"`

	// Letter flow.
	Tone              Tone        `json:"tone,omitempty"`
	Urgency           Urgency     `json:"urgency,omitempty"`
	Template          Template    `json:"template,omitempty"`
	RequestType       RequestType `json:"requestType,omitempty"`
	Recipient         *Official   `json:"recipient,omitempty"`
	AdditionalDetails string      `json:"additionalDetails,omitempty"`
	GeneratedLetter   string      `json:"generatedLetter,omitempty"`

	// Set exactly once, on successful submission. Immutable after.
	TrackingID  string     `json:"trackingId,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

// Submitted reports whether the record has completed a submission.
func (r *Record) Submitted() bool {
	return r.TrackingID != "" && r.SubmittedAt != nil
}

// AddImage appends an attachment, ignoring the add once MaxImages is
// reached. Returns false when the attachment was dropped.
func (r *Record) AddImage(a Attachment) bool {
	if len(r.Images) >= MaxImages {
		return false
	}
	r.Images = append(r.Images, a)
	return true
}

// RemoveImage removes the attachment with the given id, if present.
func (r *Record) RemoveImage(id string) bool {
	for i, img := range r.Images {
		if img.ID == id {
			r.Images = append(r.Images[:i], r.Images[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleOfficial flips membership of an official id in SelectedOfficials.
func (r *Record) ToggleOfficial(id int) {
	for i, existing := range r.SelectedOfficials {
		if existing == id {
			r.SelectedOfficials = append(r.SelectedOfficials[:i], r.SelectedOfficials[i+1:]...)
			return
		}
	}
	r.SelectedOfficials = append(r.SelectedOfficials, id)
}

// HasOfficial reports membership of an official id.
func (r *Record) HasOfficial(id int) bool {
	for _, existing := range r.SelectedOfficials {
		if existing == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Used to snapshot the record before a
// submission attempt so a failed call can leave the original untouched.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.Latitude != nil {
		lat := *r.Latitude
		out.Latitude = &lat
	}
	if r.Longitude != nil {
		lng := *r.Longitude
		out.Longitude = &lng
	}
	if r.Images != nil {
		out.Images = append([]Attachment(nil), r.Images...)
	}
	if r.SelectedOfficials != nil {
		out.SelectedOfficials = append([]int(nil), r.SelectedOfficials...)
	}
	if r.Recipient != nil {
		rec := *r.Recipient
		out.Recipient = &rec
	}
	if r.SubmittedAt != nil {
		at := *r.SubmittedAt
		out.SubmittedAt = &at
	}
	return &out
}
