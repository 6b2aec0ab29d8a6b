// Package catalog holds the fixed option sets and official rosters both
// wizards present: category/priority/department choices for issue reports,
// tone/urgency/template/request choices for letters, the suggested
// officials of the report flow, and the letter recipients. The data is
// embedded YAML so the binary is self-contained.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"janconnect/internal/report"
)

//go:embed data.yaml
var rawData []byte

// Option is one selectable choice with its display label.
type Option struct {
	Value       string `yaml:"value"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
}

// Preset is a letter template library entry: choosing one pre-fills the
// letter customization step.
type Preset struct {
	ID          string             `yaml:"id"`
	Title       string             `yaml:"title"`
	Description string             `yaml:"description"`
	Template    report.Template    `yaml:"template"`
	Tone        report.Tone        `yaml:"tone"`
	Urgency     report.Urgency     `yaml:"urgency"`
	RequestType report.RequestType `yaml:"request_type"`
}

// Catalog bundles every fixed option set.
type Catalog struct {
	ReportCategories []Option `yaml:"report_categories"`
	LetterCategories []string `yaml:"letter_categories"`
	Priorities       []Option `yaml:"priorities"`
	Departments      []Option `yaml:"departments"`
	Tones            []Option `yaml:"tones"`
	Urgencies        []Option `yaml:"urgencies"`
	Templates        []Option `yaml:"templates"`
	RequestTypes     []Option `yaml:"request_types"`

	SuggestedOfficials []report.Official `yaml:"suggested_officials"`
	Recipients         []report.Official `yaml:"recipients"`
	Presets            []Preset          `yaml:"presets"`
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses the embedded catalog. The result is cached; repeated calls
// return the same instance.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		c := &Catalog{}
		if err := yaml.Unmarshal(rawData, c); err != nil {
			loadErr = fmt.Errorf("failed to parse embedded catalog: %w", err)
			return
		}
		loaded = c
	})
	return loaded, loadErr
}

// OfficialByID finds a suggested official by id.
func (c *Catalog) OfficialByID(id int) (report.Official, bool) {
	for _, o := range c.SuggestedOfficials {
		if o.ID == id {
			return o, true
		}
	}
	return report.Official{}, false
}

// RecipientByID finds a letter recipient by id.
func (c *Catalog) RecipientByID(id int) (report.Official, bool) {
	for _, o := range c.Recipients {
		if o.ID == id {
			return o, true
		}
	}
	return report.Official{}, false
}

// PresetByID finds a letter preset by id.
func (c *Catalog) PresetByID(id string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// LabelFor returns the display label for a value within an option set,
// falling back to the raw value.
func LabelFor(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
