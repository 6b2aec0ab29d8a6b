package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"janconnect/internal/report"
)

func TestLoadParsesEmbeddedData(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.ReportCategories, len(report.ReportCategories))
	assert.Len(t, c.LetterCategories, len(report.LetterCategories))
	assert.Len(t, c.Priorities, len(report.Priorities))
	assert.Len(t, c.Departments, len(report.Departments))
	assert.Len(t, c.Tones, len(report.Tones))
	assert.Len(t, c.Urgencies, len(report.Urgencies))
	assert.Len(t, c.Templates, len(report.Templates))
	assert.Len(t, c.RequestTypes, len(report.RequestTypes))
	assert.NotEmpty(t, c.SuggestedOfficials)
	assert.Len(t, c.Recipients, 5)
}

func TestOptionValuesMatchEnums(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, o := range c.ReportCategories {
		assert.True(t, report.ValidReportCategory(o.Value), "category %q", o.Value)
	}
	for _, o := range c.Priorities {
		assert.True(t, report.Priority(o.Value).Valid(), "priority %q", o.Value)
	}
	for _, o := range c.Departments {
		assert.True(t, report.Department(o.Value).Valid(), "department %q", o.Value)
	}
	for _, o := range c.Urgencies {
		assert.True(t, report.Urgency(o.Value).Valid(), "urgency %q", o.Value)
	}
	for _, cat := range c.LetterCategories {
		assert.True(t, report.ValidLetterCategory(cat), "letter category %q", cat)
	}
}

func TestLookups(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	official, ok := c.OfficialByID(2)
	require.True(t, ok)
	assert.Equal(t, "Priya Sharma", official.Name)

	_, ok = c.OfficialByID(999)
	assert.False(t, ok)

	recipient, ok := c.RecipientByID(3)
	require.True(t, ok)
	assert.Equal(t, "District Magistrate", recipient.Designation)

	preset, ok := c.PresetByID("rti-application")
	require.True(t, ok)
	assert.Equal(t, report.TemplateRTI, preset.Template)

	assert.Equal(t, "Public Works Department", LabelFor(c.Departments, "pwd"))
	assert.Equal(t, "unknown", LabelFor(c.Departments, "unknown"))
}
