package draft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"janconnect/internal/report"
)

func sampleRecord() *report.Record {
	lat, lng := 23.3441, 85.3096
	return &report.Record{
		Title:       "Streetlight outage on Main Road",
		Category:    "electricity",
		Description: "The entire stretch between the market and the bus stand has been dark for two weeks.",
		Address:     "Main Road, Ranchi",
		Latitude:    &lat,
		Longitude:   &lng,
		Priority:    report.PriorityHigh,
		Department:  report.DeptElectricity,
		Images: []report.Attachment{
			{ID: "img-1", Name: "pole.jpg", SizeBytes: 204800, MimeType: "image/jpeg"},
		},
		SelectedOfficials: []int{1, 3},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, KeyIssueReport)

	rec := sampleRecord()
	require.NoError(t, s.Save(rec))

	got, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("record mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	s := NewFileStore(t.TempDir(), KeyLetter)
	got, err := s.Load()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, KeyIssueReport)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drafts"), 0755))
	path := filepath.Join(dir, "drafts", KeyIssueReport+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	got, err := s.Load()
	require.NoError(t, err, "corrupt draft must not surface an error")
	require.Nil(t, got)
}

func TestFileStoreSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, KeyIssueReport)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drafts"), 0755))
	path := filepath.Join(dir, "drafts", KeyIssueReport+".json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"schema_version": 99, "record": {"title": "old"}}`), 0600))

	got, err := s.Load()
	require.NoError(t, err)
	require.Nil(t, got, "future schema version must read as no draft")
}

func TestFileStoreClear(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, KeyIssueReport)

	require.NoError(t, s.Save(sampleRecord()))
	require.NoError(t, s.Clear())

	got, err := s.Load()
	require.NoError(t, err)
	require.Nil(t, got)

	// Clearing again is still fine.
	require.NoError(t, s.Clear())
}

func TestFileStoreSlotsAreIndependent(t *testing.T) {
	dir := t.TempDir()
	reportSlot := NewFileStore(dir, KeyIssueReport)
	letterSlot := NewFileStore(dir, KeyLetter)

	require.NoError(t, reportSlot.Save(sampleRecord()))

	got, err := letterSlot.Load()
	require.NoError(t, err)
	require.Nil(t, got, "letter slot must not see the report draft")

	require.NoError(t, letterSlot.Clear())
	got, err = reportSlot.Load()
	require.NoError(t, err)
	require.NotNil(t, got, "clearing the letter slot must not touch the report draft")
}

func TestMemStoreRoundTrip(t *testing.T) {
	s := NewMemStore()

	got, err := s.Load()
	require.NoError(t, err)
	require.Nil(t, got)

	rec := sampleRecord()
	require.NoError(t, s.Save(rec))

	got, err = s.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("record mismatch after round trip (-want +got):\n%s", diff)
	}

	require.NoError(t, s.Clear())
	got, err = s.Load()
	require.NoError(t, err)
	require.Nil(t, got)
}
