package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"janconnect/internal/report"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func submittedRecord(trackingID, category string) *report.Record {
	now := time.Now().UTC().Truncate(time.Second)
	return &report.Record{
		Title:       "Overflowing drain",
		Category:    category,
		Description: "The drain near the market has been overflowing since the last rains.",
		Priority:    report.PriorityHigh,
		Department:  report.DeptMunicipal,
		TrackingID:  trackingID,
		SubmittedAt: &now,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)

	rec := submittedRecord("JC123456ABCD", "drainage")
	sub, err := s.SaveSubmission("report", rec)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, sub.Status)

	got, err := s.GetByTrackingID("JC123456ABCD")
	require.NoError(t, err)
	assert.Equal(t, "report", got.Flow)
	assert.Equal(t, "Overflowing drain", got.Record.Title)
	assert.Equal(t, rec.SubmittedAt.Unix(), got.SubmittedAt.Unix())
}

func TestSaveRejectsUnsubmittedRecord(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SaveSubmission("report", &report.Record{Title: "no tracking id"})
	require.Error(t, err)
}

func TestGetUnknownTrackingID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetByTrackingID("JC000000XXXX")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveSubmission("report", submittedRecord("JC111111AAAA", "roads"))
	require.NoError(t, err)
	_, err = s.SaveSubmission("report", submittedRecord("JC222222BBBB", "drainage"))
	require.NoError(t, err)
	_, err = s.SaveSubmission("letter", submittedRecord("GL333333CCCC", "Water Supply"))
	require.NoError(t, err)

	all, err := s.List(ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	reports, err := s.List(ListFilter{Flow: "report"})
	require.NoError(t, err)
	assert.Len(t, reports, 2)

	drainage, err := s.List(ListFilter{Category: "drainage"})
	require.NoError(t, err)
	require.Len(t, drainage, 1)
	assert.Equal(t, "JC222222BBBB", drainage[0].TrackingID)

	limited, err := s.List(ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStatusTimeline(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveSubmission("report", submittedRecord("JC444444DDDD", "roads"))
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus("JC444444DDDD", StatusAcknowledged, "Assigned to PWD ward office"))
	require.NoError(t, s.UpdateStatus("JC444444DDDD", StatusInProgress, ""))

	sub, err := s.GetByTrackingID("JC444444DDDD")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, sub.Status)

	events, err := s.Timeline("JC444444DDDD")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, StatusSubmitted, events[0].Status)
	assert.Equal(t, StatusAcknowledged, events[1].Status)
	assert.Equal(t, "Assigned to PWD ward office", events[1].Note)
	assert.Equal(t, StatusInProgress, events[2].Status)
}

func TestUpdateStatusValidation(t *testing.T) {
	s := newTestStore(t)

	require.Error(t, s.UpdateStatus("JC555555EEEE", "bogus", ""))
	require.ErrorIs(t, s.UpdateStatus("JC555555EEEE", StatusResolved, ""), ErrNotFound)
}

func TestDuplicateTrackingIDRejected(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveSubmission("report", submittedRecord("JC666666FFFF", "roads"))
	require.NoError(t, err)
	_, err = s.SaveSubmission("report", submittedRecord("JC666666FFFF", "roads"))
	require.Error(t, err, "tracking ids are unique in history")
}
