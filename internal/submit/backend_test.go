package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"janconnect/internal/report"
)

func TestTrackingIDFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := NewTrackingID(PrefixReport)
		require.True(t, ValidTrackingID(id), "bad id %q", id)
		require.Equal(t, "JC", id[:2])
		seen[id] = true
	}
	// The random suffix keeps same-millisecond ids apart. 200 draws
	// colliding would need duplicate 4-char suffixes within one ms.
	require.Greater(t, len(seen), 195)

	require.True(t, ValidTrackingID(NewTrackingID(PrefixLetter)))
	require.False(t, ValidTrackingID("JC12345"))
	require.False(t, ValidTrackingID("jc123456ABCD"))
}

func TestHTTPBackendSubmit(t *testing.T) {
	var got report.Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"trackingId": "JC123456ABCD"})
	}))
	defer srv.Close()

	b := NewHTTPBackend(srv.URL, PrefixReport, 5*time.Second)
	id, err := b.Submit(context.Background(), &report.Record{Title: "Pothole"})
	require.NoError(t, err)
	require.Equal(t, "JC123456ABCD", id)
	require.Equal(t, "Pothole", got.Title)
}

func TestHTTPBackendMintsWhenUnassigned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	b := NewHTTPBackend(srv.URL, PrefixLetter, 5*time.Second)
	id, err := b.Submit(context.Background(), &report.Record{})
	require.NoError(t, err)
	require.True(t, ValidTrackingID(id))
	require.Equal(t, "GL", id[:2])
}

func TestHTTPBackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "intake closed", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	b := NewHTTPBackend(srv.URL, PrefixReport, 5*time.Second)
	_, err := b.Submit(context.Background(), &report.Record{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "intake closed")
}

func TestSimulatedBackend(t *testing.T) {
	b := NewSimulatedBackend(PrefixReport, 10*time.Millisecond)
	id, err := b.Submit(context.Background(), &report.Record{})
	require.NoError(t, err)
	require.True(t, ValidTrackingID(id))
}

func TestSimulatedBackendCancellation(t *testing.T) {
	b := NewSimulatedBackend(PrefixReport, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := b.Submit(ctx, &report.Record{})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("submit did not observe cancellation")
	}
}
