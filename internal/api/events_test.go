package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/groundstation/internal/store"
)

// readEvent returns the next data payload from an event stream, skipping
// comments and ids.
func readEvent(t *testing.T, r *bufio.Reader) store.State {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if payload, ok := strings.CutPrefix(strings.TrimRight(line, "\n"), "data: "); ok {
			var st store.State
			require.NoError(t, json.Unmarshal([]byte(payload), &st))
			return st
		}
	}
}

func TestEvents_StreamsDispatches(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	r := bufio.NewReader(resp.Body)

	initial := readEvent(t, r)
	assert.Equal(t, uint64(0), initial.Revision)

	f.store.Dispatch(store.SelectSatellite{Satellite: "meteor"})
	f.store.Dispatch(store.ClearFile{Satellite: "meteor"})

	first := readEvent(t, r)
	second := readEvent(t, r)
	assert.Equal(t, uint64(1), first.Revision)
	assert.Equal(t, "meteor", first.Satellite)
	assert.Equal(t, uint64(2), second.Revision)
}

func TestEvents_UnsubscribesOnDisconnect(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	readEvent(t, bufio.NewReader(resp.Body))

	cancel()
	resp.Body.Close()

	// A disconnected stream must never hold up dispatch.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 3*eventBuffer; i++ {
			f.store.Dispatch(store.SelectSatellite{Satellite: "meteor"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch blocked on a disconnected event stream")
	}
}
