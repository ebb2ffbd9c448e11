package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/banshee-data/groundstation/internal/httputil"
	"github.com/banshee-data/groundstation/internal/monitoring"
	"github.com/banshee-data/groundstation/internal/store"
)

// eventBuffer is how many states a slow client may fall behind before
// updates are dropped for it.
const eventBuffer = 8

// events streams the state as server-sent events: the current state on
// connect, then one event per dispatch.
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w, http.MethodGet)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.InternalServerError(w, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering for nginx

	c := make(chan store.State, eventBuffer)
	unsubscribe := s.store.Subscribe(func(st store.State) {
		select {
		case c <- st:
		default:
			monitoring.Logf("events: dropping revision %d for slow client %s", st.Revision, r.RemoteAddr)
		}
	})
	defer unsubscribe()

	ticker := s.clock.NewTicker(s.keepalive)
	defer ticker.Stop()

	if err := writeStateEvent(w, s.store.GetState()); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case st := <-c:
			if err := writeStateEvent(w, st); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C():
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func writeStateEvent(w http.ResponseWriter, st store.State) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\ndata: %s\n\n", st.Revision, payload)
	return err
}
