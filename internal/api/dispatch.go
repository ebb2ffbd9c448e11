package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/banshee-data/groundstation/internal/catalog"
	"github.com/banshee-data/groundstation/internal/httputil"
	"github.com/banshee-data/groundstation/internal/security"
	"github.com/banshee-data/groundstation/internal/store"
)

const maxDispatchBody = 1 << 20

// errNotFound marks a dispatch that names something that does not exist.
var errNotFound = errors.New("not found")

// dispatch applies one action. JSON bodies get the new state back; form
// posts carrying a local redirect target are sent there with a 303.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w, http.MethodPost)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxDispatchBody)

	req, redirect, err := decodeActionRequest(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	if redirect != "" && !httputil.LocalRedirectTarget(redirect) {
		httputil.BadRequest(w, "redirect must be a local path")
		return
	}

	action, err := store.ParseAction(req)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	action, err = s.checkAction(action)
	switch {
	case errors.Is(err, errNotFound):
		httputil.NotFound(w, err.Error())
		return
	case err != nil:
		httputil.BadRequest(w, err.Error())
		return
	}

	state := s.store.Dispatch(action)

	if redirect != "" {
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}
	httputil.WriteJSONOK(w, state)
}

func decodeActionRequest(r *http.Request) (store.ActionRequest, string, error) {
	var req store.ActionRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, "", fmt.Errorf("invalid JSON body: %w", err)
		}
		return req, "", nil
	}

	if err := r.ParseForm(); err != nil {
		return req, "", fmt.Errorf("invalid form: %w", err)
	}
	req.Type = r.PostFormValue("type")
	req.Satellite = r.PostFormValue("satellite")
	req.Path = strings.TrimSpace(r.PostFormValue("path"))
	req.Decoder = r.PostFormValue("decoder")
	switch v := r.PostFormValue("decoded"); v {
	case "":
	case "on": // unchecked checkboxes are omitted entirely
		req.Decoded = true
	default:
		decoded, err := strconv.ParseBool(v)
		if err != nil {
			return req, "", fmt.Errorf("invalid decoded flag %q", v)
		}
		req.Decoded = decoded
	}
	return req, r.PostFormValue("redirect"), nil
}

// checkAction validates an action against the data directory and catalog
// and returns it with any path normalised.
func (s *Server) checkAction(a store.Action) (store.Action, error) {
	switch act := a.(type) {
	case store.SelectFile:
		path, err := security.ResolveWithinDirectory(act.Path, s.dataDir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		if !s.fs.Exists(path) {
			return nil, fmt.Errorf("%w: file %s", errNotFound, act.Path)
		}
		info, err := s.fs.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", act.Path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", act.Path)
		}
		act.Path = path
		return act, nil

	case store.SelectDecoder:
		if act.Satellite == "" {
			return act, nil
		}
		sat, err := s.catalog.Satellite(act.Satellite)
		if errors.Is(err, catalog.ErrUnknownSatellite) {
			return nil, fmt.Errorf("%w: satellite %s", errNotFound, act.Satellite)
		}
		if err != nil {
			return nil, err
		}
		if !sat.HasDecoder(act.Decoder) {
			return nil, fmt.Errorf("decoder %q is not available for %s", act.Decoder, sat.Datalink)
		}
		return act, nil
	}
	return a, nil
}
