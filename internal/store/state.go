package store

import "time"

// Selection is what the operator has chosen for one satellite.
type Selection struct {
	InputFile  string `json:"input_file,omitempty"`
	Decoded    bool   `json:"decoded"`
	Decoder    string `json:"decoder,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
}

// IsZero reports whether nothing has been selected.
func (s Selection) IsZero() bool {
	return s == Selection{}
}

// ActivityEntry records one applied action.
type ActivityEntry struct {
	ID        string     `json:"id"`
	Type      ActionType `json:"type"`
	Satellite string     `json:"satellite,omitempty"`
	At        time.Time  `json:"at"`
}

// State is the application state for one session. Values returned by
// Store.GetState are deep copies and may be retained or modified freely.
type State struct {
	SessionID  string               `json:"session_id"`
	StartedAt  time.Time            `json:"started_at"`
	Revision   uint64               `json:"revision"`
	Satellite  string               `json:"satellite,omitempty"`
	Selections map[string]Selection `json:"selections"`
	Activity   []ActivityEntry      `json:"activity"`
}

// Selection returns the selection for satellite, or the zero Selection.
func (s State) Selection(satellite string) Selection {
	return s.Selections[satellite]
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Selections = make(map[string]Selection, len(s.Selections))
	for k, v := range s.Selections {
		out.Selections[k] = v
	}
	out.Activity = append([]ActivityEntry(nil), s.Activity...)
	return out
}
