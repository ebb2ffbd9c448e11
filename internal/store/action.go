package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is returned by ParseAction for an unrecognised type.
var ErrUnknownAction = errors.New("unknown action type")

// ActionType identifies an action on the wire and in the activity log.
type ActionType string

const (
	TypeSelectSatellite ActionType = "select_satellite"
	TypeSelectFile      ActionType = "select_file"
	TypeClearFile       ActionType = "clear_file"
	TypeSelectDecoder   ActionType = "select_decoder"
	TypeSetOutput       ActionType = "set_output"
)

// Action is a declared state transition.
type Action interface {
	Type() ActionType
	// Target is the satellite the action applies to; empty for none.
	Target() string
}

// SelectSatellite focuses the dashboard on a satellite.
type SelectSatellite struct {
	Satellite string
}

// SelectFile chooses the input file for a satellite. Decoded marks the file
// as already decoded so only processing remains.
type SelectFile struct {
	Satellite string
	Path      string
	Decoded   bool
}

// ClearFile forgets a satellite's input file.
type ClearFile struct {
	Satellite string
}

// SelectDecoder picks the decoder kind used for a satellite.
type SelectDecoder struct {
	Satellite string
	Decoder   string
}

// SetOutput sets the output directory for a satellite's products.
type SetOutput struct {
	Satellite string
	Path      string
}

func (SelectSatellite) Type() ActionType { return TypeSelectSatellite }
func (SelectFile) Type() ActionType      { return TypeSelectFile }
func (ClearFile) Type() ActionType       { return TypeClearFile }
func (SelectDecoder) Type() ActionType   { return TypeSelectDecoder }
func (SetOutput) Type() ActionType       { return TypeSetOutput }

func (a SelectSatellite) Target() string { return a.Satellite }
func (a SelectFile) Target() string      { return a.Satellite }
func (a ClearFile) Target() string       { return a.Satellite }
func (a SelectDecoder) Target() string   { return a.Satellite }
func (a SetOutput) Target() string       { return a.Satellite }

// ActionRequest is the flat wire form of an action, shared by JSON bodies
// and HTML form posts.
type ActionRequest struct {
	Type      string `json:"type"`
	Satellite string `json:"satellite"`
	Path      string `json:"path,omitempty"`
	Decoded   bool   `json:"decoded,omitempty"`
	Decoder   string `json:"decoder,omitempty"`
}

// ParseAction converts a wire request into an Action.
func ParseAction(req ActionRequest) (Action, error) {
	satellite := strings.TrimSpace(req.Satellite)
	switch ActionType(req.Type) {
	case TypeSelectSatellite:
		return SelectSatellite{Satellite: satellite}, nil
	case TypeSelectFile:
		if req.Path == "" {
			return nil, fmt.Errorf("%s: missing path", req.Type)
		}
		return SelectFile{Satellite: satellite, Path: req.Path, Decoded: req.Decoded}, nil
	case TypeClearFile:
		return ClearFile{Satellite: satellite}, nil
	case TypeSelectDecoder:
		if req.Decoder == "" {
			return nil, fmt.Errorf("%s: missing decoder", req.Type)
		}
		return SelectDecoder{Satellite: satellite, Decoder: req.Decoder}, nil
	case TypeSetOutput:
		return SetOutput{Satellite: satellite, Path: req.Path}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Type)
	}
}
