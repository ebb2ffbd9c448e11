package store

// Reduce returns the state that results from applying a to s. It never
// modifies s. Actions without a target satellite leave the state unchanged.
// Bookkeeping (Revision, Activity) is the Store's job, not Reduce's.
func Reduce(s State, a Action) State {
	next := s.Clone()
	satellite := a.Target()
	if satellite == "" {
		return next
	}

	sel := next.Selections[satellite]
	switch act := a.(type) {
	case SelectSatellite:
		next.Satellite = satellite
		return next
	case SelectFile:
		sel.InputFile = act.Path
		sel.Decoded = act.Decoded
		next.Satellite = satellite
	case ClearFile:
		sel.InputFile = ""
		sel.Decoded = false
	case SelectDecoder:
		sel.Decoder = act.Decoder
	case SetOutput:
		sel.OutputPath = act.Path
	default:
		return next
	}

	if sel.IsZero() {
		delete(next.Selections, satellite)
	} else {
		next.Selections[satellite] = sel
	}
	return next
}
