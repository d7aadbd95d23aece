package models

// FlitModeState maps a port-group starting index to its reported flit
// framing state (true = enabled). Groups the device has not reported yet
// are absent from the map, which is distinct from an observed "disabled".
type FlitModeState map[int]bool

// Clone returns an independent copy of the state.
func (s FlitModeState) Clone() FlitModeState {
	c := make(FlitModeState, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}
