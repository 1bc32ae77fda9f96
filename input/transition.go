package input

// Transitions classifies one frame's key changes, the three sets are disjoint
type Transitions struct {
	Pressed  KeySet // down this frame, up last frame
	Held     KeySet // down this frame and last frame
	Released KeySet // down last frame, up this frame
}

// Diff compares this frame's snapshot with the previous one
// An empty previous set makes every current key a press
func Diff(current, previous KeySet) Transitions {
	t := Transitions{
		Pressed:  make(KeySet),
		Held:     make(KeySet),
		Released: make(KeySet),
	}

	for k := range current {
		if previous.Has(k) {
			t.Held.Add(k)
		} else {
			t.Pressed.Add(k)
		}
	}

	for k := range previous {
		if !current.Has(k) {
			t.Released.Add(k)
		}
	}

	return t
}

// Empty reports whether nothing is down and nothing was released
func (t Transitions) Empty() bool {
	return len(t.Pressed) == 0 && len(t.Held) == 0 && len(t.Released) == 0
}
