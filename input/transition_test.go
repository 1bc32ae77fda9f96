package input

import (
	"math/rand"
	"testing"
)

func TestDiff(t *testing.T) {
	a, b, c := Char('a'), Char('b'), KeyUp

	tests := []struct {
		name     string
		current  KeySet
		previous KeySet
		pressed  KeySet
		held     KeySet
		released KeySet
	}{
		{
			name:     "nothing",
			current:  NewKeySet(),
			previous: NewKeySet(),
			pressed:  NewKeySet(),
			held:     NewKeySet(),
			released: NewKeySet(),
		},
		{
			name:     "first frame",
			current:  NewKeySet(a, c),
			previous: nil,
			pressed:  NewKeySet(a, c),
			held:     NewKeySet(),
			released: NewKeySet(),
		},
		{
			name:     "held and new",
			current:  NewKeySet(a, b),
			previous: NewKeySet(a),
			pressed:  NewKeySet(b),
			held:     NewKeySet(a),
			released: NewKeySet(),
		},
		{
			name:     "all released",
			current:  NewKeySet(),
			previous: NewKeySet(a, c),
			pressed:  NewKeySet(),
			held:     NewKeySet(),
			released: NewKeySet(a, c),
		},
		{
			name:     "mixed",
			current:  NewKeySet(b, c),
			previous: NewKeySet(a, c),
			pressed:  NewKeySet(b),
			held:     NewKeySet(c),
			released: NewKeySet(a),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.current, tt.previous)
			if !got.Pressed.Equal(tt.pressed) {
				t.Errorf("Pressed = %v, want %v", got.Pressed, tt.pressed)
			}
			if !got.Held.Equal(tt.held) {
				t.Errorf("Held = %v, want %v", got.Held, tt.held)
			}
			if !got.Released.Equal(tt.released) {
				t.Errorf("Released = %v, want %v", got.Released, tt.released)
			}
		})
	}
}

func randomKeySet(rng *rand.Rand) KeySet {
	universe := []Key{
		Char('a'), Char('b'), Char('z'), Char('1'),
		KeyUp, KeyDown, KeyLeft, KeyRight, KeySpace, KeyEnter, KeyShift, KeyCtrl, KeyEscape, KeyUnknown,
	}
	s := make(KeySet)
	for _, k := range universe {
		if rng.Intn(2) == 0 {
			s.Add(k)
		}
	}
	return s
}

// TestDiffPartition checks the three sets partition current ∪ previous for random inputs
func TestDiffPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		current := randomKeySet(rng)
		previous := randomKeySet(rng)
		tr := Diff(current, previous)

		union := current.Clone()
		for k := range previous {
			union.Add(k)
		}

		total := tr.Pressed.Len() + tr.Held.Len() + tr.Released.Len()
		if total != union.Len() {
			t.Fatalf("iteration %d: partition size %d, union size %d", i, total, union.Len())
		}

		for k := range union {
			in := 0
			if tr.Pressed.Has(k) {
				in++
				if !current.Has(k) || previous.Has(k) {
					t.Fatalf("iteration %d: %v pressed but not in current-previous", i, k)
				}
			}
			if tr.Held.Has(k) {
				in++
				if !current.Has(k) || !previous.Has(k) {
					t.Fatalf("iteration %d: %v held but not in current∩previous", i, k)
				}
			}
			if tr.Released.Has(k) {
				in++
				if current.Has(k) || !previous.Has(k) {
					t.Fatalf("iteration %d: %v released but not in previous-current", i, k)
				}
			}
			if in != 1 {
				t.Fatalf("iteration %d: %v appears in %d sets", i, k, in)
			}
		}
	}
}

// TestDiffFirstFrame verifies an empty previous set needs no special case
func TestDiffFirstFrame(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		current := randomKeySet(rng)
		tr := Diff(current, KeySet{})
		if !tr.Pressed.Equal(current) || tr.Held.Len() != 0 || tr.Released.Len() != 0 {
			t.Fatalf("iteration %d: first frame transitions = %+v for %v", i, tr, current)
		}
	}
}

func TestKeySetSorted(t *testing.T) {
	s := NewKeySet(KeyEscape, Char('b'), KeyUp, Char('a'))
	got := s.Sorted()
	want := []Key{Char('a'), Char('b'), KeyUp, KeyEscape}
	if len(got) != len(want) {
		t.Fatalf("Sorted() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if s.String() != "{'a' 'b' Up Escape}" {
		t.Errorf("String() = %q", s.String())
	}
}
