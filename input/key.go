// Package input models keyboard state as per-frame key snapshots and classifies
// frame-to-frame changes into press, hold and release transitions.
package input

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags a Key as a literal character or one of the named keys
type Kind uint8

const (
	KindUnknown Kind = iota
	KindRune         // Literal character, see Key.Rune
	KindUp
	KindDown
	KindLeft
	KindRight
	KindSpace
	KindEnter
	KindShift
	KindCtrl
	KindEscape
)

var kindNames = [...]string{
	KindUnknown: "Unknown",
	KindRune:    "Rune",
	KindUp:      "Up",
	KindDown:    "Down",
	KindLeft:    "Left",
	KindRight:   "Right",
	KindSpace:   "Space",
	KindEnter:   "Enter",
	KindShift:   "Shift",
	KindCtrl:    "Ctrl",
	KindEscape:  "Escape",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Key is a comparable key value, Rune is only meaningful for KindRune
type Key struct {
	Kind Kind
	Rune rune
}

// Named keys
var (
	KeyUnknown = Key{Kind: KindUnknown}
	KeyUp      = Key{Kind: KindUp}
	KeyDown    = Key{Kind: KindDown}
	KeyLeft    = Key{Kind: KindLeft}
	KeyRight   = Key{Kind: KindRight}
	KeySpace   = Key{Kind: KindSpace}
	KeyEnter   = Key{Kind: KindEnter}
	KeyShift   = Key{Kind: KindShift}
	KeyCtrl    = Key{Kind: KindCtrl}
	KeyEscape  = Key{Kind: KindEscape}
)

// Char returns the key for a literal character
func Char(r rune) Key {
	return Key{Kind: KindRune, Rune: r}
}

func (k Key) String() string {
	if k.Kind == KindRune {
		return fmt.Sprintf("'%c'", k.Rune)
	}
	return k.Kind.String()
}

// KeySet is the set of keys held at one poll instant
type KeySet map[Key]struct{}

// NewKeySet builds a set from the given keys
func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts k into the set
func (s KeySet) Add(k Key) {
	s[k] = struct{}{}
}

// Has reports whether k is in the set, safe on a nil set
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of keys
func (s KeySet) Len() int {
	return len(s)
}

// Clone returns an independent copy
func (s KeySet) Clone() KeySet {
	c := make(KeySet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// Equal reports whether both sets hold the same keys
func (s KeySet) Equal(o KeySet) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// Sorted returns the keys ordered by kind, then rune
func (s KeySet) Sorted() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		return keys[i].Rune < keys[j].Rune
	})
	return keys
}

func (s KeySet) String() string {
	keys := s.Sorted()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
