package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lonely-engine/audio"
	"github.com/lixenwraith/lonely-engine/engine"
	"github.com/lixenwraith/lonely-engine/input"
)

type bufferSink struct{ bytes.Buffer }

func (s *bufferSink) Flush() error { return nil }

// scriptedKeys replays one snapshot per frame
type scriptedKeys struct {
	frames []input.KeySet
	next   int
}

func (s *scriptedKeys) Poll() (input.KeySet, error) {
	if s.next >= len(s.frames) {
		return input.NewKeySet(), nil
	}
	keys := s.frames[s.next]
	s.next++
	return keys, nil
}

type fakeSound struct {
	played []string
	cues   []audio.Cue
}

func (f *fakeSound) Play(path string) error {
	f.played = append(f.played, path)
	return nil
}

func (f *fakeSound) PlayCue(c audio.Cue) error {
	f.cues = append(f.cues, c)
	return nil
}

func newTestLoop(t *testing.T, frames ...input.KeySet) *engine.Engine {
	t.Helper()
	return engine.New(20, 10,
		engine.WithSink(&bufferSink{}),
		engine.WithInput(&scriptedKeys{frames: frames}),
		engine.WithFrameBudget(0),
	)
}

func tick(t *testing.T, e *engine.Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, e.Tick(time.Millisecond))
	}
}

func TestDemoMoveSpawnDespawnQuit(t *testing.T) {
	e := newTestLoop(t,
		input.NewKeySet(input.KeyRight),
		input.NewKeySet(input.KeySpace),
		input.NewKeySet(input.KeySpace),
		input.NewKeySet(),
		input.NewKeySet(input.Char('x')),
		input.NewKeySet(input.Char('q')),
	)
	sound := &fakeSound{}
	d := newDemo(e, sound, demoOptions{})
	base := len(e.Objects())

	require.Same(t, d.player, e.Object(0))
	assert.Equal(t, 10, d.player.X)
	assert.Equal(t, 5, d.player.Y)

	tick(t, e, 1)
	assert.Equal(t, 11, d.player.X, "held right moves one cell")
	assert.Equal(t, 1, d.moves)

	tick(t, e, 2)
	require.Len(t, e.Objects(), base+1, "space held over two frames spawns once")
	star := e.Objects()[base]
	assert.Equal(t, '*', star.Glyph())
	assert.Equal(t, 11, star.X)
	assert.Equal(t, []audio.Cue{audio.CueSpawn}, sound.cues)
	assert.Equal(t, "#---------", barGlyphs(d.bar))

	tick(t, e, 2)
	assert.Len(t, e.Objects(), base, "x removes the oldest star")
	assert.Empty(t, d.stars)
	assert.True(t, e.IsRunning())

	tick(t, e, 1)
	assert.False(t, e.IsRunning())
}

func TestDemoSpawnAndDespawnSameFrame(t *testing.T) {
	e := newTestLoop(t,
		input.NewKeySet(input.KeySpace, input.Char('x')),
		input.NewKeySet(),
	)
	d := newDemo(e, nil, demoOptions{})
	base := len(e.Objects())

	tick(t, e, 2)
	require.Len(t, e.Objects(), base+1, "star dropped in the same frame stays")
	require.Len(t, d.stars, 1)
	assert.Same(t, d.stars[0], e.Objects()[base])
	assert.Equal(t, "#---------", barGlyphs(d.bar))
	assert.Contains(t, barGlyphs(d.status), " 1/10")
}

func TestDemoSoundFile(t *testing.T) {
	e := newTestLoop(t, input.NewKeySet(input.KeySpace))
	sound := &fakeSound{}
	newDemo(e, sound, demoOptions{Sound: "drop.wav"})

	tick(t, e, 1)
	assert.Equal(t, []string{"drop.wav"}, sound.played)
	assert.Empty(t, sound.cues)
}

func TestDemoStarLimit(t *testing.T) {
	frames := make([]input.KeySet, 0, 2*(maxStars+2))
	for i := 0; i < maxStars+2; i++ {
		frames = append(frames, input.NewKeySet(input.KeySpace), input.NewKeySet())
	}
	e := newTestLoop(t, frames...)
	d := newDemo(e, nil, demoOptions{})

	tick(t, e, len(frames))
	assert.Len(t, d.stars, maxStars)
	assert.Equal(t, "##########", barGlyphs(d.bar))
}

func TestDemoEscapeQuits(t *testing.T) {
	e := newTestLoop(t, input.NewKeySet(input.KeyEscape))
	newDemo(e, nil, demoOptions{})

	tick(t, e, 1)
	assert.False(t, e.IsRunning())
}

func barGlyphs(objs []*engine.Entity) string {
	out := make([]rune, len(objs))
	for i, o := range objs {
		out[i] = o.Glyph()
	}
	return string(out)
}
