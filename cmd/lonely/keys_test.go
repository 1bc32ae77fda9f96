package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/lonely-engine/input"
)

func TestKeyMonitorHistory(t *testing.T) {
	e := newTestLoop(t,
		input.NewKeySet(input.Char('a')),
		input.NewKeySet(input.Char('a'), input.KeyUp),
		input.NewKeySet(),
	)
	m := newKeyMonitor(e)
	assert.Len(t, m.rows, 7)

	tick(t, e, 3)

	assert.Len(t, m.history, 4)
	assert.Contains(t, m.history[0], "KeyReleased(Up)")
	assert.Contains(t, m.history[1], "KeyReleased('a')")
	assert.Contains(t, m.history[2], "KeyPressed(Up)")
	assert.Contains(t, m.history[3], "KeyPressed('a')")

	assert.Equal(t, "held {}", strings.TrimRight(barGlyphs(m.held), " "))
	assert.Equal(t, "frame 3 overruns 0", strings.TrimRight(barGlyphs(m.stats), " "))
	// Rows are truncated to the grid width
	assert.Equal(t, m.history[0][:len(m.rows[0])], barGlyphs(m.rows[0]))
	assert.True(t, e.IsRunning())
}

func TestKeyMonitorCtrlC(t *testing.T) {
	e := newTestLoop(t, input.NewKeySet(input.KeyCtrl, input.Char('c')))
	newKeyMonitor(e)

	tick(t, e, 1)
	assert.False(t, e.IsRunning())
}
