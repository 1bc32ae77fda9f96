package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/lonely-engine/audio"
	"github.com/lixenwraith/lonely-engine/engine"
	"github.com/lixenwraith/lonely-engine/event"
	"github.com/lixenwraith/lonely-engine/input"
)

// NewKeysCommand shows key transitions as they are published
func NewKeysCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Live key transition monitor, ctrl+c quits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoop(opts.cfg, func(e *engine.Engine, p *audio.Player) error {
				newKeyMonitor(e)
				return nil
			})
		},
	}
}

// keyMonitor keeps the most recent transitions, newest on top
type keyMonitor struct {
	held    []*engine.Entity
	stats   []*engine.Entity
	rows    [][]*engine.Entity
	history []string
}

func newKeyMonitor(e *engine.Engine) *keyMonitor {
	m := &keyMonitor{}

	width := e.Width() - 2
	if width < 1 {
		width = 1
	}

	engine.DrawText(e, 1, 0, "key monitor, ctrl+c quits")
	m.held = engine.DrawText(e, 1, 1, strings.Repeat(" ", width))
	m.stats = engine.DrawText(e, 1, 2, strings.Repeat(" ", width))
	for y := 3; y < e.Height(); y++ {
		m.rows = append(m.rows, engine.DrawText(e, 1, y, strings.Repeat(" ", width)))
	}

	e.Bus().SubscribeFunc(m.onEvent)
	e.AddUpdatable(m)
	return m
}

func (m *keyMonitor) onEvent(ev event.Event) {
	switch ev.Type {
	case event.EventKeyPressed, event.EventKeyReleased:
		m.history = append([]string{fmt.Sprintf("%6d %s", ev.Frame, ev)}, m.history...)
		if len(m.history) > len(m.rows) {
			m.history = m.history[:len(m.rows)]
		}
	}
}

// Update redraws the held set and history, ctrl+c quits
func (m *keyMonitor) Update(e *engine.Engine, dt time.Duration, keys input.KeySet) []engine.Command {
	if keys.Has(input.KeyCtrl) && keys.Has(input.Char('c')) {
		return []engine.Command{engine.Quit()}
	}

	engine.SetText(m.held, "held "+keys.String())
	st := e.Status().Snapshot()
	engine.SetText(m.stats, fmt.Sprintf("frame %d overruns %d", e.Frame(), st.Overruns))
	for i, row := range m.rows {
		text := ""
		if i < len(m.history) {
			text = m.history[i]
		}
		engine.SetText(row, text)
	}
	return nil
}
