package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/lonely-engine/audio"
	"github.com/lixenwraith/lonely-engine/engine"
	"github.com/lixenwraith/lonely-engine/event"
	"github.com/lixenwraith/lonely-engine/input"
	"github.com/lixenwraith/lonely-engine/render"
)

const (
	maxStars     = 10
	spinnerSpeed = 120 * time.Millisecond
	starTag      = "star"
	playerTag    = "player"
)

var spinnerFrames = []rune{'|', '/', '-', '\\'}

type demoOptions struct {
	Sound       string // WAV played on spawn instead of the synthesized cue
	PlayerColor string
}

// NewDemoCommand runs the sample game
func NewDemoCommand(opts *RootOptions) *cobra.Command {
	demoOpts := demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Move @ with arrows, space drops a star, x removes the oldest, q quits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, demoOpts)
		},
	}

	cmd.Flags().StringVar(&demoOpts.Sound, "sound", "", "WAV file played when a star spawns")
	cmd.Flags().StringVar(&demoOpts.PlayerColor, "player-color", "", "player color name or #rrggbb")

	return cmd
}

func runDemo(opts *RootOptions, demoOpts demoOptions) error {
	return runLoop(opts.cfg, func(e *engine.Engine, p *audio.Player) error {
		newDemo(e, p, demoOpts)
		return nil
	})
}

// soundPlayer is the subset of audio.Player the demo uses
type soundPlayer interface {
	Play(path string) error
	PlayCue(c audio.Cue) error
}

// demo is the sample application, index 0 is always the player
type demo struct {
	player *engine.Entity
	stars  []*engine.Entity
	bar    []*engine.Entity
	status []*engine.Entity

	sound soundPlayer
	path  string

	// Set by key listeners, consumed by the next Update
	spawn   bool
	despawn bool
	moves   int
}

func newDemo(e *engine.Engine, sound soundPlayer, opts demoOptions) *demo {
	d := &demo{sound: sound, path: opts.Sound}

	playerColor := render.RgbPlayer
	if opts.PlayerColor != "" {
		playerColor = render.ParseColor(opts.PlayerColor)
	}

	d.player = engine.NewEntity(e.Width()/2, e.Height()/2, '@').
		WithColors(playerColor, tcell.ColorDefault).
		WithTag(playerTag)
	e.AddObject(d.player)

	title := engine.DrawText(e, 1, 0, "lonely demo")
	for _, obj := range title {
		obj.Fg = render.Scale(render.RgbText, 0.8)
	}

	spinner := engine.NewEntity(13, 0, spinnerFrames[0]).WithFrames(spinnerFrames, spinnerSpeed)
	e.AddObject(spinner)

	d.bar = engine.DrawProgressBar(e, 1, 1, maxStars, 0)
	for _, obj := range d.bar {
		obj.Fg = render.RgbBarFill
	}
	d.status = engine.DrawText(e, maxStars+2, 1, "               ")

	e.Bus().Subscribe(d.onEvent)
	e.AddUpdatable(d)
	return d
}

func (d *demo) onEvent(ev event.Event) error {
	switch ev.Type {
	case event.EventKeyPressed:
		k, _ := ev.Key()
		switch k {
		case input.KeySpace:
			d.spawn = true
		case input.Char('x'):
			d.despawn = true
		}

	case event.EventObjectMoved:
		d.moves++

	case event.EventObjectSpawned:
		if d.sound == nil {
			return nil
		}
		var err error
		if d.path != "" {
			err = d.sound.Play(d.path)
		} else {
			err = d.sound.PlayCue(audio.CueSpawn)
		}
		if err != nil && !errors.Is(err, audio.ErrAudioDisabled) {
			log.Printf("[DEMO] spawn sound: %v", err)
		}
	}
	return nil
}

// Update turns held arrows into moves and pending key presses into spawn/despawn
func (d *demo) Update(e *engine.Engine, dt time.Duration, keys input.KeySet) []engine.Command {
	if keys.Has(input.KeyEscape) || keys.Has(input.Char('q')) {
		return []engine.Command{engine.Quit()}
	}

	var cmds []engine.Command

	dx, dy := 0, 0
	if keys.Has(input.KeyLeft) {
		dx--
	}
	if keys.Has(input.KeyRight) {
		dx++
	}
	if keys.Has(input.KeyUp) {
		dy--
	}
	if keys.Has(input.KeyDown) {
		dy++
	}
	if dx != 0 || dy != 0 {
		cmds = append(cmds, engine.Move(0, dx, dy))
	}

	if d.spawn && len(d.stars) < maxStars {
		star := engine.NewEntity(d.player.X, d.player.Y, '*').
			WithColors(render.RgbStar, tcell.ColorDefault).
			WithTag(starTag)
		d.stars = append(d.stars, star)
		cmds = append(cmds, engine.Spawn(star))
	}
	d.spawn = false

	// A star queued this frame is not in the list yet and cannot be removed
	if d.despawn && len(d.stars) > 0 {
		if idx := indexOf(e.Objects(), d.stars[0]); idx >= 0 {
			cmds = append(cmds, engine.Despawn(idx))
			d.stars = d.stars[1:]
		}
	}
	d.despawn = false

	// Stars dropped this frame are not yet in the list, so only earlier ones can collide
	covered := 0
	for _, star := range d.stars {
		if engine.CheckCollision(d.player, star) {
			covered++
		}
	}

	fill := float64(len(d.stars)) / maxStars
	engine.SetProgress(d.bar, fill)
	barColor := render.Lerp(render.RgbBarFill, render.RgbBarFull, fill)
	for _, obj := range d.bar {
		obj.Fg = barColor
	}
	engine.SetText(d.status, fmt.Sprintf("%2d/%d moves %d", len(d.stars), maxStars, d.moves))
	if covered > 0 {
		d.player.Bg = render.RgbBarBg
	} else {
		d.player.Bg = tcell.ColorDefault
	}

	return cmds
}

func indexOf(objs []*engine.Entity, target *engine.Entity) int {
	for i, obj := range objs {
		if obj == target {
			return i
		}
	}
	return -1
}
