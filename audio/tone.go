package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// envelope applies linear attack/release shaping to a finite stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		att, rel = total/2, total-total/2
	}

	return &envelope{
		streamer:       beep.Take(total, s),
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly, 0 volume is silent since Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Tone returns a shaped sine tone of freq Hz lasting d
func Tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	if d <= 0 {
		return nil, fmt.Errorf("tone duration %v", d)
	}
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("tone %.1fHz: %w", freq, err)
	}

	edge := d / 10
	return NewEnvelope(sine, d, edge, edge*2, rate), nil
}

// Cue identifies a synthesized sound
type Cue int

const (
	CueSpawn Cue = iota
	CueDespawn
	CueQuit
)

// cueNotes maps a cue to its note sequence
var cueNotes = map[Cue][]struct {
	freq float64
	dur  time.Duration
}{
	CueSpawn:   {{880.0, 60 * time.Millisecond}, {1318.51, 90 * time.Millisecond}},
	CueDespawn: {{440.0, 80 * time.Millisecond}, {329.63, 120 * time.Millisecond}},
	CueQuit:    {{220.0, 200 * time.Millisecond}},
}

// CueStreamer builds the note sequence of c
func CueStreamer(rate beep.SampleRate, c Cue) (beep.Streamer, error) {
	notes, ok := cueNotes[c]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", c)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := Tone(rate, n.freq, n.dur)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return beep.Seq(parts...), nil
}
