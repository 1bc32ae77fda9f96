package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// DefaultSampleRate is the speaker rate, decoded files are resampled to it
const DefaultSampleRate = 48000

// resampleQuality is the beep.Resample interpolation quality
const resampleQuality = 4

// ErrAudioDisabled is returned by playback on a disabled or uninitialized player
var ErrAudioDisabled = errors.New("audio disabled")

// Config holds player settings
type Config struct {
	Enabled    bool
	Volume     float64 // 0.0-1.0
	SampleRate int
}

// DefaultConfig returns enabled playback at full volume
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     1.0,
		SampleRate: DefaultSampleRate,
	}
}

// Player is a fire-and-forget sound collaborator
// Every sound is added to one mixer streamed by the beep speaker goroutine
type Player struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	files       pendingFiles
	initialized bool
}

// pendingFiles holds the closers of decoded files still queued in the mixer
type pendingFiles struct {
	mu      sync.Mutex
	next    int
	closers map[int]func() error
}

func (f *pendingFiles) add(closer func() error) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closers == nil {
		f.closers = make(map[int]func() error)
	}
	f.next++
	f.closers[f.next] = closer
	return f.next
}

// release closes one file, a file already closed by closeAll is skipped
func (f *pendingFiles) release(id int) {
	f.mu.Lock()
	closer, ok := f.closers[id]
	delete(f.closers, id)
	f.mu.Unlock()
	if ok {
		closer()
	}
}

func (f *pendingFiles) closeAll() error {
	f.mu.Lock()
	closers := f.closers
	f.closers = nil
	f.mu.Unlock()

	var errs []error
	for _, closer := range closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *pendingFiles) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.closers)
}

// NewPlayer creates an uninitialized player
func NewPlayer(cfg Config) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	return &Player{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker, a disabled player stays silent without error
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close clears queued sounds and closes their files, the speaker itself stays open
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false

	// Cleared streams never reach their end-of-stream callback
	if err := p.files.closeAll(); err != nil {
		log.Printf("[AUDIO] close pending sounds: %v", err)
	}
}

// Active reports whether playback reaches the speaker
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Load decodes a WAV file resampled to the player rate
// The returned closer releases the file
func (p *Player) Load(path string) (beep.Streamer, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sound: %w", err)
	}

	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var s beep.Streamer = stream
	if format.SampleRate != p.rate {
		s = beep.Resample(resampleQuality, format.SampleRate, p.rate, stream)
	}
	return s, stream.Close, nil
}

// Play decodes path and starts it asynchronously, returns once queued
func (p *Player) Play(path string) error {
	if !p.Active() {
		return ErrAudioDisabled
	}

	s, closer, err := p.Load(path)
	if err != nil {
		return err
	}

	p.enqueue(p.tracked(s, closer))
	return nil
}

// tracked plays s and then closes its file, Close releases it if the end is never reached
func (p *Player) tracked(s beep.Streamer, closer func() error) beep.Streamer {
	id := p.files.add(closer)
	return beep.Seq(s, beep.Callback(func() { p.files.release(id) }))
}

// PlayTone starts a shaped sine tone
func (p *Player) PlayTone(freq float64, d time.Duration) error {
	if !p.Active() {
		return ErrAudioDisabled
	}

	s, err := Tone(p.rate, freq, d)
	if err != nil {
		return err
	}
	p.enqueue(s)
	return nil
}

// PlayCue starts a synthesized cue
func (p *Player) PlayCue(c Cue) error {
	if !p.Active() {
		return ErrAudioDisabled
	}

	s, err := CueStreamer(p.rate, c)
	if err != nil {
		return err
	}
	p.enqueue(s)
	return nil
}

func (p *Player) enqueue(s beep.Streamer) {
	s = newVolume(s, p.cfg.Volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
