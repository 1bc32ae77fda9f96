package status

import (
	"sync"
	"testing"
	"time"
)

func TestLoopStatsCounters(t *testing.T) {
	s := NewLoopStats()
	s.FrameStarted()
	s.FrameStarted()
	s.CommandsQueued(3)
	s.CommandsQueued(0)
	s.InputFailed()
	s.Overrun()

	got := s.Snapshot()
	want := Snapshot{Frames: 2, Commands: 3, Overruns: 1, InputErrors: 1}
	if got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestLoopStatsWorstFrame(t *testing.T) {
	tests := []struct {
		name      string
		works     []time.Duration
		wantLast  time.Duration
		wantWorst time.Duration
	}{
		{"none", nil, 0, 0},
		{"rising", []time.Duration{5 * time.Millisecond, 9 * time.Millisecond}, 9 * time.Millisecond, 9 * time.Millisecond},
		{"falling", []time.Duration{40 * time.Millisecond, 2 * time.Millisecond}, 2 * time.Millisecond, 40 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLoopStats()
			for _, w := range tt.works {
				s.FrameWorked(w)
			}
			snap := s.Snapshot()
			if snap.LastWork != tt.wantLast {
				t.Errorf("LastWork = %v, want %v", snap.LastWork, tt.wantLast)
			}
			if snap.WorstWork != tt.wantWorst {
				t.Errorf("WorstWork = %v, want %v", snap.WorstWork, tt.wantWorst)
			}
		})
	}
}

func TestLoopStatsConcurrentWorst(t *testing.T) {
	s := NewLoopStats()
	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.FrameWorked(time.Duration(n*100+j) * time.Microsecond)
				s.FrameStarted()
			}
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Frames != 800 {
		t.Errorf("Frames = %d, want 800", snap.Frames)
	}
	if want := 899 * time.Microsecond; snap.WorstWork != want {
		t.Errorf("WorstWork = %v, want %v", snap.WorstWork, want)
	}
}

func TestSnapshotString(t *testing.T) {
	snap := Snapshot{
		Frames:      3,
		Commands:    1,
		Overruns:    1,
		InputErrors: 0,
		LastWork:    12500 * time.Microsecond,
		WorstWork:   50 * time.Millisecond,
	}
	want := "frames=3 commands=1 overruns=1 input_errors=0 last=12.5ms worst=50ms"
	if got := snap.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
