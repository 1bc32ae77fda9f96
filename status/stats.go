package status

import (
	"fmt"
	"sync/atomic"
	"time"
)

// LoopStats holds the counters published by the frame loop
// The loop goroutine writes, any goroutine may read
type LoopStats struct {
	frames      atomic.Int64
	commands    atomic.Int64
	overruns    atomic.Int64
	inputErrors atomic.Int64

	// Frame work time in nanoseconds
	lastWork  atomic.Int64
	worstWork atomic.Int64
}

// NewLoopStats creates zeroed stats
func NewLoopStats() *LoopStats {
	return &LoopStats{}
}

// FrameStarted counts one engine frame
func (s *LoopStats) FrameStarted() {
	s.frames.Add(1)
}

// CommandsQueued counts the commands applied in a frame
func (s *LoopStats) CommandsQueued(n int) {
	if n > 0 {
		s.commands.Add(int64(n))
	}
}

// InputFailed counts a poll that was replaced by an empty key set
func (s *LoopStats) InputFailed() {
	s.inputErrors.Add(1)
}

// Overrun counts a paced frame whose work met or exceeded the budget
func (s *LoopStats) Overrun() {
	s.overruns.Add(1)
}

// FrameWorked records the time spent on a frame before pacing
func (s *LoopStats) FrameWorked(work time.Duration) {
	s.lastWork.Store(int64(work))
	for {
		worst := s.worstWork.Load()
		if int64(work) <= worst || s.worstWork.CompareAndSwap(worst, int64(work)) {
			return
		}
	}
}

// Snapshot is a point-in-time copy of LoopStats
type Snapshot struct {
	Frames      int64
	Commands    int64
	Overruns    int64
	InputErrors int64
	LastWork    time.Duration
	WorstWork   time.Duration
}

// Snapshot reads every counter
// Counters are loaded one by one, a concurrent frame may be partially reflected
func (s *LoopStats) Snapshot() Snapshot {
	return Snapshot{
		Frames:      s.frames.Load(),
		Commands:    s.commands.Load(),
		Overruns:    s.overruns.Load(),
		InputErrors: s.inputErrors.Load(),
		LastWork:    time.Duration(s.lastWork.Load()),
		WorstWork:   time.Duration(s.worstWork.Load()),
	}
}

// String renders the snapshot for the exit log line
func (s Snapshot) String() string {
	return fmt.Sprintf("frames=%d commands=%d overruns=%d input_errors=%d last=%v worst=%v",
		s.Frames, s.Commands, s.Overruns, s.InputErrors, s.LastWork, s.WorstWork)
}
