package engine

import (
	"sync"
	"time"
)

// Clock supplies frame timestamps and the pacing sleep
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock provides the real system time with monotonic clock readings
type SystemClock struct{}

// NewSystemClock creates a monotonic wall clock
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time with monotonic clock reading
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep suspends the calling goroutine
func (c *SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// MockClock provides a controllable time source for testing
// Sleep advances the mocked time instead of blocking
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
	sleeps      []time.Duration
}

// NewMockClock creates a new mock clock with the given start time
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Sleep records d and advances the mocked time by it
func (m *MockClock) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sleeps = append(m.sleeps, d)
	m.currentTime = m.currentTime.Add(d)
}

// Sleeps returns every recorded sleep duration in call order
func (m *MockClock) Sleeps() []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]time.Duration, len(m.sleeps))
	copy(out, m.sleeps)
	return out
}
