// Package clock provides the time source used for daily AI credit windows.
package clock

import (
	"sync"
	"time"
)

// IST is India Standard Time (UTC+5:30). The AI credit day boundary is
// always computed in this zone, independent of the server timezone.
var IST = time.FixedZone("IST", 5*3600+30*60)

const dayKeyLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

// DayKey returns the IST calendar date of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.In(IST).Format(dayKeyLayout)
}

// Manual is a settable clock for tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(t time.Time) *Manual { return &Manual{now: t} }

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
