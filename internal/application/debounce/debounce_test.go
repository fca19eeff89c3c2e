package debounce

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock fires timers synchronously from Advance
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock to the given offset and runs due timers in order
func (c *fakeClock) Advance(to time.Duration) {
	c.mu.Lock()
	c.now = to
	var due []*fakeTimer
	var rest []*fakeTimer
	for _, t := range c.timers {
		if t.at <= to {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

type recorder struct {
	mu    sync.Mutex
	saves []string
}

func (r *recorder) save(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, v)
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.saves...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	d := NewWithClock(clock, 500*time.Millisecond, rec.save)

	d.Trigger("h")
	clock.Advance(200 * time.Millisecond)
	d.Trigger("he")

	clock.Advance(500 * time.Millisecond)
	assert.Empty(t, rec.got(), "idle period restarts on each edit")

	clock.Advance(699 * time.Millisecond)
	assert.Empty(t, rec.got())

	clock.Advance(700 * time.Millisecond)
	assert.Equal(t, []string{"he"}, rec.got())
	assert.False(t, d.Pending())

	clock.Advance(5 * time.Second)
	assert.Equal(t, []string{"he"}, rec.got(), "at most one save per idle period")
}

func TestDebouncer_Flush(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	d := NewWithClock(clock, 500*time.Millisecond, rec.save)

	assert.False(t, d.Flush(), "nothing pending")

	d.Trigger("draft")
	require.True(t, d.Pending())
	assert.True(t, d.Flush())
	assert.Equal(t, []string{"draft"}, rec.got())

	clock.Advance(time.Second)
	assert.Equal(t, []string{"draft"}, rec.got(), "flushed value is not saved again")
}

func TestDebouncer_Cancel(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	d := NewWithClock(clock, 500*time.Millisecond, rec.save)

	d.Trigger("discard me")
	d.Cancel()
	clock.Advance(time.Second)

	assert.Empty(t, rec.got())
	assert.False(t, d.Flush())
}

func TestDebouncer_StaleTimerIgnored(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	d := NewWithClock(clock, 500*time.Millisecond, rec.save)

	d.Trigger("first")
	// Capture the first timer's callback and run it after a newer trigger,
	// as if Stop had lost the race with the firing timer
	clock.mu.Lock()
	stale := clock.timers[0].f
	clock.mu.Unlock()

	d.Trigger("second")
	stale()
	assert.Empty(t, rec.got())

	clock.Advance(time.Second)
	assert.Equal(t, []string{"second"}, rec.got())
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	d := New(0, func(string) {})
	assert.Equal(t, DefaultDelay, d.Delay())
}

func TestDebouncer_RealClock(t *testing.T) {
	done := make(chan string, 1)
	d := New(10*time.Millisecond, func(v string) { done <- v })

	d.Trigger("a")
	d.Trigger("ab")

	select {
	case v := <-done:
		assert.Equal(t, "ab", v)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced save never fired")
	}
}
