// Package debounce coalesces bursts of edits into a single save.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the idle period before a pending value is saved
const DefaultDelay = 500 * time.Millisecond

// Timer is a scheduled callback that can be stopped
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The real clock uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns the wall clock
func RealClock() Clock {
	return realClock{}
}

// Debouncer delays calls to a save function until no new value has been
// triggered for the configured delay. The last value wins.
//
// Each Trigger bumps a generation counter. A timer that fires after a newer
// Trigger, Flush or Cancel sees a stale generation and does nothing, so a
// stop that loses the race with a firing timer never saves twice.
type Debouncer[T any] struct {
	mu      sync.Mutex
	clock   Clock
	delay   time.Duration
	save    func(T)
	timer   Timer
	value   T
	pending bool
	gen     uint64
}

// New creates a Debouncer on the wall clock
func New[T any](delay time.Duration, save func(T)) *Debouncer[T] {
	return NewWithClock(RealClock(), delay, save)
}

// NewWithClock creates a Debouncer on the given clock
func NewWithClock[T any](clock Clock, delay time.Duration, save func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		clock: clock,
		delay: delay,
		save:  save,
	}
}

// Delay returns the idle period
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Trigger replaces the pending value and restarts the idle timer
func (d *Debouncer[T]) Trigger(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.value = value
	d.pending = true
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush saves the pending value immediately. It reports whether there was
// anything to save.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	d.stopLocked()
	value := d.value
	d.pending = false
	d.mu.Unlock()

	d.save(value)
	return true
}

// Cancel drops the pending value without saving it
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.pending = false
	var zero T
	d.value = zero
}

// Pending reports whether a value is waiting to be saved
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	value := d.value
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.save(value)
}
