// Package dispatch is the hand-off between worker goroutines and the
// single-threaded presentation loop. Events produced on a background
// goroutine must only be observed on the thread that owns widget state, and
// functions posted from one goroutine run in posting order.
package dispatch

import "fyne.io/fyne/v2"

// Dispatcher schedules a function to run later on the presentation thread
type Dispatcher interface {
	Post(fn func())
}

// fyneDispatcher routes work onto the Fyne event thread
type fyneDispatcher struct{}

// Fyne returns the production dispatcher backed by the Fyne driver's
// main-thread queue (fyne.Do), which preserves submission order.
func Fyne() Dispatcher {
	return fyneDispatcher{}
}

// Post schedules fn on the Fyne event thread
func (fyneDispatcher) Post(fn func()) {
	fyne.Do(fn)
}

// Serial is a channel-backed dispatcher for headless use. Posted functions
// run only when the owner pumps the queue, always on the pumping goroutine,
// which stands in for the presentation thread.
type Serial struct {
	queue chan func()
}

// Default queue capacity for a Serial dispatcher
const DefaultSerialBuffer = 64

// NewSerial creates a serial dispatcher with the given queue capacity
func NewSerial(buffer int) *Serial {
	if buffer <= 0 {
		buffer = DefaultSerialBuffer
	}
	return &Serial{queue: make(chan func(), buffer)}
}

// Post enqueues fn; it blocks only if the queue is full
func (s *Serial) Post(fn func()) {
	s.queue <- fn
}

// Pump runs one queued function and reports whether there was one
func (s *Serial) Pump() bool {
	select {
	case fn := <-s.queue:
		fn()
		return true
	default:
		return false
	}
}

// Drain runs queued functions until the queue is empty
func (s *Serial) Drain() {
	for s.Pump() {
	}
}
