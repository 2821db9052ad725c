package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrMissingID          = errors.New("scheduler: missing event id")
	ErrEngineStopped      = errors.New("scheduler: engine stopped")
)

type Kind string

const (
	KindDailyReminder Kind = "daily-reminder"
	KindWeeklyReview  Kind = "weekly-review"
)

// ReminderEvent is a one-shot timer. At most one event per ID is pending;
// scheduling an ID again replaces the earlier trigger.
type ReminderEvent struct {
	ID        string
	Kind      Kind
	Message   string
	TriggerAt time.Time
}

type pending struct {
	event ReminderEvent
	index int
}

// timeline is a min-heap on TriggerAt. Each entry knows its slot so a
// replacement or cancel by id does not scan the heap.
type timeline []*pending

func (t timeline) Len() int { return len(t) }

func (t timeline) Less(i, j int) bool {
	return t[i].event.TriggerAt.Before(t[j].event.TriggerAt)
}

func (t timeline) Swap(i, j int) {
	t[i], t[j] = t[j], t[i]
	t[i].index = i
	t[j].index = j
}

func (t *timeline) Push(x any) {
	p := x.(*pending)
	p.index = len(*t)
	*t = append(*t, p)
}

func (t *timeline) Pop() any {
	old := *t
	p := old[len(old)-1]
	old[len(old)-1] = nil
	p.index = -1
	*t = old[:len(old)-1]
	return p
}

// Engine delivers due reminders on C. Delivery never blocks the engine: when
// the buffer is full the event is counted in Dropped instead.
type Engine struct {
	mu      sync.Mutex
	events  timeline
	byID    map[string]*pending
	started bool
	stopped bool

	out     chan ReminderEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		byID:   make(map[string]*pending),
		out:    make(chan ReminderEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan ReminderEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.run()
}

// Stop ends the loop and closes C. Pending events are discarded.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev ReminderEvent) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}
	if ev.ID == "" {
		return ErrMissingID
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}
	if p, ok := e.byID[ev.ID]; ok {
		p.event = ev
		heap.Fix(&e.events, p.index)
	} else {
		p := &pending{event: ev}
		heap.Push(&e.events, p)
		e.byID[ev.ID] = p
	}
	e.poke()
	return nil
}

// Cancel drops the pending event with the given id. It reports whether one
// was pending.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&e.events, p.index)
	delete(e.byID, id)
	e.poke()
	return true
}

// Pending returns the trigger time of the pending event with the given id.
func (e *Engine) Pending(id string) (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.byID[id]; ok {
		return p.event.TriggerAt, true
	}
	return time.Time{}, false
}

// Len reports how many events are waiting.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.doneCh)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		var fire <-chan time.Time
		if next, ok := e.nextTrigger(); ok {
			timer.Reset(max(time.Until(next), 0))
			fire = timer.C
		} else {
			timer.Stop()
		}

		select {
		case <-fire:
			for _, ev := range e.takeDue(time.Now()) {
				select {
				case e.out <- ev:
				default:
					e.dropped.Add(1)
				}
			}
		case <-e.wakeup:
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) poke() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) nextTrigger() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.events) == 0 {
		return time.Time{}, false
	}
	return e.events[0].event.TriggerAt, true
}

func (e *Engine) takeDue(now time.Time) []ReminderEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var due []ReminderEvent
	for len(e.events) > 0 && !e.events[0].event.TriggerAt.After(now) {
		p := heap.Pop(&e.events).(*pending)
		delete(e.byID, p.event.ID)
		due = append(due, p.event)
	}
	return due
}
