package notify

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"
)

type Phase string

const (
	PhaseShown   Phase = "shown"
	PhaseExpired Phase = "expired"
)

// Event is emitted once when a toast should appear and, when the dispatcher
// has a TTL, once more when it should be dismissed.
type Event struct {
	Toast Toast
	Phase Phase
	DueAt time.Time
}

type queueItem struct {
	event Event
	seq   uint64
}

type eventQueue []queueItem

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].event.DueAt.Equal(q[j].event.DueAt) {
		return q[i].seq < q[j].seq
	}
	return q[i].event.DueAt.Before(q[j].event.DueAt)
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// expiryRetry is how long an undeliverable expired event waits before the
// next attempt.
const expiryRetry = 50 * time.Millisecond

// Dispatcher is a Sink that hands toasts to a single consumer (the UI loop)
// through a buffered channel. Sends never block; when the consumer falls
// behind, shown events are dropped and counted. Expired events for toasts
// that were shown are retried until delivered.
type Dispatcher struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	queue   eventQueue
	seq     uint64
	out     chan Event
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
	unshown map[string]struct{}
}

var _ Sink = (*Dispatcher)(nil)

func NewDispatcher(bufferSize int, ttl time.Duration) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Dispatcher{
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
		queue:   make(eventQueue, 0),
		out:     make(chan Event, bufferSize),
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		unshown: make(map[string]struct{}),
	}
}

func (d *Dispatcher) C() <-chan Event {
	return d.out
}

func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	heap.Init(&d.queue)
	go d.loop()
}

// Stop ends the dispatch loop and closes C. Pending events are discarded.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.stopped = true
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.stopCh)
	d.mu.Unlock()
	<-d.doneCh
}

// Notify schedules t to be shown now and, with a TTL, dismissed later.
// Toasts arriving after Stop are counted as dropped.
func (d *Dispatcher) Notify(t Toast) {
	now := d.now()
	t = t.stamp(now)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		atomic.AddUint64(&d.dropped, 1)
		return
	}
	d.pushLocked(Event{Toast: t, Phase: PhaseShown, DueAt: now})
	if d.ttl > 0 {
		d.pushLocked(Event{Toast: t, Phase: PhaseExpired, DueAt: now.Add(d.ttl)})
	}
	d.signalWakeup()
}

func (d *Dispatcher) Dropped() uint64 {
	return atomic.LoadUint64(&d.dropped)
}

func (d *Dispatcher) pushLocked(ev Event) {
	d.seq++
	heap.Push(&d.queue, queueItem{event: ev, seq: d.seq})
}

func (d *Dispatcher) loop() {
	defer close(d.doneCh)
	defer close(d.out)

	var timer *time.Timer
	for {
		next, hasNext := d.peek()
		if !hasNext {
			select {
			case <-d.wakeup:
				continue
			case <-d.stopCh:
				return
			}
		}

		wait := next.DueAt.Sub(d.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, ev := range d.popDue(d.now()) {
				d.deliver(ev)
			}
		case <-d.wakeup:
			continue
		case <-d.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (d *Dispatcher) deliver(ev Event) {
	if ev.Phase == PhaseExpired && d.forget(ev.Toast.ID) {
		return
	}
	select {
	case d.out <- ev:
		return
	default:
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if ev.Phase == PhaseExpired {
		ev.DueAt = d.now().Add(expiryRetry)
		d.pushLocked(ev)
		return
	}
	atomic.AddUint64(&d.dropped, 1)
	if d.ttl > 0 {
		d.unshown[ev.Toast.ID] = struct{}{}
	}
}

// forget reports whether the toast's shown event was dropped, clearing the
// record.
func (d *Dispatcher) forget(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.unshown[id]; ok {
		delete(d.unshown, id)
		return true
	}
	return false
}

func (d *Dispatcher) signalWakeup() {
	select {
	case d.wakeup <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) peek() (Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return Event{}, false
	}
	return d.queue[0].event, true
}

func (d *Dispatcher) popDue(now time.Time) []Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Event, 0)
	for len(d.queue) > 0 {
		if d.queue[0].event.DueAt.After(now) {
			break
		}
		item := heap.Pop(&d.queue).(queueItem)
		out = append(out, item.event)
	}
	return out
}

func resetTimer(timer *time.Timer, wait time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(wait)
	}
	stopTimer(timer)
	timer.Reset(wait)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
