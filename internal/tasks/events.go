package tasks

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Severity classifies an [Event].
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func (s Severity) String() string { return string(s) }

// Event is one entry of the activity log.
type Event struct {
	Seq      uint64    // Position in the log, starting at 1
	Time     time.Time // When the event was emitted
	Severity Severity
	Message  string // Human-readable message for display
	Fields   []any  // Optional key-value pairs for structured logging
}

func (e Event) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Time.Format(time.TimeOnly), e.Severity, e.Message)
}

// EventLog is the append-only activity log shared by the pipelines.
//
// Events are kept oldest first. Every event is mirrored to the logger and offered to subscribers without blocking.
type EventLog struct {
	mu      sync.Mutex
	seq     uint64
	events  []Event
	subs    map[int]chan Event
	nextSub int
	logger  *log.Logger
	now     func() time.Time
}

// NewEventLog creates an [EventLog] that mirrors events to logger. logger may be nil.
func NewEventLog(logger *log.Logger) *EventLog {
	return &EventLog{
		subs:   make(map[int]chan Event),
		logger: logger,
		now:    time.Now,
	}
}

// Emit appends an event and returns it.
func (l *EventLog) Emit(severity Severity, message string, kv ...any) Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	event := Event{Seq: l.seq, Time: l.now(), Severity: severity, Message: message, Fields: kv}
	l.events = append(l.events, event)

	l.mirror(event)
	for _, ch := range l.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return event
}

func (l *EventLog) mirror(e Event) {
	if l.logger == nil {
		return
	}
	switch e.Severity {
	case SeverityError:
		l.logger.Error(e.Message, e.Fields...)
	case SeverityWarning:
		l.logger.Warn(e.Message, e.Fields...)
	case SeveritySuccess:
		l.logger.Info(e.Message, append([]any{"status", "success"}, e.Fields...)...)
	default:
		l.logger.Info(e.Message, e.Fields...)
	}
}

func (l *EventLog) Info(msg string, kv ...any) Event    { return l.Emit(SeverityInfo, msg, kv...) }
func (l *EventLog) Success(msg string, kv ...any) Event { return l.Emit(SeveritySuccess, msg, kv...) }
func (l *EventLog) Warn(msg string, kv ...any) Event    { return l.Emit(SeverityWarning, msg, kv...) }
func (l *EventLog) Error(msg string, kv ...any) Event   { return l.Emit(SeverityError, msg, kv...) }

// Events returns a copy of every event, oldest first.
func (l *EventLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

// Since returns the events with a sequence number greater than seq.
func (l *EventLog) Since(seq uint64) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	// seq numbers are dense and start at 1
	if seq >= uint64(len(l.events)) {
		return nil
	}
	return append([]Event(nil), l.events[seq:]...)
}

// Tail returns the last n events, oldest first.
func (l *EventLog) Tail(n int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 {
		return nil
	}
	start := max(len(l.events)-n, 0)
	return append([]Event(nil), l.events[start:]...)
}

// Count returns how many events have the given severity.
func (l *EventLog) Count(severity Severity) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, e := range l.events {
		if e.Severity == severity {
			n++
		}
	}
	return n
}

// Subscribe returns a channel receiving future events. Events are dropped when the channel buffer is full.
//
// The returned cancel func closes the channel.
func (l *EventLog) Subscribe(buffer int) (<-chan Event, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSub
	l.nextSub++
	ch := make(chan Event, buffer)
	l.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			delete(l.subs, id)
			close(ch)
		})
	}
}
