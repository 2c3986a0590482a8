package testing

import (
	"fmt"
	"sync"

	"github.com/imamik/volplan/internal/provisioning"
)

type recording struct {
	mu       sync.Mutex
	events   []provisioning.Event
	messages []string
}

// RecordingObserver records events and messages. Observers derived with
// WithFields share the recording of their parent.
type RecordingObserver struct {
	rec    *recording
	fields map[string]string
}

// NewRecordingObserver creates an empty recording observer.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{rec: &recording{}, fields: map[string]string{}}
}

// Printf implements provisioning.Observer.
func (o *RecordingObserver) Printf(format string, v ...interface{}) {
	o.rec.mu.Lock()
	defer o.rec.mu.Unlock()
	o.rec.messages = append(o.rec.messages, fmt.Sprintf(format, v...))
}

// Event implements provisioning.Observer.
func (o *RecordingObserver) Event(event provisioning.Event) {
	fields := make(map[string]string, len(o.fields)+len(event.Fields))
	for k, v := range o.fields {
		fields[k] = v
	}
	for k, v := range event.Fields {
		fields[k] = v
	}
	event.Fields = fields

	o.rec.mu.Lock()
	defer o.rec.mu.Unlock()
	o.rec.events = append(o.rec.events, event)
}

// Progress implements provisioning.Observer.
func (o *RecordingObserver) Progress(phase string, current, total int) {
	o.Event(provisioning.Event{
		Type:    provisioning.EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d", current, total),
	})
}

// WithFields implements provisioning.Observer.
func (o *RecordingObserver) WithFields(fields map[string]string) provisioning.Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	for k, v := range o.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &RecordingObserver{rec: o.rec, fields: merged}
}

// Events returns every recorded event.
func (o *RecordingObserver) Events() []provisioning.Event {
	o.rec.mu.Lock()
	defer o.rec.mu.Unlock()
	return append([]provisioning.Event(nil), o.rec.events...)
}

// EventsOfType returns the recorded events of type t.
func (o *RecordingObserver) EventsOfType(t provisioning.EventType) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// EventsAtLevel returns the recorded events reported at level.
func (o *RecordingObserver) EventsAtLevel(level provisioning.Level) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type.Level() == level {
			out = append(out, e)
		}
	}
	return out
}

// Resources returns the resource of every resource event, in order.
func (o *RecordingObserver) Resources() []string {
	var out []string
	for _, e := range o.Events() {
		switch e.Type {
		case provisioning.EventResourceCreated, provisioning.EventResourceExists, provisioning.EventResourceFailed:
			out = append(out, e.Fields["operation"]+" "+e.Resource)
		}
	}
	return out
}

// Messages returns every Printf message.
func (o *RecordingObserver) Messages() []string {
	o.rec.mu.Lock()
	defer o.rec.mu.Unlock()
	return append([]string(nil), o.rec.messages...)
}
