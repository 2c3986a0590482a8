package provisioning

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "ebs", "lvm")
	Message   string            // Human-readable message
	Resource  string            // Resource name if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPlanApplying indicates a registered plan is about to be applied.
	EventPlanApplying EventType = "plan.applying"
	// EventPlanMissing indicates a requested plan is not registered.
	EventPlanMissing EventType = "plan.missing"

	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreated indicates an operation changed the host.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates an operation found the desired state in place.
	EventResourceExists EventType = "resource.exists"
	// EventResourceFailed indicates an operation failed.
	EventResourceFailed EventType = "resource.failed"

	// EventCredentialsMissing indicates EBS credentials are absent. The run aborts.
	EventCredentialsMissing EventType = "credentials.missing"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// Level is the severity of an event.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// Level returns the severity events of this type are reported with.
func (t EventType) Level() Level {
	switch t {
	case EventCredentialsMissing:
		return LevelFatal
	case EventPlanMissing, EventPhaseFailed, EventResourceFailed:
		return LevelError
	default:
		return LevelInfo
	}
}

// ConsoleObserver implements Observer using standard log package.
type ConsoleObserver struct {
	logger        *log.Logger
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return NewConsoleObserverWithLogger(log.Default())
}

// NewConsoleObserverWithLogger creates a console observer writing to logger.
func NewConsoleObserverWithLogger(logger *log.Logger) *ConsoleObserver {
	return &ConsoleObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Printf implements Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	o.logger.Printf(format, v...)
}

// Event implements Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	o.logger.Print(o.formatEvent(mergeFields(event, o.contextFields)))
}

// Progress implements Observer interface.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	if total == 0 {
		o.logger.Printf("[%s] Progress: %d/%d", phase, current, total)
		return
	}
	percentage := (current * 100) / total
	o.logger.Printf("[%s] Progress: %d/%d (%d%%)", phase, current, total, percentage)
}

// WithFields implements Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	return &ConsoleObserver{
		logger:        o.logger,
		contextFields: joinFields(o.contextFields, fields),
	}
}

// formatEvent formats an event for console output.
func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	if level := event.Type.Level(); level != LevelInfo {
		parts = append(parts, strings.ToUpper(string(level)))
	}

	// Event type indicator
	parts = append(parts, string(event.Type))

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}

	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		keys := sortedKeys(event.Fields)
		fieldParts := make([]string, 0, len(keys))
		for _, k := range keys {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, event.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// mergeFields adds context fields the event does not set itself.
func mergeFields(event Event, contextFields map[string]string) Event {
	if len(contextFields) == 0 {
		return event
	}
	merged := make(map[string]string, len(event.Fields)+len(contextFields))
	for k, v := range contextFields {
		merged[k] = v
	}
	for k, v := range event.Fields {
		merged[k] = v
	}
	event.Fields = merged
	return event
}

func joinFields(base, extra map[string]string) map[string]string {
	joined := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		joined[k] = v
	}
	for k, v := range extra {
		joined[k] = v
	}
	return joined
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Helper functions for common events

// LogPlanMissing logs that a requested plan is not registered.
func LogPlanMissing(observer Observer, name string) {
	observer.Event(Event{
		Type:     EventPlanMissing,
		Resource: name,
		Message:  fmt.Sprintf("No volume plan registered for %q", name),
	})
}

// LogPlanApplying logs that a plan is about to be applied.
func LogPlanApplying(observer Observer, name string) {
	observer.Event(Event{
		Type:     EventPlanApplying,
		Resource: name,
		Message:  fmt.Sprintf("Applying volume plan: %s", name),
	})
}

// LogCredentialsMissing logs the fatal credentials diagnostic.
func LogCredentialsMissing(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventCredentialsMissing,
		Phase:   phase,
		Message: err.Error(),
	})
}

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreated logs an operation that changed the host.
func LogResourceCreated(observer Observer, phase, operation, resourceName string, fields map[string]string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s applied", operation),
		Fields:   joinFields(map[string]string{"operation": operation}, fields),
	})
}

// LogResourceExists logs an operation that found the host in the desired state.
func LogResourceExists(observer Observer, phase, operation, resourceName string, fields map[string]string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s up to date", operation),
		Fields:   joinFields(map[string]string{"operation": operation}, fields),
	})
}

// LogResourceFailed logs a failed operation.
func LogResourceFailed(observer Observer, phase, operation, resourceName string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s failed: %v", operation, err),
		Fields:   map[string]string{"operation": operation},
	})
}

// Step is the outcome of one idempotent operation.
type Step struct {
	Phase     string
	Operation string // pvcreate, vgcreate, lvcreate, mkfs, directory, mount, enable, ebs
	Resource  string
	Changed   bool
	Err       error
	Fields    map[string]string
}

// ReportStep emits the event for a step and counts it.
func ReportStep(observer Observer, s Step) {
	switch {
	case s.Err != nil:
		LogResourceFailed(observer, s.Phase, s.Operation, s.Resource, s.Err)
		RecordOperation(s.Operation, ResultFailed)
	case s.Changed:
		LogResourceCreated(observer, s.Phase, s.Operation, s.Resource, s.Fields)
		RecordOperation(s.Operation, ResultChanged)
	default:
		LogResourceExists(observer, s.Phase, s.Operation, s.Resource, s.Fields)
		RecordOperation(s.Operation, ResultUnchanged)
	}
}
