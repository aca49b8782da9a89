package deploy

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer defines the interface for structured observability during a
// deployment. It replaces process-wide logger state: every stage receives
// the observer through the deployment Context.
type Observer interface {
	// Printf emits an unstructured log line
	Printf(format string, v ...interface{})

	// Event emits a structured event
	Event(event Event)

	// Progress reports poll progress for a stage
	Progress(stage string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured deployment event.
type Event struct {
	Type      EventType         // Type of event
	Stage     string            // Stage name (e.g., "identity", "cluster")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ARN if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of deployment event.
type EventType string

const (
	// EventStageStarted indicates a deployment stage has started.
	EventStageStarted EventType = "stage.started"
	// EventStageCompleted indicates a deployment stage completed successfully.
	EventStageCompleted EventType = "stage.completed"
	// EventStageFailed indicates a deployment stage failed.
	EventStageFailed EventType = "stage.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists and was reused.
	EventResourceExists EventType = "resource.exists"

	// EventStatusObserved indicates a cluster status poll observation.
	EventStatusObserved EventType = "status.observed"
	// EventPollWarning indicates a transient polling failure that will be retried.
	EventPollWarning EventType = "poll.warning"

	// EventAlarmSkipped indicates alarm registration failed and was skipped.
	EventAlarmSkipped EventType = "alarm.skipped"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	log.Print(o.formatEvent(event))
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(stage string, current, total int) {
	if total == 0 {
		log.Printf("[%s] poll %d", stage, current)
		return
	}
	log.Printf("[%s] poll %d/%d", stage, current, total)
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string)
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		contextFields: newFields,
	}
}

// formatEvent formats an event for console output.
func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Stage != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Stage))
	}

	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}
