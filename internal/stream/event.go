// Package stream defines the event protocol between a dialogue run and its
// consumer. A run emits a sequence of typed events through a Channel; the
// consumer drains them in order and relays each one to a client, typically as
// a Server-Sent Events frame.
package stream

import "encoding/json"

// EventType discriminates the kinds of events a run can emit.
type EventType string

const (
	// EventStatus marks a high-level workflow phase transition.
	EventStatus EventType = "status"
	// EventLog carries one timestamped, agent-attributed dialogue line.
	EventLog EventType = "log"
	// EventChatMessage carries a conversational message for the primary
	// display surface (the chat window).
	EventChatMessage EventType = "chat_message"
	// EventReport carries a completed markdown document for the results
	// surface.
	EventReport EventType = "report"
	// EventClose is the final event of every run, emitted exactly once.
	EventClose EventType = "close"
)

// StageStatus is the status field of a status event.
type StageStatus string

const (
	StageProcessing StageStatus = "processing"
	StageCompleted  StageStatus = "completed"
	StageError      StageStatus = "error"
)

// Event is one structured message on the wire. The Type field selects which
// of the remaining fields are meaningful; unused fields are omitted from the
// JSON encoding. Events are immutable values once constructed.
type Event struct {
	// Type is the kind of event.
	Type EventType `json:"type"`
	// Stage names the workflow phase (status events only).
	Stage string `json:"stage,omitempty"`
	// Status is the phase state (status events only).
	Status StageStatus `json:"status,omitempty"`
	// Message is human-readable context (status and close events).
	Message string `json:"message,omitempty"`
	// Content is the payload text (log, chat_message and report events).
	Content string `json:"content,omitempty"`
}

// StatusEvent builds a status event for the given stage.
func StatusEvent(stage string, status StageStatus, message string) Event {
	return Event{Type: EventStatus, Stage: stage, Status: status, Message: message}
}

// LogEvent builds a log event carrying one dialogue line.
func LogEvent(content string) Event {
	return Event{Type: EventLog, Content: content}
}

// ChatEvent builds a chat_message event.
func ChatEvent(content string) Event {
	return Event{Type: EventChatMessage, Content: content}
}

// ReportEvent builds a report event carrying a markdown document.
func ReportEvent(content string) Event {
	return Event{Type: EventReport, Content: content}
}

// CloseEvent builds the terminal close event.
func CloseEvent(message string) Event {
	return Event{Type: EventClose, Message: message}
}

// Marshal serializes the event to its wire JSON. Encoding an Event cannot
// fail: every field is a plain string.
func (e Event) Marshal() []byte {
	b, _ := json.Marshal(e)
	return b
}
