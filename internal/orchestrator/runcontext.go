package orchestrator

import "github.com/tengxufei/bedrockbio/internal/seq"

// Turn is one recorded dialogue line.
type Turn struct {
	// Agent is the display label of the persona that spoke.
	Agent string
	// Message is the spoken text, without timestamp or attribution markup.
	Message string
	// Entities lists DNA-like tokens extracted from the message.
	Entities []string
}

// RunContext accumulates the conversation history of a single run. It lives
// on the producer goroutine only and needs no locking; it is discarded with
// the run and never shared across runs.
type RunContext struct {
	turns []Turn
}

// Record appends a dialogue turn, extracting any entities from the message.
func (rc *RunContext) Record(agent, message string) {
	var entities []string
	if dna, ok := seq.ExtractDNA(message); ok {
		entities = append(entities, dna)
	}
	rc.turns = append(rc.turns, Turn{Agent: agent, Message: message, Entities: entities})
}

// Turns returns the recorded history in emission order.
func (rc *RunContext) Turns() []Turn {
	return rc.turns
}

// Len returns the number of recorded turns.
func (rc *RunContext) Len() int {
	return len(rc.turns)
}
