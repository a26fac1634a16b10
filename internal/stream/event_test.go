package stream

import (
	"encoding/json"
	"testing"
)

func TestEventMarshal_WireShapes(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "status",
			ev:   StatusEvent("Methodology Debate", StageProcessing, "Agents are discussing the approach..."),
			want: `{"type":"status","stage":"Methodology Debate","status":"processing","message":"Agents are discussing the approach..."}`,
		},
		{
			name: "log",
			ev:   LogEvent("[09:15:02] **Orchestrator:** Team, new task."),
			want: `{"type":"log","content":"[09:15:02] **Orchestrator:** Team, new task."}`,
		},
		{
			name: "chat_message",
			ev:   ChatEvent("The plan is in the Results tab."),
			want: `{"type":"chat_message","content":"The plan is in the Results tab."}`,
		},
		{
			name: "report",
			ev:   ReportEvent("### Plan\n\n1. Step one."),
			want: `{"type":"report","content":"### Plan\n\n1. Step one."}`,
		},
		{
			name: "close",
			ev:   CloseEvent("Stream finished"),
			want: `{"type":"close","message":"Stream finished"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(tt.ev.Marshal())
			if got != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
			// Round-trip to confirm the encoding stays parseable.
			var back Event
			if err := json.Unmarshal([]byte(got), &back); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if back != tt.ev {
				t.Errorf("round-trip mismatch: got %+v, want %+v", back, tt.ev)
			}
		})
	}
}
