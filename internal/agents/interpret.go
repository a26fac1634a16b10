package agents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tengxufei/bedrockbio/internal/llm"
)

// Interpreter turns an analysis summary into a biological reading of the
// results.
type Interpreter struct {
	llm llm.Invoker
}

// NewInterpreter creates an Interpreter backed by the given model client.
func NewInterpreter(inv llm.Invoker) *Interpreter {
	return &Interpreter{llm: inv}
}

func interpretPrompt(summary string) string {
	return fmt.Sprintf(`You are a senior cancer biologist.
An automated analysis produced the following summary of results:
---
%s
---

Please provide a biological interpretation of these results.
Focus on the following points:
1.  **Biological Meaning:** What do these results suggest about the underlying biology of the samples?
2.  **Therapeutic Relevance:** Do any of the observations have implications for target selection or treatment strategy?
3.  **Caveats:** Which interpretations would be premature given the nature of the data, and what evidence would firm them up?

Provide a concise interpretation in markdown format.`, summary)
}

// Interpret asks the model for a biological interpretation of summary and
// writes it to biological_interpretation.md in outputDir.
func (i *Interpreter) Interpret(ctx context.Context, summary, outputDir string) (string, error) {
	text, err := i.llm.Invoke(ctx, interpretPrompt(summary))
	if err != nil {
		return "", fmt.Errorf("generate interpretation: %w", err)
	}

	path := filepath.Join(outputDir, "biological_interpretation.md")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write interpretation: %w", err)
	}
	return text, nil
}
