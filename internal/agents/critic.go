package agents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tengxufei/bedrockbio/internal/llm"
)

// Critic reviews analysis results with a senior-computational-biologist
// persona.
type Critic struct {
	llm llm.Invoker
}

// NewCritic creates a Critic backed by the given model client.
func NewCritic(inv llm.Invoker) *Critic {
	return &Critic{llm: inv}
}

// criticPrompt builds the critique prompt over a marker-gene summary.
func criticPrompt(summary string) string {
	return fmt.Sprintf(`You are a senior computational biologist acting as a scientific critic.
An automated Seurat analysis was performed on a spatial transcriptomics dataset.
The analysis produced a list of marker genes for different cell clusters.

Here is a summary of the top marker genes for the first few clusters:
%s

Based on this information, please provide a critical review of the analysis.
Focus on the following points:
1.  **Potential Pitfalls:** What are common issues or biases that could arise from an automated Seurat workflow (e.g., normalization, clustering resolution, batch effects)?
2.  **Statistical Soundness:** Are the provided markers statistically significant? What further statistical tests would you recommend? (Assume standard Seurat defaults were used).
3.  **Next Steps:** What are the essential next steps to validate these findings and ensure the quality of the analysis before biological interpretation?

Provide a concise, critical review in markdown format.`, summary)
}

// Review reads the marker-gene CSV, asks the model for a critique, and
// writes it to scientific_critique.md in outputDir. Returns the critique
// text.
func (c *Critic) Review(ctx context.Context, markersCSV, outputDir string) (string, error) {
	summary, err := ReadMarkerSummary(markersCSV, 5, 3)
	if err != nil {
		return "", err
	}

	critique, err := c.llm.Invoke(ctx, criticPrompt(summary.String()))
	if err != nil {
		return "", fmt.Errorf("generate critique: %w", err)
	}

	path := filepath.Join(outputDir, "scientific_critique.md")
	if err := os.WriteFile(path, []byte(critique), 0644); err != nil {
		return "", fmt.Errorf("write critique: %w", err)
	}
	return critique, nil
}
