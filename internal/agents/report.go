package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/tengxufei/bedrockbio/internal/llm"
)

// ReportInput collects everything the report writer stitches together.
type ReportInput struct {
	// Prompt is the user's original task text.
	Prompt string
	// ScriptCode is the analysis script that was executed, if any.
	ScriptCode string
	// ResultFiles lists the artifacts the analysis produced.
	ResultFiles []string
	// Critique is the scientific critique markdown.
	Critique string
	// Interpretation is the biological interpretation markdown.
	Interpretation string
}

// ReportWriter assembles the final publication-style markdown report.
type ReportWriter struct {
	llm llm.Invoker
}

// NewReportWriter creates a ReportWriter backed by the given model client.
func NewReportWriter(inv llm.Invoker) *ReportWriter {
	return &ReportWriter{llm: inv}
}

const reportSystemPrompt = `You are a senior computational biologist and scientific writer. Your task is to generate a detailed, publication-quality analysis report in Markdown format.
You will be given the user's original prompt, the script that was generated and executed, a list of the resulting output files, a scientific critique of the methods, and a biological interpretation of the results.

The report MUST follow this structure:
1.  **Analysis Overview:** Briefly describe the goal of the analysis based on the user's prompt.
2.  **Methodology:** Describe the analysis steps taken, with key code snippets in Markdown code blocks.
3.  **Results:** List the generated output files and briefly describe what each contains.
4.  **Automated Review and Interpretation:** Include the full scientific critique under a "Scientific Critique" sub-heading and the full biological interpretation under a "Biological Interpretation" sub-heading.

The final output should be ONLY the complete Markdown report.`

// buildReportPrompt renders the full prompt sent to the model.
func buildReportPrompt(in ReportInput) string {
	var b strings.Builder
	b.WriteString(reportSystemPrompt)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**Original User Prompt:**\n%s\n\n", in.Prompt)
	if in.ScriptCode != "" {
		fmt.Fprintf(&b, "**Executed Script:**\n```\n%s\n```\n\n", in.ScriptCode)
	}
	if len(in.ResultFiles) > 0 {
		fmt.Fprintf(&b, "**Generated Result Files:**\n%s\n\n", strings.Join(in.ResultFiles, ", "))
	}
	fmt.Fprintf(&b, "**Scientific Critique:**\n%s\n\n", in.Critique)
	fmt.Fprintf(&b, "**Biological Interpretation:**\n%s\n", in.Interpretation)
	return b.String()
}

// Generate produces the report markdown.
func (r *ReportWriter) Generate(ctx context.Context, in ReportInput) (string, error) {
	report, err := r.llm.Invoke(ctx, buildReportPrompt(in))
	if err != nil {
		return "", fmt.Errorf("generate report: %w", err)
	}
	return report, nil
}
