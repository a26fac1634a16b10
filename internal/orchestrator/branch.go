package orchestrator

import "github.com/tengxufei/bedrockbio/internal/seq"

// Branch identifies which dialogue script a run executes. The branch is
// selected exactly once, at run start, from the task text alone, so two runs
// of the same task always take the same branch.
type Branch string

const (
	// BranchPrimerDesign is the gene-specific qPCR primer design dialogue.
	BranchPrimerDesign Branch = "primer_design"
	// BranchSequenceAnalysis analyzes a DNA-like token found in the task,
	// computing GC content and start codon position deterministically.
	BranchSequenceAnalysis Branch = "sequence_analysis"
	// BranchTaskPlanning is the fallback dialogue: a methodological plan
	// outline for an arbitrary task, not results.
	BranchTaskPlanning Branch = "task_planning"
)

// SelectBranch chooses the dialogue branch for a task and derives its topic.
// Precedence, first match wins: qPCR primer keywords, then a DNA-like token,
// then the fallback with the raw task as topic.
func SelectBranch(task string) (Branch, string) {
	if seq.IsPrimerDesignTask(task) {
		gene, ok := seq.ExtractGene(task)
		if !ok {
			gene = "a target gene"
		}
		return BranchPrimerDesign, gene
	}
	if dna, ok := seq.ExtractDNA(task); ok {
		return BranchSequenceAnalysis, dna
	}
	return BranchTaskPlanning, task
}

// script returns the dialogue function for the branch.
func (b Branch) script() dialogueScript {
	switch b {
	case BranchPrimerDesign:
		return primerDesignDialogue
	case BranchSequenceAnalysis:
		return sequenceAnalysisDialogue
	default:
		return taskPlanningDialogue
	}
}
