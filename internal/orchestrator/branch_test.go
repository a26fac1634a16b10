package orchestrator

import "testing"

func TestSelectBranch(t *testing.T) {
	tests := []struct {
		name      string
		task      string
		wantB     Branch
		wantTopic string
	}{
		{
			name:      "qpcr primer task with gene",
			task:      "Design qPCR primers for TP53",
			wantB:     BranchPrimerDesign,
			wantTopic: "TP53",
		},
		{
			name:      "qpcr primer task without gene phrase",
			task:      "We need qPCR primer design",
			wantB:     BranchPrimerDesign,
			wantTopic: "a target gene",
		},
		{
			name:      "dna token task",
			task:      "Analyze ATGCGTACGTAGCTAGC",
			wantB:     BranchSequenceAnalysis,
			wantTopic: "ATGCGTACGTAGCTAGC",
		},
		{
			name:      "lowercase dna token",
			task:      "what is atgcgtacgtagctagc",
			wantB:     BranchSequenceAnalysis,
			wantTopic: "ATGCGTACGTAGCTAGC",
		},
		{
			name: "qpcr keywords win over dna token",
			// Both a DNA token and primer keywords: precedence says primers.
			task:      "Design qPCR primers for TP53 near ATGCGTACGTAGCTAGC",
			wantB:     BranchPrimerDesign,
			wantTopic: "TP53",
		},
		{
			name:      "fallback keeps raw task as topic",
			task:      "Run pathway analysis on the marker genes.",
			wantB:     BranchTaskPlanning,
			wantTopic: "Run pathway analysis on the marker genes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, topic := SelectBranch(tt.task)
			if b != tt.wantB || topic != tt.wantTopic {
				t.Errorf("SelectBranch(%q) = (%s, %q), want (%s, %q)", tt.task, b, topic, tt.wantB, tt.wantTopic)
			}
		})
	}
}

func TestSelectBranch_Deterministic(t *testing.T) {
	task := "Design qPCR primers for SEZ6"
	b1, t1 := SelectBranch(task)
	b2, t2 := SelectBranch(task)
	if b1 != b2 || t1 != t2 {
		t.Errorf("SelectBranch is not deterministic: (%s,%q) vs (%s,%q)", b1, t1, b2, t2)
	}
}

func TestBranch_ScriptNeverNil(t *testing.T) {
	for _, b := range []Branch{BranchPrimerDesign, BranchSequenceAnalysis, BranchTaskPlanning, Branch("unknown")} {
		if b.script() == nil {
			t.Errorf("branch %s has no script", b)
		}
	}
}
