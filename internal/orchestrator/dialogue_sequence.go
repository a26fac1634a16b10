package orchestrator

import (
	"context"
	"fmt"

	"github.com/tengxufei/bedrockbio/internal/seq"
)

// sequenceAnalysisDialogue is the DNA sequence branch. The topic is the
// uppercased token extracted from the task. Unlike the other branches, the
// numbers it reports are computed, not scripted: GC content and start codon
// position come straight from the token. The homology search remains a
// described next step; no alignment is performed.
func sequenceAnalysisDialogue(ctx context.Context, p *producer) (string, string, error) {
	dna := p.topic
	gc := seq.GCContent(dna)
	codon := seq.StartCodonIndex(dna)

	p.status("Task Framing", "processing", "Orchestrator is defining the task...")
	if err := p.log(ctx, agentOrchestrator, fmt.Sprintf("Team, we've received a raw sequence of %d bases to characterize. Let's start with composition and structure before anything speculative. SequenceAnalyst, first pass please.", len(dna))); err != nil {
		return "", "", err
	}

	p.status("Sequence Characterization", "processing", "Agents are computing sequence statistics...")
	if err := p.log(ctx, agentSequenceAnalyst, fmt.Sprintf("The sequence is %d bp with a GC content of %.1f%%. That's the single most informative first number: it constrains melting behavior and hints at the genomic neighborhood the fragment came from.", len(dna), gc)); err != nil {
		return "", "", err
	}
	codonLine := "I don't find an ATG motif anywhere in the fragment, so if this is coding sequence we are not looking at the start of the reading frame."
	if codon > 0 {
		codonLine = fmt.Sprintf("There is an ATG motif at position %d. If this fragment is coding, that's our candidate start codon, and the downstream frame is worth translating.", codon)
	}
	if err := p.log(ctx, agentBioinformatician, codonLine); err != nil {
		return "", "", err
	}
	if err := p.log(ctx, agentScientificCritic, "Composition alone won't tell us what this is. Before we speculate about function, run a homology search: BLAST against nt and the non-redundant protein set. If the top hits agree, we have provenance; if they scatter, we treat every downstream claim as provisional."); err != nil {
		return "", "", err
	}

	p.status("Action Plan", "processing", "Agents are defining concrete steps...")
	if err := p.log(ctx, agentOrchestrator, "Agreed. Summary of where we stand: the compositional profile is computed, the candidate start codon is flagged, and the next step is a homology search to establish provenance. Bioinformatician will run the BLAST query and bring the top hits back to this table."); err != nil {
		return "", "", err
	}

	report := fmt.Sprintf(`### Sequence Analysis: %s

**Sequence:** `+"`%s`"+` (%d bp)

**Computed Characteristics:**
1.  **GC Content:** %.1f%%
2.  **Start Codon (ATG):** %s

**Next Step — Homology Search:**
A BLAST search against the nucleotide collection (nt) and the non-redundant protein database will be performed to establish the likely origin of the fragment. Functional interpretation is deferred until the homology evidence is in.`,
		summarizeToken(dna), dna, len(dna), gc, describeCodon(codon))

	chat := "The sequence characterization is complete and the computed statistics are in the 'Results' tab. The team recommends a homology search before any functional interpretation."
	return report, chat, nil
}

// summarizeToken shortens long sequences for headings.
func summarizeToken(dna string) string {
	if len(dna) <= 16 {
		return dna
	}
	return dna[:13] + "..."
}

func describeCodon(pos int) string {
	if pos == 0 {
		return "not present in the fragment"
	}
	return fmt.Sprintf("first occurrence at position %d", pos)
}
