package orchestrator

import (
	"context"
	"fmt"
)

// primerDesignDialogue is the qPCR primer design branch. The topic is the
// gene symbol extracted from the task. The report it produces is a plan,
// not primer sequences.
func primerDesignDialogue(ctx context.Context, p *producer) (string, string, error) {
	gene := p.topic

	p.status("Task Framing", "processing", "Orchestrator is defining the task...")
	if err := p.log(ctx, agentOrchestrator, fmt.Sprintf("Team, the task is to design a robust set of qPCR primers for the gene '%s'. This is a critical first step, so let's be thorough. MolecularBiologist, what are your initial thoughts on the parameters?", gene)); err != nil {
		return "", "", err
	}

	p.status("Methodology Debate", "processing", "Agents are discussing the approach...")
	if err := p.log(ctx, agentMolecularBiologist, fmt.Sprintf("Standard parameters apply: length of 18-22 bp, Tm around 60-64°C, and a GC content of 40-60%%. But for %s, we need to be extra careful about splice variants. We must target a constitutive exon.", gene)); err != nil {
		return "", "", err
	}
	if err := p.log(ctx, agentBioinformatician, fmt.Sprintf("I agree. I can pull the transcript data for %s from Ensembl and RefSeq. I'll align them to identify exons present in all major isoforms. That should be our target region.", gene)); err != nil {
		return "", "", err
	}
	if err := p.log(ctx, agentScientificCritic, "Before we do that, let's consider the source. Is RefSeq sufficient, or should we also check the UCSC Genome Browser for more comprehensive annotations? Sometimes one database misses a rare but functionally important isoform. Let's not introduce a blind spot at step one."); err != nil {
		return "", "", err
	}
	if err := p.log(ctx, agentBioinformatician, "Good point. Cross-referencing is better. It will take a few more minutes, but it's worth it. I'll pull from all three and create a consensus exon map."); err != nil {
		return "", "", err
	}

	p.status("Action Plan", "processing", "Agents are defining concrete steps...")
	if err := p.log(ctx, agentMolecularBiologist, "Once we have that consensus exon, I'll need to check for SNPs. We don't want a polymorphism in our primer binding site, as that would kill our amplification efficiency for certain alleles. I'll run the target sequence through dbSNP."); err != nil {
		return "", "", err
	}
	if err := p.log(ctx, agentScientificCritic, fmt.Sprintf("And what about off-target binding? A BLAST search against the human transcriptome is non-negotiable. The primers must be unique to %s.", gene)); err != nil {
		return "", "", err
	}
	if err := p.log(ctx, agentOrchestrator, fmt.Sprintf("Excellent. We have a clear, rigorous plan. To summarize the next steps: 1) Bioinformatician will create a consensus exon map for %s from RefSeq, Ensembl, and UCSC. 2) MolecularBiologist will then scan that region for SNPs. 3) Finally, we will design primers within a clean, constitutive region and validate their specificity via BLAST. Let's start with the exon mapping.", gene)); err != nil {
		return "", "", err
	}

	report := fmt.Sprintf(`### Plan for Designing qPCR Primers for %[1]s

**Objective:** To design a highly specific and efficient set of qPCR primers for the gene %[1]s.

**Methodology Outline:**
1.  **Identify Constitutive Exons:** Align transcript data from RefSeq, Ensembl, and the UCSC Genome Browser to identify exons common to all major isoforms of %[1]s.
2.  **SNP Avoidance:** The selected exon region will be checked against dbSNP to ensure primer binding sites do not overlap with known single nucleotide polymorphisms.
3.  **Primer Design:** Primers will be designed with standard parameters (18-22 bp length, 60-64°C Tm, 40-60%% GC content) within the validated exon region.
4.  **Specificity Validation:** The final primer candidates will be subjected to a BLAST search against the human transcriptome to ensure they do not have significant off-target binding sites.`, gene)

	chat := fmt.Sprintf("We have formulated a detailed plan for designing the %s primers. The proposed methodology is now available in the 'Results' tab. Shall we proceed with the first step?", gene)
	return report, chat, nil
}
