// Package seq provides the deterministic sequence arithmetic and entity
// extraction used to route and populate dialogue runs. Everything here is
// pure: same input, same output, no model calls.
package seq

import (
	"regexp"
	"strings"
)

// dnaPattern matches a DNA-like token: ten or more consecutive A/T/G/C
// characters, case-insensitive. Shorter runs are too easy to hit in ordinary
// English text.
var dnaPattern = regexp.MustCompile(`(?i)[ATGC]{10,}`)

// genePattern pulls the word following "for" out of a task, e.g. the gene
// symbol in "design qPCR primers for TP53".
var genePattern = regexp.MustCompile(`(?i)\bfor\s+(\w+)`)

// ExtractDNA returns the first DNA-like token in text, uppercased. ok is
// false when text contains no such token.
func ExtractDNA(text string) (seq string, ok bool) {
	m := dnaPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.ToUpper(m), true
}

// ExtractGene returns the word following "for" in the task text. ok is false
// when the task has no such phrase.
func ExtractGene(task string) (gene string, ok bool) {
	m := genePattern.FindStringSubmatch(task)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// GCContent returns the G+C percentage of seq: 100 * (count(G)+count(C)) /
// len(seq). seq must already be uppercased (as returned by ExtractDNA).
// Returns 0 for an empty sequence.
func GCContent(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := 0
	for _, b := range []byte(seq) {
		if b == 'G' || b == 'C' {
			gc++
		}
	}
	return 100 * float64(gc) / float64(len(seq))
}

// StartCodonIndex returns the 1-based position of the first ATG motif in seq,
// or 0 when the sequence contains none.
func StartCodonIndex(seq string) int {
	i := strings.Index(seq, "ATG")
	if i < 0 {
		return 0
	}
	return i + 1
}

// IsPrimerDesignTask reports whether the task asks for qPCR primer design.
func IsPrimerDesignTask(task string) bool {
	lower := strings.ToLower(task)
	return strings.Contains(lower, "qpcr") && strings.Contains(lower, "primer")
}
