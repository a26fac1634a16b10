// Package agents implements the collaborator personas that call the model:
// the scientific critic, the biological interpreter, and the report writer.
// They run outside the streaming core and are invoked synchronously.
package agents

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// MarkerSummary maps a cluster label to its top marker genes, preserving the
// order clusters first appear in the file.
type MarkerSummary struct {
	Clusters []string
	Genes    map[string][]string
}

// ReadMarkerSummary reads a marker-gene CSV (columns "cluster" and "gene",
// with a header row) and keeps the first genesPerCluster genes of the first
// maxClusters clusters, which is all the critique prompt quotes.
func ReadMarkerSummary(path string, genesPerCluster, maxClusters int) (*MarkerSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open marker genes file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read marker genes header: %w", err)
	}
	clusterIdx, geneIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "cluster":
			clusterIdx = i
		case "gene":
			geneIdx = i
		}
	}
	if clusterIdx < 0 || geneIdx < 0 {
		return nil, fmt.Errorf("marker genes file missing cluster/gene columns: %v", header)
	}

	sum := &MarkerSummary{Genes: make(map[string][]string)}
	for {
		rec, err := r.Read()
		if err != nil {
			break
		}
		if len(rec) <= clusterIdx || len(rec) <= geneIdx {
			continue
		}
		cluster := strings.TrimSpace(rec[clusterIdx])
		gene := strings.TrimSpace(rec[geneIdx])
		if cluster == "" || gene == "" {
			continue
		}
		if _, seen := sum.Genes[cluster]; !seen {
			if len(sum.Clusters) >= maxClusters {
				continue
			}
			sum.Clusters = append(sum.Clusters, cluster)
		}
		if len(sum.Genes[cluster]) < genesPerCluster {
			sum.Genes[cluster] = append(sum.Genes[cluster], gene)
		}
	}
	if len(sum.Clusters) == 0 {
		return nil, fmt.Errorf("marker genes file %s has no usable rows", path)
	}
	return sum, nil
}

// String renders the summary in the "cluster: [genes]" form the prompts use.
func (s *MarkerSummary) String() string {
	var b strings.Builder
	for i, cluster := range s.Clusters {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "cluster %s: [%s]", cluster, strings.Join(s.Genes[cluster], ", "))
	}
	return b.String()
}
