package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultTasks is the built-in suggested task list shown to clients that ask
// for ideas.
var defaultTasks = []string{
	"Perform co-expression analysis for DLL3, SEZ6, and B7H3 in TCGA-GBM.",
	"Run pathway analysis on the marker genes.",
	"Find top 15 therapeutic targets.",
	"Execute the full bioinformatics workflow.",
	"Critique the analysis results.",
	"Provide a biological interpretation.",
}

// tasksFile is the YAML shape of a suggested-tasks file.
type tasksFile struct {
	Tasks []string `yaml:"tasks"`
}

// SuggestedTasks returns the suggested task strings. When the config names a
// tasks file it is loaded and replaces the built-in list; a file with no
// tasks is an error rather than an empty suggestion box.
func (c *Config) SuggestedTasks() ([]string, error) {
	if c.Tasks.File == "" {
		return defaultTasks, nil
	}
	raw, err := os.ReadFile(c.Tasks.File)
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}
	var tf tasksFile
	if err := yaml.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("parse tasks file: %w", err)
	}
	if len(tf.Tasks) == 0 {
		return nil, fmt.Errorf("tasks file %s lists no tasks", c.Tasks.File)
	}
	return tf.Tasks, nil
}
