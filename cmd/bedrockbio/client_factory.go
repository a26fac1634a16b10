package main

import (
	"context"

	"github.com/tengxufei/bedrockbio/internal/config"
	"github.com/tengxufei/bedrockbio/internal/llm"
)

// buildLLMClient creates the model client the drafting commands use.
func buildLLMClient(ctx context.Context, cfg *config.Config) (*llm.Client, error) {
	return llm.NewClient(ctx, llm.ClientConfig{
		Model:         cfg.Model.ID,
		APIKey:        cfg.Model.APIKey,
		MaxTokens:     int64(cfg.Model.MaxTokens),
		UseAWSBedrock: cfg.AWS.UseBedrock,
		AWSRegion:     cfg.AWS.Region,
		AWSProfile:    cfg.AWS.Profile,
	})
}
