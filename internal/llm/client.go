// Package llm provides the model client used by the collaborator agents
// (critique, interpretation, report writing). The streaming dialogue core
// never calls it; runs stay deterministic.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Invoker is the single-turn completion interface the agents depend on.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Client wraps the Anthropic SDK with the two auth paths this project runs
// in: a direct API key, or AWS Bedrock resolved from the standard AWS config
// chain.
type Client struct {
	inner     anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// ClientConfig contains configuration for creating a new Client.
type ClientConfig struct {
	// Model is the model identifier. On the Bedrock path, plain Anthropic
	// names are translated to Bedrock model IDs.
	Model string
	// APIKey is the Anthropic API key. If empty, uses ANTHROPIC_API_KEY.
	APIKey string
	// MaxTokens caps the completion length. Defaults to 4096.
	MaxTokens int64
	// UseAWSBedrock routes requests through AWS Bedrock.
	UseAWSBedrock bool
	// AWSRegion is the AWS region for Bedrock (e.g., "ap-southeast-1").
	AWSRegion string
	// AWSProfile is the optional AWS profile name to use.
	AWSProfile string
}

// NewClient creates a model client.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	var opts []option.RequestOption

	if cfg.UseAWSBedrock {
		var loadOpts []func(*config.LoadOptions) error
		if cfg.AWSRegion != "" {
			loadOpts = append(loadOpts, config.WithRegion(cfg.AWSRegion))
		}
		if cfg.AWSProfile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.AWSProfile))
		}
		opts = append(opts, bedrock.WithLoadDefaultConfig(ctx, loadOpts...))
	} else {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	model := anthropic.Model(cfg.Model)
	if model == "" {
		model = anthropic.ModelClaude3_5Haiku20241022
	}
	if cfg.UseAWSBedrock {
		model = translateModelForBedrock(model)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &Client{
		inner:     anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// translateModelForBedrock converts plain Anthropic model names to Bedrock
// model IDs (anthropic.{model}-v1:0). Names already in Bedrock format pass
// through unchanged.
func translateModelForBedrock(model anthropic.Model) anthropic.Model {
	s := string(model)
	if strings.Contains(s, "anthropic.") {
		return model
	}
	return anthropic.Model("anthropic." + s + "-v1:0")
}

// Model returns the configured model name.
func (c *Client) Model() anthropic.Model {
	return c.model
}

// Invoke sends a single user prompt and returns the concatenated text of the
// response. Model failures come back as errors, never as response text; the
// caller decides how to surface them.
func (c *Client) Invoke(ctx context.Context, prompt string) (string, error) {
	resp, err := c.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("invoke model: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("model returned no text content")
	}
	return text.String(), nil
}
