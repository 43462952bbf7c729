package copygen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	appconfig "github.com/ignite/leadmailer/internal/config"
	"github.com/ignite/leadmailer/internal/mailing"
	"github.com/ignite/leadmailer/internal/pkg/httpretry"
	"github.com/ignite/leadmailer/internal/pkg/logger"
)

// modelInvoker is the slice of the Bedrock runtime client the generator
// uses.
type modelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockGenerator generates copy with an Anthropic model on AWS Bedrock.
// A generator without a client (missing credentials, disabled in config)
// serves the local fallback instead of erroring.
type BedrockGenerator struct {
	client modelInvoker
	cfg    appconfig.BedrockConfig
	log    *logger.Logger
}

// anthropicMessage is a message in the Anthropic messages format.
type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

// anthropicContent is a content block within a message.
type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// anthropicRequest is the InvokeModel request body for Anthropic models.
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature,omitempty"`
}

// anthropicResponse is the InvokeModel response body for Anthropic models.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewBedrockGenerator creates a generator from config. When the provider is
// not configured no AWS client is built and all requests take the fallback
// path. The underlying HTTP transport retries transient failures once.
func NewBedrockGenerator(ctx context.Context, cfg appconfig.BedrockConfig) (*BedrockGenerator, error) {
	g := &BedrockGenerator{
		cfg: cfg,
		log: logger.New("copygen"),
	}

	if !cfg.Configured() {
		g.log.Info("bedrock not configured, using local fallback copy")
		return g, nil
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithHTTPClient(httpretry.NewRetryClient(nil, 1)),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	g.client = bedrockruntime.NewFromConfig(awsCfg)
	g.log.Info("bedrock generator ready", "model", cfg.ModelID, "region", cfg.Region)
	return g, nil
}

// Generate produces a copy summary for the request. A request with no
// features short-circuits to a static summary. Provider errors propagate to
// the caller; only a missing provider falls back locally.
func (g *BedrockGenerator) Generate(ctx context.Context, req Request) (*mailing.CopyResult, error) {
	if len(req.Features) == 0 {
		return &mailing.CopyResult{Summary: StaticSummary, ModelUsed: "static"}, nil
	}

	if g.client == nil {
		return fallbackCopy(req), nil
	}

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        g.cfg.MaxTokens,
		System:           systemPrompt(req),
		Messages: []anthropicMessage{
			{Role: "user", Content: []anthropicContent{{Type: "text", Text: userPrompt(req)}}},
		},
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling bedrock request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout())
	defer cancel()

	output, err := g.client.InvokeModel(callCtx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.cfg.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("invoking model %s: %w", g.cfg.ModelID, err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling bedrock response: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return nil, fmt.Errorf("model %s returned empty copy (stop_reason=%s)", g.cfg.ModelID, resp.StopReason)
	}

	g.log.Debug("copy generated",
		"model", g.cfg.ModelID,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)

	return &mailing.CopyResult{
		Summary:      summary,
		ModelUsed:    g.cfg.ModelID,
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}, nil
}

// systemPrompt sets the copywriter persona and output constraints.
func systemPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("You are a marketing copywriter for the brand ")
	sb.WriteString(req.Brand.Name)
	sb.WriteString(". Write a short summary paragraph for a confirmation email, 2-3 sentences, ")
	sb.WriteString("plain text with no greeting, no sign-off and no subject line. ")
	sb.WriteString("Use a ")
	sb.WriteString(req.Tone)
	sb.WriteString(" tone.")
	if req.Brand.StyleNotes != "" {
		sb.WriteString(" Brand style notes: ")
		sb.WriteString(req.Brand.StyleNotes)
	}
	return sb.String()
}

// userPrompt describes the lead and the campaign features to highlight.
func userPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("Write the summary for ")
	sb.WriteString(req.Lead.Salutation())
	if req.Lead.JobTitle != "" {
		sb.WriteString(", ")
		sb.WriteString(req.Lead.JobTitle)
	}
	if req.Lead.Company != "" {
		sb.WriteString(" at ")
		sb.WriteString(req.Lead.Company)
	}
	sb.WriteString(", who just signed up.\n")

	if req.Campaign != nil && req.Campaign.Description != "" {
		sb.WriteString("Campaign context: ")
		sb.WriteString(req.Campaign.Description)
		sb.WriteString("\n")
	}

	sb.WriteString("Highlight these features:\n")
	for _, f := range req.Features {
		sb.WriteString("- ")
		sb.WriteString(f.Name)
		desc := f.HighlightText
		if desc == "" {
			desc = f.ShortDescription
		}
		if desc != "" {
			sb.WriteString(": ")
			sb.WriteString(desc)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
