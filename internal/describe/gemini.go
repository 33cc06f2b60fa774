package describe

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"
)

// Backend names accepted by NewGemini.
const (
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"
)

// GeminiConfig configures a GeminiGenerator.
type GeminiConfig struct {
	APIKey   string
	Model    string
	Backend  string
	Project  string
	Location string
}

// GeminiGenerator implements Generator with the Google Gen AI SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGemini creates a client for the configured backend.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger hclog.Logger) (*GeminiGenerator, error) {
	clientConfig := &genai.ClientConfig{}

	switch cfg.Backend {
	case BackendVertexAI:
		clientConfig.Backend = genai.BackendVertexAI
		clientConfig.Project = cfg.Project
		clientConfig.Location = cfg.Location
	case "", BackendGeminiAPI:
		clientConfig.Backend = genai.BackendGeminiAPI
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: GOOGLE_API_KEY environment variable is required", ErrUnavailable)
		}
		clientConfig.APIKey = cfg.APIKey
	default:
		return nil, fmt.Errorf("unknown genai backend %q (want %q or %q)", cfg.Backend, BackendGeminiAPI, BackendVertexAI)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	if logger != nil {
		backendName := "Gemini API"
		if client.ClientConfig().Backend == genai.BackendVertexAI {
			backendName = "Vertex AI"
		}
		logger.Debug("gen ai client ready", "backend", backendName, "model", cfg.Model)
	}

	return &GeminiGenerator{
		client: client,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.7),
			MaxOutputTokens: 200,
		},
	}, nil
}

// Model returns the model name used for generation.
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate sends prompt as a single user turn and returns the text reply.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
