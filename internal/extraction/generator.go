package extraction

import (
	"context"
	"fmt"

	"github.com/syneepse/ResumeFix/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"google.golang.org/genai"
)

// Generator is the language model: one prompt in, raw text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenAIGenerator calls Gemini through the Google GenAI SDK.
type GenAIGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGenAIGenerator(ctx context.Context, apiKey, model string, temperature float32) (*GenAIGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model, temperature: temperature}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// LangChainGenerator calls Gemini through langchaingo's googleai model.
type LangChainGenerator struct {
	llm         llms.Model
	temperature float64
}

func NewLangChainGenerator(ctx context.Context, apiKey, model string, temperature float32) (*LangChainGenerator, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create googleai model: %w", err)
	}
	return &LangChainGenerator{llm: llm, temperature: float64(temperature)}, nil
}

func (g *LangChainGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
}

// NewGenerator builds the configured provider. Without an API key it returns nil and
// extraction reports ErrNoCredential.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	var (
		gen Generator
		err error
	)
	switch cfg.Provider {
	case config.ProviderLangChain:
		gen, err = NewLangChainGenerator(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
	case config.ProviderGenAI:
		gen, err = NewGenAIGenerator(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
	default:
		err = fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}
