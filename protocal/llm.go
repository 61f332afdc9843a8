package protocal

import (
	"fmt"
	"strings"

	"talkpro/configs"
	"talkpro/internal/adapters/output/claude"
	"talkpro/internal/adapters/output/langchain"
	"talkpro/internal/adapters/output/lmstudio"
	"talkpro/internal/adapters/output/openai"
	"talkpro/internal/domain"
	"talkpro/internal/ports/output"
)

// LLM providers accepted in llm.provider
const (
	ProviderLMStudio  = "lmstudio"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// NewLLMClient func - Builds the gateway adapter selected by llm.provider (lmstudio when empty)
func NewLLMClient(cfg configs.LLM) (output.LLMClient, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderLMStudio, "":
		client, err := lmstudio.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOpenAI:
		client, err := openai.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderAnthropic:
		client, err := claude.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOllama:
		client, err := langchain.NewOllamaClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", domain.ErrInvalidRequest, cfg.Provider)
	}
}
