package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

const (
	defaultOpenAIModel = "gpt-4o"
	defaultClaudeModel = "claude-sonnet-4-20250514"
	defaultGeminiModel = "gemini-2.0-flash"

	// maxSynthesisTokens is the largest completion any operation requests;
	// the Claude config needs it up front.
	maxSynthesisTokens = 4000
)

// LLMClient adapts one chat model to the generative operations of the
// document workflow: gap analysis, synthesis, refinement, the advisory
// compliance check, and the format recommendation. The workflow consumes it
// through its collaborator interfaces; a single client satisfies all of them.
type LLMClient struct {
	chat     model.BaseChatModel
	provider string
}

func NewOpenAIClient(ctx context.Context, apiKey string, modelName string) (*LLMClient, error) {
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultOpenAIModel
	}
	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI chat model: %w", err)
	}
	return &LLMClient{chat: chat, provider: "openai"}, nil
}

func NewClaudeClient(ctx context.Context, apiKey string, modelName string) (*LLMClient, error) {
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultClaudeModel
	}
	chat, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:    apiKey,
		Model:     modelName,
		MaxTokens: maxSynthesisTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Claude chat model: %w", err)
	}
	return &LLMClient{chat: chat, provider: "anthropic"}, nil
}

func NewGeminiClient(ctx context.Context, apiKey string, modelName string) (*LLMClient, error) {
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultGeminiModel
	}
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini API client: %w", err)
	}
	chat, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: genaiClient,
		Model:  modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini chat model: %w", err)
	}
	return &LLMClient{chat: chat, provider: "gemini"}, nil
}

func (c *LLMClient) Provider() string {
	return c.provider
}

// complete runs one system+user exchange and returns the assistant text.
func (c *LLMClient) complete(ctx context.Context, system, user string, opts ...model.Option) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}
	out, err := c.chat.Generate(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", fmt.Errorf("model returned no content")
	}
	return out.Content, nil
}
