package generator

import (
	"context"
	"errors"
	"fmt"

	"cortex/internal/core/domain"

	"github.com/liushuangls/go-anthropic/v2"
)

const (
	DefaultAnthropicModel = string(anthropic.ModelClaude3Dot5Sonnet20240620)
	MaxTokens             = 2048
)

var errNoContent = errors.New("response contained no content")

type AnthropicClient interface {
	CreateMessages(ctx context.Context, request anthropic.MessagesRequest) (anthropic.MessagesResponse, error)
}

type Anthropic struct {
	client       AnthropicClient
	model        string
	systemPrompt string
}

func NewAnthropic(apiKey, model, systemPrompt string) *Anthropic {
	if model == "" {
		model = DefaultAnthropicModel
	}

	return &Anthropic{
		model:        model,
		systemPrompt: systemPrompt,
		client:       anthropic.NewClient(apiKey),
	}
}

func (c *Anthropic) GenerateFromPrompt(ctx context.Context, prompts []domain.Prompt) (domain.ModelResponse, error) {
	messages := buildAnthropicMessages(prompts)
	if len(messages) == 0 {
		return domain.ModelResponse{}, domain.ErrEmptyPrompt
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    c.systemPrompt,
		Messages:  messages,
		MaxTokens: MaxTokens,
	})
	if err != nil {
		return domain.ModelResponse{}, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return domain.ModelResponse{}, fmt.Errorf("anthropic API error: %w", errNoContent)
	}

	return domain.ModelResponse{
		Response: resp.Content[0].GetText(),
		Metadata: domain.ResponseMetadata{
			Model:            string(resp.Model),
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

// buildAnthropicMessages maps prompts to alternating turns. The API rejects a conversation
// that starts with the assistant or repeats a role, so leading bot lines are dropped and
// consecutive lines of the same role are merged.
func buildAnthropicMessages(prompts []domain.Prompt) []anthropic.Message {
	var messages []anthropic.Message
	var roles []anthropic.ChatRole
	var texts []string

	for _, prompt := range prompts {
		role := anthropic.RoleUser
		if prompt.Author == domain.System {
			role = anthropic.RoleAssistant
		}

		if len(roles) == 0 && role == anthropic.RoleAssistant {
			continue
		}

		if n := len(roles); n > 0 && roles[n-1] == role {
			texts[n-1] += "\n" + prompt.Prompt
			continue
		}

		roles = append(roles, role)
		texts = append(texts, prompt.Prompt)
	}

	for i, role := range roles {
		if role == anthropic.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantTextMessage(texts[i]))
			continue
		}
		messages = append(messages, anthropic.NewUserTextMessage(texts[i]))
	}

	return messages
}
