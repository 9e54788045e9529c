package providers

import (
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/erandawijewantha/personalized-health-coach/internal/llm"
)

// toSchemaMessages converts coach messages to langchaingo MessageContent.
func toSchemaMessages(messages []llm.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))

	for _, msg := range messages {
		var role schema.ChatMessageType
		switch msg.Role {
		case llm.RoleSystem:
			role = schema.ChatMessageTypeSystem
		case llm.RoleAssistant:
			role = schema.ChatMessageTypeAI
		default:
			role = schema.ChatMessageTypeHuman
		}

		result = append(result, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		})
	}

	return result
}

// fromLangchainResponse converts a langchaingo response to a coach response.
func fromLangchainResponse(resp *llms.ContentResponse, model string) *llm.CompletionResponse {
	if resp == nil {
		return &llm.CompletionResponse{
			ID:    uuid.New().String(),
			Model: model,
		}
	}

	var content string
	finishReason := llm.FinishReasonStop
	if len(resp.Choices) > 0 {
		choice := resp.Choices[0]
		content = choice.Content

		switch choice.StopReason {
		case "length", "max_tokens":
			finishReason = llm.FinishReasonLength
		}
	}

	return &llm.CompletionResponse{
		ID:           uuid.New().String(),
		Model:        model,
		Message:      llm.NewAssistantMessage(content),
		FinishReason: finishReason,
		Usage:        llm.CompletionTokenUsage{},
	}
}

// buildCallOptions converts a coach request to langchaingo call options,
// applying config defaults where the request leaves fields unset.
func buildCallOptions(req llm.CompletionRequest, cfg llm.ProviderConfig) []llms.CallOption {
	callOpts := make([]llms.CallOption, 0)

	temperature := req.Temperature
	if temperature == 0 {
		temperature = cfg.Temperature
	}
	if temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(temperature))
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = cfg.MaxTokens
	}
	if maxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(maxTokens))
	}

	if req.Model != "" {
		callOpts = append(callOpts, llms.WithModel(req.Model))
	}

	return callOpts
}

func requestModel(req llm.CompletionRequest, cfg llm.ProviderConfig) string {
	if req.Model != "" {
		return req.Model
	}
	return cfg.Model
}
