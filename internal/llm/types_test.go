package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: RoleSystem, Content: "s"}, NewSystemMessage("s"))
	assert.Equal(t, Message{Role: RoleUser, Content: "u"}, NewUserMessage("u"))
	assert.Equal(t, Message{Role: RoleAssistant, Content: "a"}, NewAssistantMessage("a"))
}

func TestCompletionRequestValidate(t *testing.T) {
	valid := CompletionRequest{
		Messages:    []Message{NewUserMessage("hi")},
		Temperature: 0.7,
		MaxTokens:   100,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  CompletionRequest
	}{
		{"no messages", CompletionRequest{}},
		{"empty content", CompletionRequest{Messages: []Message{{Role: RoleUser}}}},
		{"bad role", CompletionRequest{Messages: []Message{{Role: "robot", Content: "hi"}}}},
		{"temperature too high", CompletionRequest{
			Messages: []Message{NewUserMessage("hi")}, Temperature: 1.5}},
		{"negative max tokens", CompletionRequest{
			Messages: []Message{NewUserMessage("hi")}, MaxTokens: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestProviderConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultProviderConfig().Validate())

	bad := DefaultProviderConfig()
	bad.Provider = "skynet"
	assert.Error(t, bad.Validate())

	empty := ProviderConfig{}
	assert.Error(t, empty.Validate())
}
