package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ecotravel/ecotravel-api/internal/config"
	"github.com/ecotravel/ecotravel-api/internal/models"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  cfg.OpenAIModel,
	}
}

func (c *OpenAIClient) GenerateTripOptions(ctx context.Context, prefs models.TripPreferences) ([]models.TripOption, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(tripPrompt(prefs)),
		},
		Temperature: openai.Float(0.4),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "trip_options",
					Schema: tripOptionsSchema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("trip generation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("trip generation returned no choices")
	}

	var payload struct {
		Options []models.TripOption `json:"options"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("decode trip options: %w", err)
	}

	return payload.Options, nil
}

func (c *OpenAIClient) SendChatMessage(ctx context.Context, history []models.ChatMessage, newMessage string, trips []models.TripOption, profile models.UserProfile, view string) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+3)
	msgs = append(msgs, openai.SystemMessage(chatSystemInstruction))
	msgs = append(msgs, openai.UserMessage("System Context Data: "+chatContext(trips, profile, view)))

	for _, m := range truncateTranscript(history, maxChatHistory) {
		switch m.Role {
		case models.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Text))
		case models.RoleModel:
			msgs = append(msgs, openai.AssistantMessage(m.Text))
		}
	}
	msgs = append(msgs, openai.UserMessage(newMessage))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("chat returned an empty message")
	}
	return text, nil
}
