package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// GeneratedField is one suggested question for the form builder.
type GeneratedField struct {
	FieldType   string   `json:"field_type"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder"`
	IsRequired  bool     `json:"is_required"`
	Options     []string `json:"options"`
	RatingMax   int      `json:"rating_max"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateFormFields drafts survey questions from a free-text description
// using OpenAI GPT
func (s *AIService) GenerateFormFields(ctx context.Context, description string) ([]GeneratedField, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a survey design assistant for an internal employee voice system. Draft survey questions for the topic below.

Topic:
%s

Return a JSON array of questions in this exact shape:
[
  {
    "field_type": "one of: text, textarea, email, number, date, select, radio, checkbox, rating",
    "label": "the question text",
    "placeholder": "short hint shown in the empty input",
    "is_required": true,
    "options": ["only for select/radio/checkbox, otherwise []"],
    "rating_max": 5
  }
]

Rules:
- Return between 3 and 8 questions
- Set rating_max only for rating fields, 0 otherwise
- Return JSON only, no explanation text`, description)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var fields []GeneratedField
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return fields, nil
}
