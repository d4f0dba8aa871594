// Package openai implements the scorer.Scorer interface with the OpenAI
// chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/t-yamaguchi/recite/internal/scorer"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	if retryAttempts == 0 {
		retryAttempts = scorer.DefaultMaxRetryAttempts
	}

	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

const systemPrompt = `You are an expert grader of translations for language learners.

You receive a JSON object with "original_text", its "language_code", and
"translations": a map from target language code to the user's translation.

Return ONLY a JSON object of the form {"scores": {"<language code>": <number>}}
with one entry per input translation. Each score is a number between 0 and 1:
1 means a fully correct, natural translation; 0 means unrelated or empty.
Judge meaning first, then grammar; minor spelling mistakes cost little.
No text outside the JSON.`

// ScoreTranslations implements the scorer.Scorer interface.
func (client *Client) ScoreTranslations(ctx context.Context, req scorer.ScoreTranslationsRequest) (scorer.ScoreTranslationsResponse, error) {
	if len(req.Translations) == 0 {
		return scorer.ScoreTranslationsResponse{}, fmt.Errorf("no translations to score")
	}

	var result scorer.ScoreTranslationsResponse
	if err := retry.Do(
		func() error {
			response, err := client.scoreTranslations(ctx, req)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return scorer.ScoreTranslationsResponse{}, err
	}
	return result, nil
}

func (client *Client) scoreTranslations(ctx context.Context, req scorer.ScoreTranslationsRequest) (scorer.ScoreTranslationsResponse, error) {
	userContent, err := json.Marshal(req)
	if err != nil {
		return scorer.ScoreTranslationsResponse{}, fmt.Errorf("json.Marshal(request) > %w", err)
	}

	requestBody := ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: string(userContent)},
		},
	}

	var completion ChatCompletionResponse
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&completion).
		Post("/chat/completions")
	if err != nil {
		return scorer.ScoreTranslationsResponse{}, fmt.Errorf("post chat completion: %w", err)
	}
	if response.IsError() {
		return scorer.ScoreTranslationsResponse{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	if len(completion.Choices) == 0 {
		return scorer.ScoreTranslationsResponse{}, fmt.Errorf("no choices in completion response")
	}

	return parseScores(completion.Choices[0].Message.Content, req.Translations)
}

// parseScores decodes the model's JSON and normalizes it onto [0, 1].
// Anything unparsable or out of range is an error; a fabricated default
// score would silently corrupt scheduling state downstream.
func parseScores(content string, translations map[string]string) (scorer.ScoreTranslationsResponse, error) {
	var parsed struct {
		Scores map[string]float64 `json:"scores"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return scorer.ScoreTranslationsResponse{}, fmt.Errorf("json.Unmarshal(scorer output) > %w", err)
	}

	scores := make(map[string]float64, len(translations))
	for lang := range translations {
		score, ok := parsed.Scores[lang]
		if !ok {
			return scorer.ScoreTranslationsResponse{}, fmt.Errorf("scorer output missing language %q", lang)
		}
		score, err := normalizeScore(score)
		if err != nil {
			return scorer.ScoreTranslationsResponse{}, fmt.Errorf("language %q: %w", lang, err)
		}
		scores[lang] = score
	}

	var sum float64
	for _, score := range scores {
		sum += score
	}

	return scorer.ScoreTranslationsResponse{
		Scores:        scores,
		CombinedScore: sum / float64(len(scores)),
	}, nil
}

// normalizeScore maps a raw model score onto [0, 1]. Some models answer on
// a 0-100 scale despite the prompt; those are divided down rather than
// rejected.
func normalizeScore(score float64) (float64, error) {
	if score > 1 && score <= 100 {
		score = score / 100
	}
	if score < 0 || score > 1 {
		return 0, fmt.Errorf("score %v outside [0, 1]", score)
	}
	return score, nil
}
