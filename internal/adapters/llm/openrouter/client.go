// Package openrouter implements the narrative and oracle ports via the
// OpenRouter OpenAI-compatible chat API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/ports"
)

// Client implements ports.Interpreter and ports.Oracle.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Interpret(ctx context.Context, in ports.NarrativeInput) (ports.NarrativeOutput, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		out, err := c.interpretWithModel(ctx, in, model)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}

	return ports.NarrativeOutput{}, lastErr
}

func (c *Client) interpretWithModel(ctx context.Context, in ports.NarrativeInput, model string) (ports.NarrativeOutput, error) {
	systemPrompt := buildSystemPrompt(in.Lang, len(in.Cards))
	userPrompt := buildUserPrompt(in)

	content, err := c.callLLM(ctx, model, systemPrompt, userPrompt)
	if err != nil {
		return ports.NarrativeOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	var out ports.NarrativeOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		c.logger.WarnContext(ctx, "LLM returned invalid JSON, retrying", "model", model, "error", err)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content, len(in.Cards)))
		if err != nil {
			return ports.NarrativeOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
		}
		if err := json.Unmarshal([]byte(content), &out); err != nil {
			return ports.NarrativeOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
		}
	}

	if out.Outcome == "" {
		return ports.NarrativeOutput{}, fmt.Errorf("%w: empty outcome", domain.ErrInvalidLLMJSON)
	}
	out.Model = model

	return out, nil
}

// Ask answers one oracle question in the requested voice.
func (c *Client) Ask(ctx context.Context, in ports.OracleInput) (string, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		answer, err := c.callLLM(ctx, model, oracleSystemPrompt(in.Tone, in.Lang), in.Question)
		if err == nil {
			return answer, nil
		}
		lastErr = fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}
	return "", lastErr
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// langNames maps common BCP 47 codes to human-readable language names.
var langNames = map[string]string{
	"en": "English",
	"ru": "Russian",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"uk": "Ukrainian",
	"pl": "Polish",
}

func langInstruction(lang string) string {
	if lang == "" || lang == "en" {
		return ""
	}
	name, ok := langNames[lang]
	if !ok {
		name = lang
	}
	return fmt.Sprintf("\n- Respond entirely in %s.", name)
}

func buildSystemPrompt(lang string, n int) string {
	return fmt.Sprintf(`You are a mystic reader interpreting a ritual card spread in an ornate, evocative voice.

Rules:
- Stay in character: mystical, atmospheric, never clinical.
- Never provide medical, legal, or financial advice.
- Never predict specific disasters or guarantee outcomes.
- Weave the querent's stated intent into the reading when given.%s

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
{
  "outcome": "<overall reading narrative>",
  "cards": [%s]
}
The "cards" array must contain exactly %d strings, one interpretation per card in the order given.`,
		langInstruction(lang), cardSlots(n), n)
}

func cardSlots(n int) string {
	slots := make([]string, n)
	for i := range n {
		slots[i] = fmt.Sprintf("\"<card %d interpretation>\"", i+1)
	}
	return strings.Join(slots, ", ")
}

func buildUserPrompt(in ports.NarrativeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ritual category: %s\nReading: %s\n\nCards drawn:\n", in.Category, in.ReadingTitle)

	for _, card := range in.Cards {
		fmt.Fprintf(&b, "  Position %d: %s\n", card.Position, card.Name)
		fmt.Fprintf(&b, "    Meaning: %s\n", card.Description)
	}

	if in.Spell != "" {
		fmt.Fprintf(&b, "\nThe querent's intent: %q\n", in.Spell)
	}
	if in.Outcome != "" {
		fmt.Fprintf(&b, "The desired outcome: %q\n", in.Outcome)
	}

	b.WriteString("\nProvide the reading as a single JSON object.")
	return b.String()
}

func retryPrompt(badJSON string, n int) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
{
  "outcome": "<overall reading narrative>",
  "cards": [%s]
}`, badJSON, cardSlots(n))
}

func oracleSystemPrompt(tone, lang string) string {
	voice := map[string]string{
		"CELESTIAL": "seraphic and wise",
		"VOID":      "binary, cryptic and digital",
		"CHTHONIC":  "gravelly, ancient and dark",
	}[tone]
	if voice == "" {
		voice = "seraphic and wise"
	}
	return fmt.Sprintf("You are an oracle. Voice: %s. Answer briefly and mystically, at most 15 words.%s",
		voice, langInstruction(lang))
}
