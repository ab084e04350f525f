// Package gemini implements the artwork, narrative and oracle ports on the
// Google Gemini API.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/ports"
)

// Client implements ports.ArtworkGenerator, ports.Interpreter and ports.Oracle.
type Client struct {
	client     *genai.Client
	textModel  string
	imageModel string
	logger     *slog.Logger
}

func NewClient(ctx context.Context, apiKey, textModel, imageModel string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
		logger:     logger,
	}, nil
}

// GenerateArtwork renders one card as a portrait image and returns it as a
// base64 data URI.
func (c *Client) GenerateArtwork(ctx context.Context, in ports.ArtworkInput) (string, error) {
	prompt := fmt.Sprintf(
		"A mystical occult illustration of the card %q. Imagery: %s. Art direction: %s. "+
			"Rich symbolic detail, dramatic lighting, full card composition. "+
			"No humans posing for camera, no text, no letters, no watermarks. Preserve the esoteric symbolism.",
		in.CardName, in.VisualHints, in.StyleDescriptor)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel, contents, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: "9:16",
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty image response", domain.ErrUpstreamLLM)
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
		}
	}

	return "", fmt.Errorf("%w: no image data in response", domain.ErrUpstreamLLM)
}

func (c *Client) Interpret(ctx context.Context, in ports.NarrativeInput) (ports.NarrativeOutput, error) {
	content, err := c.generateText(ctx, narrativeSystemPrompt(in.Lang, len(in.Cards)), narrativeUserPrompt(in), true)
	if err != nil {
		return ports.NarrativeOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	var out ports.NarrativeOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		// One repair attempt before giving up on this reading.
		c.logger.WarnContext(ctx, "gemini returned invalid JSON, retrying", "error", err)
		content, err = c.generateText(ctx, narrativeSystemPrompt(in.Lang, len(in.Cards)),
			"Your previous answer was not valid JSON:\n"+content+"\nReturn ONLY the corrected JSON object.", true)
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
	out.Model = c.textModel

	return out, nil
}

// Ask answers one oracle question in the requested voice.
func (c *Client) Ask(ctx context.Context, in ports.OracleInput) (string, error) {
	answer, err := c.generateText(ctx, oracleSystemPrompt(in.Tone, in.Lang), in.Question, false)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}
	return answer, nil
}

func (c *Client) generateText(ctx context.Context, system, user string, wantJSON bool) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	if wantJSON {
		cfg.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{
		genai.NewContentFromText(user, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, contents, cfg)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty text response")
	}

	return strings.TrimSpace(text), nil
}

var langNames = map[string]string{
	"en": "English",
	"ru": "Russian",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"uk": "Ukrainian",
}

func langInstruction(lang string) string {
	if lang == "" || lang == "en" {
		return ""
	}
	name, ok := langNames[lang]
	if !ok {
		name = lang
	}
	return fmt.Sprintf(" Respond entirely in %s.", name)
}

func narrativeSystemPrompt(lang string, n int) string {
	return fmt.Sprintf(
		"You are a mystic reader interpreting a ritual card spread in an ornate, evocative voice. "+
			"Stay in character. Never provide medical, legal, or financial advice. "+
			"Never guarantee outcomes.%s "+
			"Respond with a JSON object: {\"outcome\": \"<overall narrative>\", \"cards\": [<%d strings, one per card in order>]}.",
		langInstruction(lang), n)
}

func narrativeUserPrompt(in ports.NarrativeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ritual category: %s\nReading: %s\n\nCards drawn:\n", in.Category, in.ReadingTitle)
	for _, card := range in.Cards {
		fmt.Fprintf(&b, "  Position %d: %s (%s)\n", card.Position, card.Name, card.Description)
	}
	if in.Spell != "" {
		fmt.Fprintf(&b, "\nThe querent's intent: %q\n", in.Spell)
	}
	if in.Outcome != "" {
		fmt.Fprintf(&b, "The desired outcome: %q\n", in.Outcome)
	}
	return b.String()
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
