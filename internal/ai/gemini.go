// README: Gemini-backed fleet narrative generation.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fleetreport/internal/modules/analytics"
)

const geminiModel = "gemini-2.0-flash"

var ErrNoSummary = errors.New("no fleet summary to narrate")

// GeminiNarrator implements Narrator using Google's Gemini models.
type GeminiNarrator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiNarrator creates the Gemini client. apiKey comes from GEMINI_API_KEY.
func NewGeminiNarrator(ctx context.Context, apiKey string) (*GeminiNarrator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	return &GeminiNarrator{client: client, model: model}, nil
}

func (n *GeminiNarrator) Close() {
	n.client.Close()
}

func (n *GeminiNarrator) Narrate(ctx context.Context, summary *analytics.FleetSummary) (*Narrative, error) {
	if summary == nil {
		return nil, ErrNoSummary
	}
	prompt, err := buildPrompt(summary)
	if err != nil {
		return nil, err
	}

	resp, err := n.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return parseNarrative(text.String())
}

// buildPrompt embeds the summary as JSON so the model sees the exact figures.
func buildPrompt(summary *analytics.FleetSummary) (string, error) {
	body, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	return fmt.Sprintf(`Role: You write the weekly operations briefing for a ride fleet.

Below is the fleet summary as JSON. Amounts are in the fleet's billing currency.
%s

RULES:
1. Use ONLY the figures above. Never invent, round differently or recompute a number.
2. Mention the cash vs non-cash split, the billed total, how many drivers run more than one vehicle,
   the driver with most trips and the highest earning driver (by name).
3. If the two top drivers are the same person, say so once.
4. Keep it short: one headline sentence and at most 5 highlights.

Respond with JSON only:
{"headline": "<one sentence>", "highlights": ["<short point>", "..."]}`, body), nil
}

func parseNarrative(raw string) (*Narrative, error) {
	cleaned := cleanJSONString(raw)
	var out Narrative
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleaned)
	}
	if strings.TrimSpace(out.Headline) == "" {
		return nil, fmt.Errorf("gemini: empty headline (raw: %s)", cleaned)
	}
	out.Model = geminiModel
	return &out, nil
}

func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
