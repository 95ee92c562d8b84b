package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tubesync/internal/shared"
	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-2.5-flash"
	promptTitleLimit   = 20
)

// Describer writes the description of a playlist from its title and video titles.
type Describer interface {
	Describe(ctx context.Context, title string, videoTitles []string) (string, error)
}

// StaticDescriber returns the same text for every playlist.
type StaticDescriber string

func (s StaticDescriber) Describe(context.Context, string, []string) (string, error) {
	return string(s), nil
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiDescriber asks a Gemini model for a short description.
type GeminiDescriber struct {
	models contentGenerator
	model  string
}

// NewGeminiDescriber creates a [GeminiDescriber] using the Gemini API with apiKey.
//
// model defaults to gemini-2.5-flash.
func NewGeminiDescriber(ctx context.Context, apiKey, model string) (*GeminiDescriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key", shared.ErrMissingCredentials)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newGeminiDescriber(client.Models, model), nil
}

func newGeminiDescriber(models contentGenerator, model string) *GeminiDescriber {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiDescriber{models: models, model: model}
}

// Describe generates a two sentence description from the first 20 video titles.
func (g *GeminiDescriber) Describe(ctx context.Context, title string, videoTitles []string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(descriptionPrompt(title, videoTitles)), nil)
	if err != nil {
		return "", newTransportError("models.generateContent", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &TransportError{Op: "models.generateContent", Reason: "emptyResponse"}
	}
	return text, nil
}

func descriptionPrompt(title string, videoTitles []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have a YouTube playlist titled %q.\n", title)
	b.WriteString("It contains the following videos:\n")

	shown := videoTitles
	if len(shown) > promptTitleLimit {
		shown = shown[:promptTitleLimit]
	}
	for _, t := range shown {
		b.WriteString(t)
		b.WriteByte('\n')
	}
	if extra := len(videoTitles) - len(shown); extra > 0 {
		fmt.Fprintf(&b, "...and %d more.\n", extra)
	}

	b.WriteString("\nPlease write a catchy, SEO-friendly description for this playlist in 2 sentences. ")
	b.WriteString("Focus on the common themes found in the video titles.")
	return b.String()
}

// DescribeOrDefault calls d and returns fallback when d is nil, fails or produces nothing.
//
// The returned error is the describer's failure, reported for logging only.
func DescribeOrDefault(ctx context.Context, d Describer, fallback, title string, videoTitles []string) (string, error) {
	if d == nil {
		return fallback, nil
	}

	text, err := d.Describe(ctx, title, videoTitles)
	if err != nil || text == "" {
		return fallback, err
	}
	return text, nil
}
