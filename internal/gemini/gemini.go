// Package gemini wraps the Gemini text and image models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrProviderCall marks any failure talking to Gemini.
	ErrProviderCall = errors.New("gemini provider call failed")
	// ErrNoImage is returned when the image model answered without image data.
	ErrNoImage = errors.New("no image in response")
)

// Image models only answer when IMAGE is among the requested modalities.
var imageModalities = []string{"TEXT", "IMAGE"}

// contentModel is the part of *genai.Models the client needs.
type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Options struct {
	TextModel  string
	ImageModel string
}

type GeminiClient struct {
	models     contentModel
	textModel  string
	imageModel string
	textConfig *genai.GenerateContentConfig
	imgConfig  *genai.GenerateContentConfig
}

func NewGeminiClient(ctx context.Context, apiKey string, opts Options) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGeminiClient(client.Models, opts), nil
}

func newGeminiClient(models contentModel, opts Options) *GeminiClient {
	return &GeminiClient{
		models:     models,
		textModel:  opts.TextModel,
		imageModel: opts.ImageModel,
		textConfig: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.7),
			TopP:            genai.Ptr[float32](0.95),
			MaxOutputTokens: 2048,
		},
		imgConfig: &genai.GenerateContentConfig{
			ResponseModalities: imageModalities,
		},
	}
}

// GenerateText returns the concatenated text parts of the first candidate.
// An empty string with a nil error means the model legitimately said nothing.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	parts, err := g.generate(ctx, g.textModel, prompt, g.textConfig)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, part := range parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// GenerateImage returns the bytes of the first inline image in the response.
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	parts, err := g.generate(ctx, g.imageModel, prompt, g.imgConfig)
	if err != nil {
		return nil, err
	}

	for _, part := range parts {
		if part == nil || part.InlineData == nil {
			continue
		}
		blob := part.InlineData
		if strings.HasPrefix(blob.MIMEType, "image/") && len(blob.Data) > 0 {
			return blob.Data, nil
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrProviderCall, ErrNoImage)
}

func (g *GeminiClient) generate(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) ([]*genai.Part, error) {
	resp, err := g.models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate content: %w", ErrProviderCall, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no content generated", ErrProviderCall)
	}

	return resp.Candidates[0].Content.Parts, nil
}
