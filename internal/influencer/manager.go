// Package influencer runs the generate-and-post and interact flows for a persona.
package influencer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BerylCAtieno/influencer-agent/internal/gemini"
	"github.com/BerylCAtieno/influencer-agent/internal/models"
	"github.com/BerylCAtieno/influencer-agent/internal/prompt"
)

// DefaultCallTimeout bounds each outbound provider call.
const DefaultCallTimeout = 30 * time.Second

// ErrContextAnalysis is returned by Interact when the analysis reply could not
// be decoded. It wraps gemini.ErrParse.
var ErrContextAnalysis = errors.New("context analysis failed")

// ContentGenerator produces text and images from prompts.
type ContentGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// Poster publishes a status update and returns its ID.
type Poster interface {
	PostUpdate(ctx context.Context, text string, image []byte) (string, error)
}

type Manager struct {
	prompts     *prompt.Builder
	content     ContentGenerator
	poster      Poster
	callTimeout time.Duration
	logger      *slog.Logger
}

type Option func(*Manager)

func WithCallTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.callTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func NewManager(prompts *prompt.Builder, content ContentGenerator, poster Poster, opts ...Option) *Manager {
	m := &Manager{
		prompts:     prompts,
		content:     content,
		poster:      poster,
		callTimeout: DefaultCallTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Persona() models.Persona {
	return m.prompts.Persona()
}

// GeneratePost writes a post about postContext, generates an image for it and
// publishes both. Provider failures are logged and reported through the
// result flags; nothing is posted without text. Content is nil only when the
// text call failed.
func (m *Manager) GeneratePost(ctx context.Context, postContext string) models.PostResult {
	var result models.PostResult

	content, err := m.generateText(ctx, m.prompts.ContentPrompt(postContext))
	if err != nil {
		m.logger.Error("Manager.GeneratePost: content generation failed", "error", err)
	} else {
		result.Content = &content
	}

	image, err := m.generateImage(ctx, m.prompts.ImagePrompt(postContext))
	if err != nil {
		m.logger.Error("Manager.GeneratePost: image generation failed", "error", err)
		image = nil
	}
	result.ImageGenerated = len(image) > 0

	if content == "" {
		m.logger.Warn("Manager.GeneratePost: no content, skipping post")
		return result
	}

	tweetID, err := m.postUpdate(ctx, content, image)
	if err != nil {
		m.logger.Error("Manager.GeneratePost: posting failed", "error", err, "with_image", result.ImageGenerated)
		return result
	}

	result.TweetPosted = true
	result.TweetID = tweetID
	m.logger.Info("Manager.GeneratePost: posted", "tweet_id", tweetID, "with_image", result.ImageGenerated)
	return result
}

// Interact analyses userMessage and replies to it in the persona's voice.
// The only error it returns wraps ErrContextAnalysis; provider failures leave
// the corresponding result field nil.
func (m *Manager) Interact(ctx context.Context, userMessage, userContext string) (models.InteractionResult, error) {
	var result models.InteractionResult

	analysisText, err := m.generateText(ctx, m.prompts.ContextAnalysisPrompt(userMessage))
	if err != nil {
		m.logger.Error("Manager.Interact: context analysis generation failed", "error", err)
	} else {
		analysis, err := gemini.ParseStructured(analysisText)
		if err != nil {
			m.logger.Error("Manager.Interact: context analysis did not parse", "error", err, "raw", analysisText)
			return models.InteractionResult{}, fmt.Errorf("%w: %w", ErrContextAnalysis, err)
		}
		result.ContextAnalysis = analysis
	}

	reply, err := m.generateText(ctx, m.prompts.InteractionPrompt(userMessage, interactionContext(userContext, result.ContextAnalysis)))
	if err != nil {
		m.logger.Error("Manager.Interact: response generation failed", "error", err)
		return result, nil
	}
	result.Response = &reply
	return result, nil
}

// interactionContext joins the caller's context with the serialized analysis.
func interactionContext(userContext string, analysis models.ContextAnalysis) string {
	raw, err := json.Marshal(analysis)
	if err != nil {
		raw = []byte("null")
	}
	if userContext == "" {
		return string(raw)
	}
	return fmt.Sprintf("%s\n- Context analysis: %s", userContext, raw)
}

func (m *Manager) generateText(ctx context.Context, p string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()
	return m.content.GenerateText(ctx, p)
}

func (m *Manager) generateImage(ctx context.Context, p string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()
	return m.content.GenerateImage(ctx, p)
}

func (m *Manager) postUpdate(ctx context.Context, text string, image []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()
	return m.poster.PostUpdate(ctx, text, image)
}
