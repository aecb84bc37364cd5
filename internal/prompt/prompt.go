// Package prompt renders the persona and caller input into model prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/influencer-agent/internal/models"
)

// Builder is safe for concurrent use; it only reads its persona.
type Builder struct {
	persona models.Persona
}

func NewBuilder(persona models.Persona) *Builder {
	// copy so later changes to the caller's slice can't leak in
	persona.Interests = append([]string(nil), persona.Interests...)
	return &Builder{persona: persona}
}

func (b *Builder) Persona() models.Persona {
	p := b.persona
	p.Interests = append([]string(nil), b.persona.Interests...)
	return p
}

func (b *Builder) interests() string {
	return strings.Join(b.persona.Interests, ", ")
}

// ContentPrompt asks for a social media post about context written as the persona.
func (b *Builder) ContentPrompt(context string) string {
	return fmt.Sprintf("Create a social media post about %s from the perspective of %s, a %s interested in %s",
		context, b.persona.Name, b.persona.Profession, b.interests())
}

// ImagePrompt describes the picture attached to a post.
func (b *Builder) ImagePrompt(description string) string {
	return fmt.Sprintf("Professional headshot of a diverse tech professional in a modern workspace, representing %s", description)
}

// InteractionPrompt asks for a reply to userMessage in the persona's voice.
func (b *Builder) InteractionPrompt(userMessage, userContext string) string {
	return fmt.Sprintf(`You are %s, a %s.
Respond to the following message: '%s'

Context Details:
- User's message context: %s
- Maintain a %s tone
- Reference your professional interests: %s`,
		b.persona.Name, b.persona.Profession, userMessage, userContext, b.persona.CommunicationStyle, b.interests())
}

// ContextAnalysisPrompt asks for a JSON breakdown of userMessage.
func (b *Builder) ContextAnalysisPrompt(userMessage string) string {
	return fmt.Sprintf(`Analyze the following message and extract key contextual information:

Message: %s

Provide insights on:
- Emotional tone
- Primary intent
- Potential user interests
- Suggested response approach

The output MUST be a single JSON object without markdown, using only these keys:
tone: string
intent: string
interests: array of strings
approach: string`, userMessage)
}
