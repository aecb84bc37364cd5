package models

// GenerationRequest is the body of POST /generate-post.
// Context is a pointer so a missing field can be told apart from an empty one.
type GenerationRequest struct {
	Context *string `json:"context" binding:"required"`
}

// InteractionRequest is the body of POST /interact.
type InteractionRequest struct {
	UserMessage *string `json:"userMessage" binding:"required"`
	UserContext string  `json:"userContext"`
}

// ContextAnalysis is whatever JSON object the model returned for a message.
type ContextAnalysis map[string]any

// PostResult is the outcome of the generate-and-post flow.
type PostResult struct {
	Content        *string `json:"content"`
	ImageGenerated bool    `json:"imageGenerated"`
	TweetPosted    bool    `json:"tweetPosted"`
	TweetID        string  `json:"-"`
}

// InteractionResult is the outcome of the interact flow.
type InteractionResult struct {
	Response        *string         `json:"response"`
	ContextAnalysis ContextAnalysis `json:"contextAnalysis"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
