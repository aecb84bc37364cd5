package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BerylCAtieno/influencer-agent/internal/gemini"
	"github.com/BerylCAtieno/influencer-agent/internal/influencer"
	"github.com/BerylCAtieno/influencer-agent/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeInfluencer struct {
	post        models.PostResult
	interaction models.InteractionResult
	interactErr error
	panicOnPost bool

	gotContext     string
	gotUserMessage string
	gotUserContext string
}

func (f *fakeInfluencer) GeneratePost(ctx context.Context, postContext string) models.PostResult {
	if f.panicOnPost {
		panic("boom")
	}
	f.gotContext = postContext
	return f.post
}

func (f *fakeInfluencer) Interact(ctx context.Context, userMessage, userContext string) (models.InteractionResult, error) {
	f.gotUserMessage = userMessage
	f.gotUserContext = userContext
	return f.interaction, f.interactErr
}

func (f *fakeInfluencer) Persona() models.Persona {
	return models.DefaultPersona()
}

func setupRouter(inf Influencer) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(NewHandler(inf, logger), logger)
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

func TestHealth(t *testing.T) {
	w := performRequest(setupRouter(&fakeInfluencer{}), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestServePersona(t *testing.T) {
	w := performRequest(setupRouter(&fakeInfluencer{}), http.MethodGet, "/persona", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var persona models.Persona
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &persona))
	assert.Equal(t, "Nova Anderson", persona.Name)
	assert.Len(t, persona.Interests, 4)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, key := range []string{"name", "age", "profession", "interests", "communicationStyle"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "communication_style")
}

func TestGeneratePost_Success(t *testing.T) {
	inf := &fakeInfluencer{post: models.PostResult{
		Content: strPtr("Hello world"), ImageGenerated: true, TweetPosted: true, TweetID: "p1",
	}}

	w := performRequest(setupRouter(inf), http.MethodPost, "/generate-post", map[string]string{"context": "AI ethics"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AI ethics", inf.gotContext)
	assert.JSONEq(t, `{"content":"Hello world","imageGenerated":true,"tweetPosted":true}`, w.Body.String())
}

func TestGeneratePost_NoResult(t *testing.T) {
	w := performRequest(setupRouter(&fakeInfluencer{}), http.MethodPost, "/generate-post", map[string]string{"context": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":null,"imageGenerated":false,"tweetPosted":false}`, w.Body.String())
}

func TestGeneratePost_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"empty body", nil},
		{"missing context", map[string]string{"topic": "x"}},
		{"malformed json", `{"context":`},
		{"wrong type", map[string]int{"context": 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inf := &fakeInfluencer{}
			w := performRequest(setupRouter(inf), http.MethodPost, "/generate-post", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			assert.Empty(t, inf.gotContext)
		})
	}
}

func TestGeneratePost_PanicIs500(t *testing.T) {
	w := performRequest(setupRouter(&fakeInfluencer{panicOnPost: true}), http.MethodPost, "/generate-post", map[string]string{"context": "x"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Something went wrong!"}`, w.Body.String())
}

func TestInteract_Success(t *testing.T) {
	inf := &fakeInfluencer{interaction: models.InteractionResult{
		Response:        strPtr("Thanks!"),
		ContextAnalysis: models.ContextAnalysis{"tone": "positive", "intent": "praise", "interests": []any{}, "approach": "thank"},
	}}

	w := performRequest(setupRouter(inf), http.MethodPost, "/interact",
		map[string]string{"userMessage": "I love this!", "userContext": "launch thread"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "I love this!", inf.gotUserMessage)
	assert.Equal(t, "launch thread", inf.gotUserContext)
	assert.JSONEq(t, `{"response":"Thanks!","contextAnalysis":{"tone":"positive","intent":"praise","interests":[],"approach":"thank"}}`, w.Body.String())
}

func TestInteract_NullResult(t *testing.T) {
	w := performRequest(setupRouter(&fakeInfluencer{}), http.MethodPost, "/interact", map[string]string{"userMessage": "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":null,"contextAnalysis":null}`, w.Body.String())
}

func TestInteract_ParseFailureIs502(t *testing.T) {
	err := fmt.Errorf("%w: %w", influencer.ErrContextAnalysis, gemini.ErrParse)
	w := performRequest(setupRouter(&fakeInfluencer{interactErr: err}), http.MethodPost, "/interact", map[string]string{"userMessage": "I love this!"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Context analysis failed", resp.Error)
}

func TestInteract_OtherErrorIs500(t *testing.T) {
	w := performRequest(setupRouter(&fakeInfluencer{interactErr: errors.New("boom")}), http.MethodPost, "/interact", map[string]string{"userMessage": "x"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Interaction failed"}`, w.Body.String())
}

func TestInteract_MissingMessage(t *testing.T) {
	w := performRequest(setupRouter(&fakeInfluencer{}), http.MethodPost, "/interact", map[string]string{"userContext": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestID_Propagates(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	setupRouter(&fakeInfluencer{}).ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORS_Preflight(t *testing.T) {
	req, _ := http.NewRequest(http.MethodOptions, "/generate-post", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	setupRouter(&fakeInfluencer{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
