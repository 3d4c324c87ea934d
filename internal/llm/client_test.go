package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, genai.Text(p))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content, FinishReason: genai.FinishReasonStop}},
	}
}

func TestExtractTextFromResponse(t *testing.T) {
	text, err := extractTextFromResponse(textResponse("Hello ", "world"))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestExtractTextFromResponse_EmptyContentIsNotAnError(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}}}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractTextFromResponse_Safety(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}

	_, err := extractTextFromResponse(resp)
	assert.True(t, IsPolicyRejection(err))
}

func TestExtractTextFromResponse_NoCandidates(t *testing.T) {
	_, err := extractTextFromResponse(&genai.GenerateContentResponse{})
	var te *TransportError
	assert.ErrorAs(t, err, &te)

	blocked := &genai.GenerateContentResponse{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}
	_, err = extractTextFromResponse(blocked)
	assert.True(t, IsPolicyRejection(err))
}

func TestClassifyError(t *testing.T) {
	blocked := &genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}
	err := classifyError(fmt.Errorf("wrapped: %w", blocked))
	var pe *PolicyError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Reason, "prompt blocked")

	network := errors.New("connection reset")
	err = classifyError(network)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, network)
	assert.Equal(t, "connection reset", Detail(err))
	assert.False(t, IsPolicyRejection(err))
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "other"}, "key")
	assert.Error(t, err)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.Error(t, err)
}

type stubClient struct {
	calls int
	reply string
	err   error
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubClient) GetModel(ModelTier) string { return "stub" }

func (s *stubClient) Close() error { return nil }

func TestRateLimited_Delegates(t *testing.T) {
	stub := &stubClient{reply: "ok"}
	limited := NewRateLimited(stub, 100, 0)

	text, err := limited.GenerateContent(context.Background(), "p", TierLite)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "stub", limited.GetModel(TierLite))
}

func TestRateLimited_CancelledContext(t *testing.T) {
	stub := &stubClient{reply: "ok"}
	limited := NewRateLimited(stub, 0.001, 1)

	_, err := limited.GenerateContent(context.Background(), "p", TierLite)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = limited.GenerateContent(ctx, "p", TierLite)
	require.Error(t, err)
	assert.Equal(t, 1, stub.calls)
}
