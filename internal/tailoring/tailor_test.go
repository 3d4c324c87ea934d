package tailoring

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/llm"
	"github.com/jonathan/application-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient is a mock implementation of llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	calls               int
	lastPrompt          string
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func reply(text string, err error) func(context.Context, string, llm.ModelTier) (string, error) {
	return func(context.Context, string, llm.ModelTier) (string, error) { return text, err }
}

var testJob = &types.Job{Title: "Frontend Developer", Company: "Acme GmbH", Notes: "requirements: React, teamwork"}

func TestTailor_UsesTrimmedResult(t *testing.T) {
	mock := &MockLLMClient{GenerateContentFunc: reply("  I built reusable React dashboards.\n", nil)}
	tailor := New(mock)

	got, err := tailor.Tailor(context.Background(), Field{Kind: FieldExperience, Text: "Built dashboards."}, testJob, keywords.NewSet("react"), types.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, "I built reusable React dashboards.", got)
	assert.Equal(t, 1, mock.calls)
}

func TestTailor_EmptyResultFallsBack(t *testing.T) {
	mock := &MockLLMClient{GenerateContentFunc: reply("", nil)}
	tailor := New(mock)

	got, err := tailor.Tailor(context.Background(), Field{Kind: FieldExperience, Text: "Built dashboards."}, testJob, keywords.Set{}, types.LocaleDE)
	require.NoError(t, err)
	assert.Equal(t, "Built dashboards.", got)
}

func TestTailor_WhitespaceResultFallsBack(t *testing.T) {
	mock := &MockLLMClient{GenerateContentFunc: reply("```\n\n```", nil)}
	tailor := New(mock)

	got, err := tailor.Tailor(context.Background(), Field{Kind: FieldEducation, Text: "Thesis on compilers."}, nil, keywords.Set{}, types.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, "Thesis on compilers.", got)
}

func TestTailor_ArtifactOnlyResultFallsBack(t *testing.T) {
	for _, answer := range []string{"[Ihre überarbeitete Beschreibung]", "** [Name] **", "__[x]__"} {
		mock := &MockLLMClient{GenerateContentFunc: reply(answer, nil)}
		res, err := New(mock).TailorField(context.Background(), Field{Kind: FieldExperience, Text: "Built UI components."}, testJob, keywords.Set{}, types.LocaleDE)
		require.NoError(t, err)
		assert.Equal(t, "Built UI components.", res.Text, answer)
		assert.True(t, res.Fallback, answer)
		assert.True(t, res.Called, answer)
	}
}

func TestTailor_CleansPlaceholdersFromResult(t *testing.T) {
	mock := &MockLLMClient{GenerateContentFunc: reply("Built **React** components for [Firma].", nil)}

	got, err := New(mock).Tailor(context.Background(), Field{Kind: FieldExperience, Text: "Built UI components."}, testJob, keywords.Set{}, types.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, "Built React components for .", got)
}

func TestTailor_EmptyOriginalSkipsCall(t *testing.T) {
	mock := &MockLLMClient{GenerateContentFunc: reply("should not be used", nil)}
	tailor := New(mock)

	for _, text := range []string{"", "   \n"} {
		got, err := tailor.Tailor(context.Background(), Field{Kind: FieldExperience, Text: text}, testJob, keywords.Set{}, types.LocaleEN)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Equal(t, 0, mock.calls)
}

func TestTailor_ErrorIsReported(t *testing.T) {
	policy := &llm.PolicyError{Reason: "blocked"}
	mock := &MockLLMClient{GenerateContentFunc: reply("", policy)}
	tailor := New(mock)

	got, err := tailor.Tailor(context.Background(), Field{Kind: FieldExperience, Index: 2, Text: "Built dashboards."}, testJob, keywords.Set{}, types.LocaleEN)
	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, llm.IsPolicyRejection(err))
	assert.Contains(t, err.Error(), "experience[2].description")

	transport := &llm.TransportError{Message: "timeout"}
	mock.GenerateContentFunc = reply("", transport)
	_, err = tailor.Tailor(context.Background(), Field{Kind: FieldExperience, Text: "x"}, testJob, keywords.Set{}, types.LocaleEN)
	assert.True(t, errors.Is(err, transport))
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(Field{Kind: FieldExperience, Text: "Built UI components."}, testJob, keywords.NewSet("teamwork", "react"), types.LocaleEN)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Built UI components.")
	assert.Contains(t, prompt, `"Frontend Developer" at Acme GmbH`)
	assert.Contains(t, prompt, "react, teamwork")
	assert.Contains(t, prompt, "600 characters")
	assert.Contains(t, prompt, "first-person")
	assert.NotContains(t, prompt, "{{.")

	german, err := BuildPrompt(Field{Kind: FieldEducation, Text: "Studium"}, testJob, keywords.Set{}, types.LocaleDE)
	require.NoError(t, err)
	assert.Contains(t, german, "Ich-Perspektive")
	assert.Contains(t, german, "Schlagwörtern, soweit das Original sie belegt: -")
}
