package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/cricpix/internal/domain"
	"github.com/pitchside/cricpix/internal/session"
)

func successResponse(text string, images ...domain.ImageResult) *domain.QueryResponse {
	return &domain.QueryResponse{
		Success:       true,
		ResponseText:  text,
		SimilarImages: images,
	}
}

func testImage(url string, score float64) domain.ImageResult {
	return domain.ImageResult{
		Metadata:        map[string]any{"image_url": url, "document_id": "doc-1"},
		SimilarityScore: score,
	}
}

func TestPipeline_EmptyQueryIsNoOp(t *testing.T) {
	state := session.New(0.4)
	pipeline := NewPipeline(state)

	assert.False(t, pipeline.Start(""))
	assert.False(t, pipeline.Start("   \t  "))
	assert.Equal(t, PhaseIdle, pipeline.Phase())
	assert.Empty(t, state.History(), "rejected input must not add turns")
}

func TestPipeline_TrimsQuery(t *testing.T) {
	state := session.New(0.4)
	pipeline := NewPipeline(state)

	require.True(t, pipeline.Start("  kohli batting  "))
	assert.Equal(t, "kohli batting", pipeline.Query())
	assert.Equal(t, "kohli batting", state.CurrentQuery())

	history := state.History()
	require.Len(t, history, 1)
	assert.Equal(t, session.RoleUser, history[0].Role)
	assert.Equal(t, "kohli batting", history[0].Content)
}

func TestPipeline_PrimarySuccessWithImages(t *testing.T) {
	state := session.New(0.4)
	pipeline := NewPipeline(state)
	require.True(t, pipeline.Start("kohli batting"))

	resp := successResponse("Here are 2 images of Kohli batting",
		testImage("http://img/a.jpg", 0.9), testImage("http://img/b.jpg", 0.8))
	step := pipeline.HandlePrimary(resp, nil)

	assert.False(t, step.IssueFallback, "results present, no fallback")
	require.NotNil(t, step.Message)
	assert.Len(t, step.Message.Images, 2)
	assert.Equal(t, PhaseDone, pipeline.Phase())

	// Exactly one user turn and one assistant turn.
	history := state.History()
	require.Len(t, history, 2)
	assert.Equal(t, session.RoleUser, history[0].Role)
	assert.Equal(t, session.RoleAssistant, history[1].Role)
	assert.Equal(t, 2, history[1].ImageCount)
}

func TestPipeline_FallbackGate(t *testing.T) {
	tests := []struct {
		name     string
		resp     *domain.QueryResponse
		expected bool
	}{
		{
			name:     "zero images, plain prose",
			resp:     successResponse("I could not find anything relevant."),
			expected: true,
		},
		{
			name:     "images present",
			resp:     successResponse("Here you go", testImage("http://img/a.jpg", 0.9)),
			expected: false,
		},
		{
			name:     "explicit no-match answer",
			resp:     successResponse("No cricket images matching your query were found."),
			expected: false,
		},
		{
			name:     "tabular answer",
			resp:     successResponse("| Player | Runs |\n| Kohli | 82 |"),
			expected: false,
		},
		{
			name:     "counting answer",
			resp:     successResponse("There are 3 images"),
			expected: false,
		},
		{
			name:     "failed response",
			resp:     &domain.QueryResponse{Success: false, Message: "boom"},
			expected: false,
		},
		{
			name:     "nil response",
			resp:     nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldFallback(tt.resp))
		})
	}
}

func TestPipeline_FallbackFiresAndSucceeds(t *testing.T) {
	state := session.New(0.4)
	pipeline := NewPipeline(state)
	require.True(t, pipeline.Start("nonexistent player xyz"))

	step := pipeline.HandlePrimary(successResponse("Nothing obviously relevant."), nil)
	require.True(t, step.IssueFallback)
	require.Len(t, step.Banners, 1)
	assert.Equal(t, BannerInfo, step.Banners[0].Kind)
	assert.Equal(t, PhaseAwaitingFallback, pipeline.Phase())

	fallback := successResponse("similar", testImage("http://img/c.jpg", 0.5))
	fallbackStep := pipeline.HandleFallback(fallback, nil)

	require.Len(t, fallbackStep.Banners, 1)
	assert.Equal(t, BannerSuccess, fallbackStep.Banners[0].Kind)
	require.NotNil(t, fallbackStep.Message)
	assert.True(t, fallbackStep.Message.UsedSimilarity)
	assert.Len(t, fallbackStep.Message.Images, 1)
	assert.Equal(t, PhaseDone, pipeline.Phase())

	// One user turn plus two assistant turns (primary + fallback).
	history := state.History()
	require.Len(t, history, 3)
	assert.Equal(t, session.RoleAssistant, history[2].Role)
	assert.True(t, history[2].UsedSimilarity)
}

func TestPipeline_FallbackEmptyResult(t *testing.T) {
	state := session.New(0.4)
	pipeline := NewPipeline(state)
	require.True(t, pipeline.Start("nonexistent player xyz"))

	step := pipeline.HandlePrimary(successResponse("Nothing obviously relevant."), nil)
	require.True(t, step.IssueFallback)

	fallbackStep := pipeline.HandleFallback(successResponse("still nothing"), nil)
	require.Len(t, fallbackStep.Banners, 1)
	assert.Equal(t, BannerInfo, fallbackStep.Banners[0].Kind)
	assert.Contains(t, fallbackStep.Banners[0].Text, "different search term")
	assert.Nil(t, fallbackStep.Message)
	assert.Equal(t, PhaseDone, pipeline.Phase())

	// No assistant turn for an empty fallback: one user, one primary assistant.
	assert.Len(t, state.History(), 2)
}

func TestPipeline_FallbackTransportError(t *testing.T) {
	state := session.New(0.4)
	pipeline := NewPipeline(state)
	require.True(t, pipeline.Start("nonexistent player xyz"))
	pipeline.HandlePrimary(successResponse("Nothing obviously relevant."), nil)

	step := pipeline.HandleFallback(nil, errors.New("connection refused"))
	require.Len(t, step.Banners, 1)
	assert.Equal(t, BannerError, step.Banners[0].Kind)
	assert.Equal(t, PhaseDone, pipeline.Phase(), "fallback is never retried")
}

func TestPipeline_PrimaryTransportError(t *testing.T) {
	state := session.New(0.4)
	pipeline := NewPipeline(state)
	require.True(t, pipeline.Start("kohli batting"))

	step := pipeline.HandlePrimary(nil, errors.New("connection refused"))
	require.Len(t, step.Banners, 1)
	assert.Equal(t, BannerError, step.Banners[0].Kind)
	assert.False(t, step.IssueFallback)
	assert.Equal(t, PhaseFailed, pipeline.Phase())

	// User turn only; the failure produced no assistant turn.
	assert.Len(t, state.History(), 1)
}

func TestPipeline_PrimaryApplicationError(t *testing.T) {
	state := session.New(0.4)
	pipeline := NewPipeline(state)
	require.True(t, pipeline.Start("kohli batting"))

	step := pipeline.HandlePrimary(&domain.QueryResponse{Success: false, Message: "Please log in to continue"}, nil)
	require.Len(t, step.Banners, 1)
	assert.Equal(t, "Please log in to continue", step.Banners[0].Text)

	// Missing message falls back to generic text.
	pipeline2 := NewPipeline(session.New(0.4))
	require.True(t, pipeline2.Start("kohli batting"))
	step2 := pipeline2.HandlePrimary(&domain.QueryResponse{Success: false}, nil)
	assert.Contains(t, step2.Banners[0].Text, "error occurred")
}

func TestPipeline_StaleResponsesDropped(t *testing.T) {
	state := session.New(0.4)
	pipeline := NewPipeline(state)

	// Responses arriving in the wrong phase produce empty steps.
	assert.Equal(t, Step{}, pipeline.HandlePrimary(successResponse("x"), nil))
	assert.Equal(t, Step{}, pipeline.HandleFallback(successResponse("x"), nil))

	require.True(t, pipeline.Start("kohli batting"))
	pipeline.HandlePrimary(successResponse("ok", testImage("http://img/a.jpg", 0.9)), nil)

	// Done pipeline ignores further responses.
	assert.Equal(t, Step{}, pipeline.HandlePrimary(successResponse("late"), nil))
	assert.Equal(t, Step{}, pipeline.HandleFallback(successResponse("late"), nil))
}
