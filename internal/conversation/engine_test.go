// internal/conversation/engine_test.go
package conversation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cinechat/internal/common/errors"
	"cinechat/internal/common/logger"
	"cinechat/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestEngine(t *testing.T) *Engine {
	return NewEngine(logger.NewTestLogger(t))
}

// answerAndConfirm drives a single-select step through the two-phase flow.
func answerAndConfirm(t *testing.T, e *Engine, s *Session, option string) {
	t.Helper()
	require.NoError(t, e.Answer(s, option))
	require.Equal(t, StateAwaitingConfirmation, s.State)
	require.NoError(t, e.Confirm(s))
}

// completeUpToTrailer walks a fresh session to the trailer step.
func completeUpToTrailer(t *testing.T, e *Engine, s *Session) {
	t.Helper()
	require.NoError(t, e.Answer(s, "Horror"))
	require.NoError(t, e.Confirm(s))
	answerAndConfirm(t, e, s, "1990s (1990-1999)")
	answerAndConfirm(t, e, s, "Any Language")
	answerAndConfirm(t, e, s, "Any Rating")
	answerAndConfirm(t, e, s, "Doesn't matter")
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr), "expected StandardError, got %T", err)
	assert.Equal(t, code, stdErr.Code)
}

// ==========================
// Session Lifecycle
// ==========================

func TestEngine_NewSession(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()

	assert.NotEmpty(t, s.ID)
	assert.NotEmpty(t, s.Generation)
	assert.Equal(t, StateAsking, s.State)
	assert.Equal(t, 0, s.StepIndex)

	require.Len(t, s.Messages, 1)
	assert.Equal(t, "bot", s.Messages[0].Type)
	assert.Contains(t, s.Messages[0].Content, "CineAI")

	step, ok := e.CurrentStep(s)
	require.True(t, ok)
	assert.Equal(t, "genres", step.ID)
}

// ==========================
// Genre Step
// ==========================

func TestEngine_GenreAccumulation(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()

	require.NoError(t, e.Answer(s, "Horror"))
	require.NoError(t, e.Answer(s, "Thriller"))

	// Step does not advance until confirmation.
	assert.Equal(t, 0, s.StepIndex)
	assert.Equal(t, StateAsking, s.State)
	assert.Equal(t, []string{"Horror", "Thriller"}, s.Prefs.Genres())
}

func TestEngine_GenreDuplicateIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()

	require.NoError(t, e.Answer(s, "Comedy"))
	require.NoError(t, e.Answer(s, "Comedy"))

	assert.Equal(t, []string{"Comedy"}, s.Prefs.Genres())
}

func TestEngine_ConfirmZeroGenresRejected(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()

	err := e.Confirm(s)
	assertCode(t, err, apperrors.ErrCodeGenresEmpty)

	// State unchanged, user is reprompted.
	assert.Equal(t, 0, s.StepIndex)
	assert.Equal(t, StateAsking, s.State)
	last := s.Messages[len(s.Messages)-1]
	assert.Equal(t, "Please select at least one genre to continue!", last.Content)
}

func TestEngine_ConfirmGenresAdvances(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()

	require.NoError(t, e.Answer(s, "Drama"))
	require.NoError(t, e.Confirm(s))

	assert.Equal(t, 1, s.StepIndex)
	assert.Equal(t, StateAsking, s.State)
	last := s.Messages[len(s.Messages)-1]
	assert.Contains(t, last.Content, "Drama selected!")
}

// ==========================
// Two-Phase Answer / Confirm
// ==========================

func TestEngine_SingleSelectTwoPhase(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	require.NoError(t, e.Answer(s, "Drama"))
	require.NoError(t, e.Confirm(s))

	require.NoError(t, e.Answer(s, "2010s (2010-2019)"))

	// Answer is parked, store untouched.
	assert.Equal(t, StateAwaitingConfirmation, s.State)
	assert.Equal(t, "2010s (2010-2019)", s.PendingAnswer)
	assert.Empty(t, s.Prefs.Snapshot().Decade)

	require.NoError(t, e.Confirm(s))

	assert.Equal(t, "2010s (2010-2019)", s.Prefs.Snapshot().Decade)
	assert.Empty(t, s.PendingAnswer)
	assert.Equal(t, 2, s.StepIndex)
	assert.Equal(t, StateAsking, s.State)
}

func TestEngine_AnswerWhileAwaitingConfirmationRejected(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	require.NoError(t, e.Answer(s, "Drama"))
	require.NoError(t, e.Confirm(s))
	require.NoError(t, e.Answer(s, "2010s (2010-2019)"))

	err := e.Answer(s, "2000s (2000-2009)")
	assertCode(t, err, apperrors.ErrCodeInvalidAnswer)
	assert.Equal(t, "2010s (2010-2019)", s.PendingAnswer)
}

func TestEngine_UnknownOptionRejected(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()

	err := e.Answer(s, "Mockumentary")
	assertCode(t, err, apperrors.ErrCodeInvalidAnswer)

	// Defensive rejection is a no-op.
	assert.Equal(t, 0, s.StepIndex)
	assert.Empty(t, s.Prefs.Genres())
}

// ==========================
// Trailer Step
// ==========================

func TestEngine_TrailerYesTriggersResolving(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	completeUpToTrailer(t, e, s)

	require.NoError(t, e.Answer(s, "Yes, show me the trailer!"))

	assert.Equal(t, "yes", s.Prefs.Snapshot().ShowTrailer)
	assert.Equal(t, StateResolving, s.State)
	assert.Equal(t, len(e.Steps()), s.StepIndex)

	last := s.Messages[len(s.Messages)-1]
	assert.Contains(t, last.Content, "analyze your preferences")
}

func TestEngine_TrailerNoNormalized(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	completeUpToTrailer(t, e, s)

	require.NoError(t, e.Answer(s, "No, just the movie details"))

	assert.Equal(t, "no", s.Prefs.Snapshot().ShowTrailer)
	assert.Equal(t, StateResolving, s.State)
}

// ==========================
// Back-Navigation
// ==========================

func TestEngine_BackToFirstEmptyField(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	require.NoError(t, e.Answer(s, "Action"))
	require.NoError(t, e.Confirm(s))
	answerAndConfirm(t, e, s, "2020s (2020-2025)")

	// Now on language (index 2); decade and genres are set, so the first
	// empty field is language itself.
	require.NoError(t, e.Back(s))
	assert.Equal(t, 2, s.StepIndex)
	assert.Equal(t, StateAsking, s.State)
}

func TestEngine_BackWithAllFieldsSetGoesToPrevious(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	completeUpToTrailer(t, e, s)

	// On the trailer step (index 5) with all editable fields set.
	require.NoError(t, e.Back(s))
	assert.Equal(t, 4, s.StepIndex)
}

func TestEngine_BackDiscardsPendingAnswer(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	require.NoError(t, e.Answer(s, "Action"))
	require.NoError(t, e.Confirm(s))
	require.NoError(t, e.Answer(s, "2020s (2020-2025)"))
	require.Equal(t, StateAwaitingConfirmation, s.State)

	require.NoError(t, e.Back(s))
	assert.Empty(t, s.PendingAnswer)
	assert.Equal(t, StateAsking, s.State)
}

// ==========================
// Reset
// ==========================

func TestEngine_ResetAlwaysLegal(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	completeUpToTrailer(t, e, s)
	require.NoError(t, e.Answer(s, "No, just the movie details"))
	require.Equal(t, StateResolving, s.State)

	oldGeneration := s.Generation
	e.Reset(s)

	assert.Equal(t, StateAsking, s.State)
	assert.Equal(t, 0, s.StepIndex)
	assert.Empty(t, s.Prefs.Genres())
	assert.NotEqual(t, oldGeneration, s.Generation)

	require.Len(t, s.Messages, 1)
	assert.Equal(t, "Welcome back! Ready for another great movie?", s.Messages[0].Content)
}

// ==========================
// Resolution Hand-Off
// ==========================

func TestEngine_ApplyResolution(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	completeUpToTrailer(t, e, s)
	require.NoError(t, e.Answer(s, "Yes, show me the trailer!"))

	result := &models.RecommendationResult{
		Title:       "Hereditary",
		Reason:      "A chilling pick.",
		SearchQuery: "Hereditary",
	}
	movie := &models.Movie{ID: 493922, Title: "Hereditary"}

	applied := e.ApplyResolution(s, s.Generation, result, movie, "https://www.youtube.com/embed/V6wWKNij_1M?rel=0&modestbranding=1&controls=1")
	require.True(t, applied)

	assert.Equal(t, StateCompleted, s.State)
	assert.Equal(t, result, s.Result)
	assert.Equal(t, movie, s.Movie)

	// Recommendation message, trailer message, completion line.
	n := len(s.Messages)
	require.GreaterOrEqual(t, n, 3)
	assert.Contains(t, s.Messages[n-3].Content, "**Hereditary**")
	assert.Equal(t, movie, s.Messages[n-3].Movie)
	assert.NotEmpty(t, s.Messages[n-2].TrailerURL)
	assert.Contains(t, s.Messages[n-1].Content, "Enjoy your movie night")
}

func TestEngine_ApplyResolution_NoTrailerFound(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	completeUpToTrailer(t, e, s)
	require.NoError(t, e.Answer(s, "Yes, show me the trailer!"))

	result := &models.RecommendationResult{Title: "Ringu", Reason: "r", SearchQuery: "Ringu"}
	applied := e.ApplyResolution(s, s.Generation, result, nil, "")
	require.True(t, applied)

	n := len(s.Messages)
	assert.Contains(t, s.Messages[n-2].Content, "couldn't find a trailer")
}

func TestEngine_ApplyResolution_StaleGenerationDiscarded(t *testing.T) {
	e := newTestEngine(t)
	s := e.NewSession()
	completeUpToTrailer(t, e, s)
	require.NoError(t, e.Answer(s, "No, just the movie details"))

	staleGeneration := s.Generation
	e.Reset(s)

	result := &models.RecommendationResult{Title: "Oldboy", Reason: "r", SearchQuery: "Oldboy"}
	applied := e.ApplyResolution(s, staleGeneration, result, nil, "")

	assert.False(t, applied)
	assert.Equal(t, StateAsking, s.State)
	assert.Nil(t, s.Result)
}

// ==========================
// Session Manager
// ==========================

func TestManager_CreateAndDo(t *testing.T) {
	e := newTestEngine(t)
	m := NewManager(e, logger.NewTestLogger(t))

	s := m.Create()
	assert.Equal(t, 1, m.Count())

	err := m.Do(s.ID, func(engine *Engine, session *Session) error {
		return engine.Answer(session, "Horror")
	})
	assert.NoError(t, err)

	err = m.Do(s.ID, func(engine *Engine, session *Session) error {
		assert.Equal(t, []string{"Horror"}, session.Prefs.Genres())
		return nil
	})
	assert.NoError(t, err)
}

func TestManager_UnknownSession(t *testing.T) {
	e := newTestEngine(t)
	m := NewManager(e, logger.NewTestLogger(t))

	err := m.Do("missing", func(engine *Engine, session *Session) error { return nil })
	assertCode(t, err, apperrors.ErrCodeSessionUnknown)
}

func TestManager_Delete(t *testing.T) {
	e := newTestEngine(t)
	m := NewManager(e, logger.NewTestLogger(t))

	s := m.Create()
	m.Delete(s.ID)
	assert.Equal(t, 0, m.Count())

	err := m.Do(s.ID, func(engine *Engine, session *Session) error { return nil })
	assertCode(t, err, apperrors.ErrCodeSessionUnknown)
}
