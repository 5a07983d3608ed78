// internal/conversation/engine.go
package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "cinechat/internal/common/errors"
	"cinechat/internal/common/logger"
	"cinechat/internal/common/metrics"
	"cinechat/internal/models"
)

// State tags the session's position in the conversation lifecycle.
type State string

const (
	StateAsking               State = "asking"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateResolving            State = "resolving"
	StateCompleted            State = "completed"
)

// Bot transcript copy.
const (
	msgGreeting       = "Hi! I'm CineAI, your movie curator. Let's find your perfect film!"
	msgResetGreeting  = "Welcome back! Ready for another great movie?"
	msgGenresEmpty    = "Please select at least one genre to continue!"
	msgTrailerInclude = "Perfect! I'll include the trailer with your recommendation!"
	msgTrailerSkip    = "Got it! I'll just show you the movie details!"
	msgResolving      = "Let me analyze your preferences and find the perfect movie for you..."
	msgNoTrailer      = "Sorry, I couldn't find a trailer for this movie, but I'm sure you'll love it anyway!"
	msgCompleted      = "Perfect! Enjoy your movie night. Feel free to ask for another recommendation anytime!"
	msgBackEdit       = "Let's go back and edit your selections!"
)

// Session is the runtime state of one conversation. All mutation goes
// through Engine methods; the Manager serializes access.
type Session struct {
	ID            string
	Generation    string
	State         State
	StepIndex     int
	PendingAnswer string
	Prefs         *PreferenceStore
	Messages      []models.ChatMessage
	Result        *models.RecommendationResult
	Movie         *models.Movie
	TrailerURL    string
	CreatedAt     time.Time
}

// Engine drives sessions through the step catalog: answer submission,
// two-phase confirmation, genre accumulation, back-navigation, reset, and
// the hand-off into resolution.
type Engine struct {
	steps  []Step
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		steps: Steps(),
		logger: log.With(map[string]interface{}{
			"component": "conversation",
		}),
	}
}

// Steps exposes the catalog the engine traverses.
func (e *Engine) Steps() []Step {
	return e.steps
}

// NewSession creates a session positioned at the first step, with the
// greeting already in the transcript.
func (e *Engine) NewSession() *Session {
	s := &Session{
		ID:         uuid.NewString(),
		Generation: uuid.NewString(),
		State:      StateAsking,
		Prefs:      NewPreferenceStore(),
		CreatedAt:  time.Now().UTC(),
	}
	s.Messages = append(s.Messages, e.botMessage(msgGreeting))
	metrics.SessionsStarted.Inc()

	e.logger.Info("session created", map[string]interface{}{
		"sessionId": s.ID,
	})
	return s
}

// CurrentStep returns the step the session is positioned on, or false once
// every step has been answered.
func (e *Engine) CurrentStep(s *Session) (Step, bool) {
	if s.StepIndex < 0 || s.StepIndex >= len(e.steps) {
		return Step{}, false
	}
	return e.steps[s.StepIndex], true
}

// Answer submits one option for the current step.
//
// Genre answers accumulate without advancing; a duplicate selection is a
// no-op. The trailer answer is normalized to yes/no, skips confirmation
// and moves the session straight into resolving. Every other step parks
// the answer as pending until Confirm commits it.
func (e *Engine) Answer(s *Session, option string) error {
	if s.State != StateAsking {
		metrics.AnswersRejected.WithLabelValues("wrong_state").Inc()
		return apperrors.NewInvalidAnswerError(e.stepID(s), option)
	}

	step, ok := e.CurrentStep(s)
	if !ok {
		metrics.AnswersRejected.WithLabelValues("no_step").Inc()
		return apperrors.NewInvalidAnswerError("none", option)
	}

	if !containsOption(step.Options, option) {
		e.logger.Warn("answer not in step options", map[string]interface{}{
			"sessionId": s.ID,
			"stepId":    step.ID,
			"answer":    option,
		})
		metrics.AnswersRejected.WithLabelValues("unknown_option").Inc()
		return apperrors.NewInvalidAnswerError(step.ID, option)
	}

	s.Messages = append(s.Messages, e.userMessage(option))

	switch step.Field {
	case FieldGenres:
		if !s.Prefs.AddGenre(option) {
			// Re-selecting an already picked genre is harmless.
			return nil
		}
		metrics.AnswersTotal.WithLabelValues(step.ID).Inc()

	case FieldShowTrailer:
		answer := "no"
		if strings.Contains(option, "Yes") {
			answer = "yes"
		}
		s.Prefs.Set(FieldShowTrailer, answer)
		if answer == "yes" {
			s.Messages = append(s.Messages, e.botMessage(msgTrailerInclude))
		} else {
			s.Messages = append(s.Messages, e.botMessage(msgTrailerSkip))
		}
		metrics.AnswersTotal.WithLabelValues(step.ID).Inc()
		e.enterResolving(s)

	default:
		s.PendingAnswer = option
		s.State = StateAwaitingConfirmation
		metrics.AnswersTotal.WithLabelValues(step.ID).Inc()
	}

	return nil
}

// Confirm commits the pending answer, or on the genre step locks in the
// accumulated selection. Confirming zero genres is rejected with a
// user-visible reprompt and no state change.
func (e *Engine) Confirm(s *Session) error {
	step, ok := e.CurrentStep(s)
	if !ok {
		return apperrors.NewInvalidAnswerError("none", "confirm")
	}

	switch {
	case s.State == StateAsking && step.Field == FieldGenres:
		genres := s.Prefs.Genres()
		if len(genres) == 0 {
			s.Messages = append(s.Messages, e.botMessage(msgGenresEmpty))
			metrics.AnswersRejected.WithLabelValues("genres_empty").Inc()
			return apperrors.NewGenresEmptyError()
		}
		s.Messages = append(s.Messages, e.botMessage(
			fmt.Sprintf("Perfect! %s selected!", strings.Join(genres, ", "))))
		e.advance(s)
		return nil

	case s.State == StateAwaitingConfirmation:
		s.Prefs.Set(step.Field, s.PendingAnswer)
		s.Messages = append(s.Messages, e.botMessage(
			fmt.Sprintf("Perfect! You selected %q", s.PendingAnswer)))
		s.PendingAnswer = ""
		e.advance(s)
		return nil
	}

	return apperrors.NewInvalidAnswerError(step.ID, "confirm")
}

// Back jumps to the first still-unanswered field, or to the previous step
// when everything editable is already set. Pending confirmation is
// discarded. Only legal while the conversation is still collecting.
func (e *Engine) Back(s *Session) error {
	if s.State != StateAsking && s.State != StateAwaitingConfirmation {
		return apperrors.NewInvalidAnswerError(e.stepID(s), "back")
	}

	target, found := s.Prefs.FirstEmptyIndex()
	if !found {
		target = s.StepIndex - 1
		if target < 0 {
			target = 0
		}
	}

	s.StepIndex = target
	s.State = StateAsking
	s.PendingAnswer = ""
	s.Messages = append(s.Messages, e.botMessage(msgBackEdit))
	return nil
}

// Reset returns the session to the greeting, independent of prior state.
// The generation tag is rotated so an in-flight resolution started before
// the reset can no longer land.
func (e *Engine) Reset(s *Session) {
	s.Generation = uuid.NewString()
	s.State = StateAsking
	s.StepIndex = 0
	s.PendingAnswer = ""
	s.Prefs.Reset()
	s.Result = nil
	s.Movie = nil
	s.TrailerURL = ""
	s.Messages = []models.ChatMessage{e.botMessage(msgResetGreeting)}

	e.logger.Info("session reset", map[string]interface{}{
		"sessionId": s.ID,
	})
}

// ApplyResolution lands a finished resolution on the session. The caller
// passes the generation tag captured when resolution started; a stale tag
// (the session was reset meanwhile) discards the result. Returns whether
// the result was applied.
func (e *Engine) ApplyResolution(s *Session, generation string, result *models.RecommendationResult, movie *models.Movie, trailerURL string) bool {
	if generation != s.Generation {
		e.logger.Warn("discarding stale resolution", map[string]interface{}{
			"sessionId": s.ID,
		})
		return false
	}
	if s.State != StateResolving {
		return false
	}

	s.Result = result
	s.Movie = movie
	s.TrailerURL = trailerURL

	recommendation := e.botMessage(
		fmt.Sprintf("Perfect! I found the ideal movie for you: **%s**\n\n%s", result.Title, result.Reason))
	recommendation.Movie = movie
	s.Messages = append(s.Messages, recommendation)

	if s.Prefs.Snapshot().ShowTrailer == "yes" {
		if trailerURL != "" {
			trailerMsg := e.botMessage("")
			trailerMsg.TrailerURL = trailerURL
			s.Messages = append(s.Messages, trailerMsg)
		} else {
			s.Messages = append(s.Messages, e.botMessage(msgNoTrailer))
		}
	}

	s.Messages = append(s.Messages, e.botMessage(msgCompleted))
	s.State = StateCompleted
	return true
}

func (e *Engine) advance(s *Session) {
	s.StepIndex++
	if s.StepIndex >= len(e.steps) {
		e.enterResolving(s)
		return
	}
	s.State = StateAsking
}

func (e *Engine) enterResolving(s *Session) {
	s.StepIndex = len(e.steps)
	s.State = StateResolving
	s.Messages = append(s.Messages, e.botMessage(msgResolving))
}

func (e *Engine) stepID(s *Session) string {
	if step, ok := e.CurrentStep(s); ok {
		return step.ID
	}
	return "none"
}

func (e *Engine) botMessage(content string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Type:      "bot",
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

func (e *Engine) userMessage(content string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Type:      "user",
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

func containsOption(options []string, option string) bool {
	for _, o := range options {
		if o == option {
			return true
		}
	}
	return false
}
