package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/annapurna-ai/backend/internal/models"
)

// Profile is the dietary context every suggestion step is grounded on.
type Profile struct {
	Preference  models.DietaryPreference `json:"dietary_preference"`
	CalorieGoal float64                  `json:"calorie_goal"`
}

// Validate rejects invalid profiles before any inference call is issued. A
// calorie goal of 0 is degenerate but accepted; negative goals are not.
func (p Profile) Validate() error {
	if err := p.Preference.Validate(); err != nil {
		return err
	}
	if p.CalorieGoal < 0 {
		return fmt.Errorf("calorie goal must not be negative")
	}
	return nil
}

// Turn is one question/answer pair. The ordered turn list is the only context
// the endpoint receives besides the profile; prior model output is never
// resent.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Suggestion is one recommended dish with brief preparation instructions.
type Suggestion struct {
	Name   string `json:"name"`
	Recipe string `json:"recipe"`
}

// NextQuestion is a clarifying question with selectable options.
type NextQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// SuggestionStep is the validated output of one suggestion inference call.
// Exactly one of NextQuestion and Suggestions is populated; the contract
// rejects responses carrying both or neither.
type SuggestionStep struct {
	NextQuestion *NextQuestion `json:"nextQuestion,omitempty"`
	Suggestions  []Suggestion  `json:"suggestions,omitempty"`
}

func (s *SuggestionStep) validate() error {
	hasQuestion := s.NextQuestion != nil
	hasSuggestions := len(s.Suggestions) > 0

	if hasQuestion == hasSuggestions {
		return fmt.Errorf("%w: exactly one of nextQuestion and suggestions must be present", ErrSchemaValidation)
	}
	if hasQuestion {
		if strings.TrimSpace(s.NextQuestion.Question) == "" {
			return fmt.Errorf("%w: nextQuestion.question must not be empty", ErrSchemaValidation)
		}
		if len(s.NextQuestion.Options) == 0 {
			return fmt.Errorf("%w: nextQuestion.options must not be empty", ErrSchemaValidation)
		}
		return nil
	}
	if len(s.Suggestions) != 2 {
		return fmt.Errorf("%w: expected exactly 2 suggestions, got %d", ErrSchemaValidation, len(s.Suggestions))
	}
	for i, sg := range s.Suggestions {
		if strings.TrimSpace(sg.Name) == "" || strings.TrimSpace(sg.Recipe) == "" {
			return fmt.Errorf("%w: suggestion %d missing name or recipe", ErrSchemaValidation, i)
		}
	}
	return nil
}

// SuggestionInferencer issues one suggestion step against the inference
// endpoint. Implementations must be stateless: context is reconstructed
// entirely from the supplied profile and history.
type SuggestionInferencer interface {
	NextSuggestionStep(ctx context.Context, model string, profile Profile, history []Turn) (*SuggestionStep, error)
}

const suggestionPromptHeader = `You are an expert Indian chef and nutritionist AI. Your goal is to help a user find two perfect meal suggestions by asking a series of contextual questions.

The user's profile:
- Dietary Preference: %s
- Daily Calorie Goal: %.0f

Conversation History:
%s
Based on the conversation history, decide the next step:

1. If you don't have enough information, ask ONE more clarifying and CONTEXTUAL question relevant to Indian cuisine, with a few multiple-choice options. Respond with:
   {"nextQuestion": {"question": "...", "options": ["...", "..."]}}

2. If you have enough information (after 2-3 questions), provide exactly TWO detailed meal suggestions tailored to the user's preferences and calorie goal. Respond with:
   {"suggestions": [{"name": "...", "recipe": "..."}, {"name": "...", "recipe": "..."}]}

Respond only with a JSON object. Never set both "nextQuestion" and "suggestions".`

// NextSuggestionStep runs the suggestion step flow against the model.
func (s *EstimationService) NextSuggestionStep(ctx context.Context, model string, profile Profile, history []Turn) (*SuggestionStep, error) {
	var ctxLines strings.Builder
	if len(history) == 0 {
		ctxLines.WriteString("No questions asked yet. This is the start of the conversation.\n")
	} else {
		for _, turn := range history {
			fmt.Fprintf(&ctxLines, "- You asked: %q\n- User answered: %q\n", turn.Question, turn.Answer)
		}
	}

	prompt := fmt.Sprintf(suggestionPromptHeader, profile.Preference, profile.CalorieGoal, ctxLines.String())

	raw, err := s.client.Generate(ctx, model, prompt, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		NextQuestion *NextQuestion `json:"nextQuestion"`
		Suggestions  []Suggestion  `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("[EstimationService] malformed suggestion step: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	step := &SuggestionStep{NextQuestion: out.NextQuestion, Suggestions: out.Suggestions}
	if err := step.validate(); err != nil {
		return nil, err
	}
	return step, nil
}

// SessionState is the tagged variant for a suggestion session. The sealed
// interface keeps illegal combinations (a question and final suggestions at
// once) unrepresentable.
type SessionState interface {
	sessionState()
}

// Idle means no session has been started.
type Idle struct{}

// Loading means an inference call is in flight.
type Loading struct{}

// AwaitingInput carries a clarifying question the user must answer.
type AwaitingInput struct {
	Question string
	Options  []string
}

// SuggestionsReady is the terminal success state: exactly two suggestions.
type SuggestionsReady struct {
	Suggestions [2]Suggestion
}

// SessionError is the terminal failure state; the user may start over.
type SessionError struct {
	Message string
}

func (Idle) sessionState()             {}
func (Loading) sessionState()          {}
func (AwaitingInput) sessionState()    {}
func (SuggestionsReady) sessionState() {}
func (SessionError) sessionState()     {}

// estimationFailedMessage is the only failure text shown to end users; the
// underlying cause goes to the log.
const estimationFailedMessage = "Failed to get suggestions. Please try again."

// SuggestionController drives one suggestion dialogue. Calls are strictly
// sequential per session: a new inference call is only issued after the prior
// one resolved and the user supplied the next answer, so the controller is
// not safe for concurrent use and does not need to be.
type SuggestionController struct {
	inferencer SuggestionInferencer
	model      string
	state      SessionState
	history    []Turn
}

// NewSuggestionController creates a controller in the Idle state.
func NewSuggestionController(inferencer SuggestionInferencer, model string) *SuggestionController {
	return &SuggestionController{
		inferencer: inferencer,
		model:      model,
		state:      Idle{},
	}
}

// State returns the current session state.
func (c *SuggestionController) State() SessionState {
	return c.state
}

// History returns the append-only conversation history so far.
func (c *SuggestionController) History() []Turn {
	return c.history
}

// Start begins a fresh dialogue: history is reset, the state moves to Loading
// and the first inference call goes out with an empty history. The returned
// error covers input validation only; endpoint failures land in the
// SessionError state.
func (c *SuggestionController) Start(ctx context.Context, profile Profile) (SessionState, error) {
	if err := profile.Validate(); err != nil {
		return c.state, err
	}

	c.history = nil
	c.state = Loading{}
	c.state = c.advance(ctx, profile)
	return c.state, nil
}

// Resume rebuilds an in-progress session from client-held state, positioning
// the controller at the pending question so SubmitAnswer can continue it.
func (c *SuggestionController) Resume(history []Turn, question string) {
	c.history = append([]Turn(nil), history...)
	c.state = AwaitingInput{Question: question}
}

// SubmitAnswer records the user's answer to the pending question and issues
// the next inference call with the full updated history.
func (c *SuggestionController) SubmitAnswer(ctx context.Context, profile Profile, answer string) (SessionState, error) {
	if err := profile.Validate(); err != nil {
		return c.state, err
	}
	if strings.TrimSpace(answer) == "" {
		return c.state, fmt.Errorf("answer must not be empty")
	}
	awaiting, ok := c.state.(AwaitingInput)
	if !ok {
		return c.state, fmt.Errorf("no question is pending")
	}

	c.history = append(c.history, Turn{Question: awaiting.Question, Answer: answer})
	c.state = Loading{}
	c.state = c.advance(ctx, profile)
	return c.state, nil
}

// advance issues one inference call and maps its outcome onto the next
// session state. Transport, endpoint and schema failures all collapse to
// SessionError with a uniform user-facing message.
func (c *SuggestionController) advance(ctx context.Context, profile Profile) SessionState {
	step, err := c.inferencer.NextSuggestionStep(ctx, c.model, profile, c.history)
	if err != nil {
		log.Printf("[SuggestionController] inference step failed: %v", err)
		return SessionError{Message: estimationFailedMessage}
	}

	if step.NextQuestion != nil {
		return AwaitingInput{
			Question: step.NextQuestion.Question,
			Options:  step.NextQuestion.Options,
		}
	}
	return SuggestionsReady{
		Suggestions: [2]Suggestion{step.Suggestions[0], step.Suggestions[1]},
	}
}
