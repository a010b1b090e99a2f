package fill

import (
	"errors"

	"github.com/google/uuid"

	"formsbot/internal/models"
	"formsbot/internal/session"
)

var (
	// ErrNoFormLoaded is returned when filling starts before a form was
	// fetched for the session.
	ErrNoFormLoaded = errors.New("no form loaded")

	// ErrWrongPhase is returned for an event that is not valid in the
	// session's current phase.
	ErrWrongPhase = errors.New("event not valid in current phase")
)

// Effect is what the transport should do after a transition: send a message,
// suggest reply buttons, and, on Confirm, hand the answers to the form sink.
type Effect struct {
	Text       string
	Keyboard   []string
	Submission *Submission
}

// Submission carries everything the external sink and the fill history need.
// By the time it is produced the session is already back to idle: at most one
// submission attempt per confirmation.
type Submission struct {
	FillID   string
	FormID   string
	FormName string
	Form     *models.FormSchema
	Answers  map[string]models.Answer
	Total    int
	Answered int
}

// Controller sequences a chat session through the visible questions of a
// form. It is a pure transition layer over session.State: every method
// mutates the passed state and returns the effect for the transport to
// perform. Persistence and delivery stay with the caller.
type Controller struct {
	proc *Processor
}

// NewController creates a controller with the default answer processor.
func NewController() *Controller {
	return &Controller{proc: NewProcessor()}
}

// StartFilling begins a fill over the session's fetched form: builds the
// visible-question projection, resets position and answers, and prompts for
// the first question.
func (c *Controller) StartFilling(s *session.State) (Effect, error) {
	if s.Form == nil {
		return Effect{}, ErrNoFormLoaded
	}

	nav := NewNavigator(s.Form)
	s.Visible = nav.QuestionIDs()
	s.Index = 0
	s.Answers = make(map[string]models.Answer)
	s.FillID = uuid.NewString()

	// A form with no visible questions goes straight to review.
	if nav.Total() == 0 {
		s.Phase = session.PhaseConfirming
		return Effect{
			Text:     confirmationText(nav, s.Answers),
			Keyboard: confirmingKeyboard(),
		}, nil
	}

	s.Phase = session.PhaseCollecting
	return c.promptCurrent(s, nav)
}

// SubmitReply processes one reply against the current question. An invalid
// reply re-prompts the same question without advancing; a valid one stores
// the answer and moves forward, entering the review phase after the last
// question.
func (c *Controller) SubmitReply(s *session.State, reply string) (Effect, error) {
	if s.Phase != session.PhaseCollecting {
		return Effect{}, ErrWrongPhase
	}

	nav := NewNavigator(s.Form)
	vq, err := nav.At(s.Index)
	if err != nil {
		return Effect{}, err
	}

	answer, err := c.proc.Process(vq.Question, reply)
	if errors.Is(err, ErrInvalidAnswer) {
		prompt, perr := c.promptCurrent(s, nav)
		if perr != nil {
			return Effect{}, perr
		}
		prompt.Text = "Не удалось распознать ответ, попробуйте ещё раз.\n\n" + prompt.Text
		return prompt, nil
	}
	if err != nil {
		return Effect{}, err
	}

	if s.Answers == nil {
		s.Answers = make(map[string]models.Answer)
	}
	s.Answers[vq.Question.ID] = answer
	s.Index++

	if s.Index == nav.Total() {
		s.Phase = session.PhaseConfirming
		return Effect{
			Text:     confirmationText(nav, s.Answers),
			Keyboard: confirmingKeyboard(),
		}, nil
	}

	return c.promptCurrent(s, nav)
}

// GoBack steps to the previous question. The stored answer for that question
// is kept until overwritten by a new reply.
func (c *Controller) GoBack(s *session.State) (Effect, error) {
	if s.Phase != session.PhaseCollecting {
		return Effect{}, ErrWrongPhase
	}
	if s.Index == 0 {
		nav := NewNavigator(s.Form)
		return c.promptCurrent(s, nav)
	}

	s.Index--
	nav := NewNavigator(s.Form)
	return c.promptCurrent(s, nav)
}

// ShowAllAnswers renders the current answer map without changing position or
// phase.
func (c *Controller) ShowAllAnswers(s *session.State) (Effect, error) {
	if s.Phase != session.PhaseCollecting && s.Phase != session.PhaseConfirming {
		return Effect{}, ErrWrongPhase
	}

	nav := NewNavigator(s.Form)
	effect := Effect{Text: "Ваши ответы:\n\n" + answersOverview(nav, s.Answers)}
	if s.Phase == session.PhaseConfirming {
		effect.Keyboard = confirmingKeyboard()
	} else {
		effect.Keyboard = collectingKeyboard(s.Index, nav.Total())
	}
	return effect, nil
}

// Resume returns from the review phase to collecting so the user can keep
// editing before the final submit. The position is clamped to the last
// question, since after a full pass the index sits one past the end.
func (c *Controller) Resume(s *session.State) (Effect, error) {
	if s.Phase != session.PhaseConfirming {
		return Effect{}, ErrWrongPhase
	}

	nav := NewNavigator(s.Form)
	if s.Index >= nav.Total() && nav.Total() > 0 {
		s.Index = nav.Total() - 1
	}
	s.Phase = session.PhaseCollecting
	return c.promptCurrent(s, nav)
}

// Restart clears all answers and starts over from the first question.
func (c *Controller) Restart(s *session.State) (Effect, error) {
	if s.Phase != session.PhaseCollecting && s.Phase != session.PhaseConfirming {
		return Effect{}, ErrWrongPhase
	}

	s.Answers = make(map[string]models.Answer)
	s.Index = 0
	s.Phase = session.PhaseCollecting

	nav := NewNavigator(s.Form)
	return c.promptCurrent(s, nav)
}

// Confirm hands the answer map to the caller for submission and resets the
// session to idle. The reset happens before any network call, so the state
// is discarded regardless of the submission outcome.
func (c *Controller) Confirm(s *session.State) (Effect, error) {
	if s.Phase != session.PhaseConfirming {
		return Effect{}, ErrWrongPhase
	}

	sub := &Submission{
		FillID:   s.FillID,
		FormID:   s.FormID,
		FormName: s.Form.Name,
		Form:     s.Form,
		Answers:  s.Answers,
		Total:    len(s.Visible),
		Answered: len(s.Answers),
	}

	*s = session.New()
	return Effect{Submission: sub}, nil
}

// promptCurrent renders the question at the session's current index.
func (c *Controller) promptCurrent(s *session.State, nav *Navigator) (Effect, error) {
	vq, err := nav.At(s.Index)
	if err != nil {
		return Effect{}, err
	}
	return Effect{
		Text:     questionPrompt(vq.Question, s.Index+1, nav.Total()),
		Keyboard: collectingKeyboard(s.Index, nav.Total()),
	}, nil
}
