package session

import (
	"context"

	"formsbot/internal/models"
)

// Phase is the conversation phase of a filling session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseCollecting Phase = "collecting"
	PhaseConfirming Phase = "confirming"
)

// State is the per-chat mutable record of an in-progress form fill.
// It is owned by exactly one chat and mutated only by the controller.
type State struct {
	FormID  string                   `json:"form_id,omitempty"`
	Form    *models.FormSchema       `json:"form,omitempty"`
	FillID  string                   `json:"fill_id,omitempty"`
	Visible []string                 `json:"visible,omitempty"`
	Index   int                      `json:"index"`
	Answers map[string]models.Answer `json:"answers,omitempty"`
	Phase   Phase                    `json:"phase"`
}

// New returns an idle state with no form loaded.
func New() State {
	return State{Phase: PhaseIdle}
}

// Store persists per-chat session state, keyed by chat id.
type Store interface {
	Get(ctx context.Context, chatID int64) (State, bool, error)
	Set(ctx context.Context, chatID int64, state State) error
	Delete(ctx context.Context, chatID int64) error
}
