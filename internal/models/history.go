package models

import "time"

// Fill statuses recorded in history.
const (
	FillStatusSubmitted = "submitted"
	FillStatusFailed    = "failed"
)

// FillEvent is one completed confirmation attempt: a form fill that was
// handed to the forms API, successfully or not.
type FillEvent struct {
	Time           time.Time
	FillID         string
	ChatID         int64
	FormID         string
	FormName       string
	QuestionsTotal int
	Answered       int
	Status         string
}
