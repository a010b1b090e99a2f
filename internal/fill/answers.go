package fill

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"formsbot/internal/models"
)

// ErrInvalidAnswer signals that a reply does not match the question's type.
// It is an expected outcome: the controller re-prompts without advancing.
var ErrInvalidAnswer = errors.New("invalid answer")

var digitRuns = regexp.MustCompile(`\d+`)

// Accepted date layouts, tried in order; the first match wins.
var dateLayouts = []string{
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
}

// Processor validates and normalizes one raw user reply against one
// question's type.
type Processor struct {
	yesWords map[string]struct{}
	noWords  map[string]struct{}
}

// NewProcessor returns a processor with the default yes/no vocabulary.
func NewProcessor() *Processor {
	return &Processor{
		yesWords: wordSet("да", "д", "yes", "y", "true", "ага"),
		noWords:  wordSet("нет", "н", "no", "n", "false", "неа"),
	}
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Process turns a raw reply into a normalized answer for the question,
// or ErrInvalidAnswer when the reply does not match the question's type.
func (p *Processor) Process(q models.Question, reply string) (models.Answer, error) {
	switch q.Kind() {
	case models.KindSingleChoice:
		return processSingleChoice(q, reply)
	case models.KindMultiChoice:
		return processMultiChoice(q, reply)
	case models.KindBoolean:
		return p.processBoolean(reply)
	case models.KindDate:
		return processDate(reply)
	case models.KindText:
		return models.Answer{Text: strings.TrimSpace(reply)}, nil
	}
	return models.Answer{}, ErrInvalidAnswer
}

// processSingleChoice expects a 1-based option number.
func processSingleChoice(q models.Question, reply string) (models.Answer, error) {
	n, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil {
		return models.Answer{}, ErrInvalidAnswer
	}
	if n < 1 || n > len(q.Items) {
		return models.Answer{}, ErrInvalidAnswer
	}
	return models.Answer{Choices: []string{q.Items[n-1].ID}}, nil
}

// processMultiChoice extracts every integer token from the reply; valid
// 1-based indices select options, invalid ones are silently dropped.
// Duplicates are allowed and order follows the reply.
func processMultiChoice(q models.Question, reply string) (models.Answer, error) {
	var choices []string
	for _, tok := range digitRuns.FindAllString(reply, -1) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if n < 1 || n > len(q.Items) {
			continue
		}
		choices = append(choices, q.Items[n-1].ID)
	}
	if len(choices) == 0 {
		return models.Answer{}, ErrInvalidAnswer
	}
	return models.Answer{Choices: choices}, nil
}

// processBoolean matches the yes/no vocabulary first, then falls back to
// integer coercion (0 is false, anything else true).
func (p *Processor) processBoolean(reply string) (models.Answer, error) {
	word := strings.ToLower(strings.TrimSpace(reply))
	if _, ok := p.yesWords[word]; ok {
		return models.BoolAnswer(true), nil
	}
	if _, ok := p.noWords[word]; ok {
		return models.BoolAnswer(false), nil
	}
	if n, err := strconv.Atoi(word); err == nil {
		return models.BoolAnswer(n != 0), nil
	}
	return models.Answer{}, ErrInvalidAnswer
}

// processDate tries the accepted layouts in order and normalizes the first
// match to ISO YYYY-MM-DD.
func processDate(reply string) (models.Answer, error) {
	trimmed := strings.TrimSpace(reply)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return models.Answer{Date: t.Format("2006-01-02")}, nil
		}
	}
	return models.Answer{}, ErrInvalidAnswer
}
