package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Synthesizer converts reply text to audio bytes. It is a presentation
// affordance only: no decision in the conversation flow consults it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

const synthesizeURL = "https://tts.api.cloud.yandex.net/speech/v1/tts:synthesize"

// SpeechKit synthesizes speech through the Yandex SpeechKit v1 API using
// Api-Key authentication. Output is OggOpus at 48 kHz, which Telegram
// accepts as a voice message directly.
type SpeechKit struct {
	apiKey     string
	folderID   string
	voice      string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ Synthesizer = (*SpeechKit)(nil)

// NewSpeechKit creates a SpeechKit client with the "alena" voice.
func NewSpeechKit(apiKey, folderID string, logger *zap.Logger) *SpeechKit {
	return &SpeechKit{
		apiKey:     apiKey,
		folderID:   folderID,
		voice:      "alena",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Synthesize returns the OggOpus audio for text.
func (s *SpeechKit) Synthesize(ctx context.Context, text string) ([]byte, error) {
	form := url.Values{
		"folderId":        {s.folderID},
		"text":            {text},
		"lang":            {"ru-RU"},
		"voice":           {s.voice},
		"emotion":         {"neutral"},
		"format":          {"oggopus"},
		"sampleRateHertz": {"48000"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, synthesizeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Api-Key "+s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("synthesize: status %d: %s", resp.StatusCode, errText)
	}
	return io.ReadAll(resp.Body)
}
