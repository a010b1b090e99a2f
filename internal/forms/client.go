package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"formsbot/internal/models"
)

var (
	// ErrNotFound is returned when the API does not know the survey id.
	ErrNotFound = errors.New("form not found")

	// ErrRejected is returned when the API refuses a submission.
	ErrRejected = errors.New("submission rejected by server")
)

const (
	defaultTimeout = 30 * time.Second
	pollInterval   = 2 * time.Second
)

// Client talks to the Yandex Forms public API: form structure, answer
// submission and server-side result export.
type Client struct {
	apiBase      string
	token        string
	httpClient   *http.Client
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewClient creates a forms API client. apiBase is the public API root,
// token is the Bearer token.
func NewClient(apiBase, token string, logger *zap.Logger) *Client {
	return &Client{
		apiBase:      apiBase,
		token:        token,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// FetchForm returns the form structure for a survey id.
func (c *Client) FetchForm(ctx context.Context, surveyID string) (*models.FormSchema, error) {
	endpoint := fmt.Sprintf("%s/surveys/%s/form", c.apiBase, surveyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch form %s: %w", surveyID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("fetch form %s: %w", surveyID, ErrNotFound)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch form %s: status %d: %s", surveyID, resp.StatusCode, body)
	}

	var form models.FormSchema
	if err := json.NewDecoder(resp.Body).Decode(&form); err != nil {
		return nil, fmt.Errorf("decode form %s: %w", surveyID, err)
	}
	return &form, nil
}

// Submit sends the collected answers to the form. Only answers belonging to
// visible questions of the schema end up in the payload.
func (c *Client) Submit(ctx context.Context, form *models.FormSchema, answers map[string]models.Answer) error {
	payload := buildPayload(form, answers)
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	endpoint := fmt.Sprintf("%s/surveys/%s/form", c.apiBase, form.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit form %s: %w", form.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("submit form %s: status %d: %s: %w", form.ID, resp.StatusCode, errText, ErrRejected)
	}
	return nil
}

// ExportResults runs a server-side export of all answers and downloads the
// resulting file. format is "csv" or "xlsx". The export job is polled at a
// fixed interval until it finishes or ctx is done.
func (c *Client) ExportResults(ctx context.Context, surveyID, format string) ([]byte, error) {
	operationID, err := c.startExport(ctx, surveyID, format)
	if err != nil {
		return nil, err
	}

	c.logger.Info("export started",
		zap.String("survey_id", surveyID),
		zap.String("operation_id", operationID),
	)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		finished, err := c.checkFinished(ctx, operationID)
		if err != nil {
			return nil, err
		}
		if finished {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("export %s: %w", operationID, ctx.Err())
		case <-ticker.C:
		}
	}

	return c.fetchExportResult(ctx, surveyID, operationID)
}

// startExport kicks off the background export job and returns its operation id.
func (c *Client) startExport(ctx context.Context, surveyID, format string) (string, error) {
	body, err := json.Marshal(map[string]string{"format": format})
	if err != nil {
		return "", fmt.Errorf("encode export request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/surveys/%s/answers/export", c.apiBase, surveyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("start export %s: %w", surveyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		errText, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("start export %s: status %d: %s", surveyID, resp.StatusCode, errText)
	}

	var op struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return "", fmt.Errorf("decode export operation: %w", err)
	}
	if op.ID == "" {
		return "", fmt.Errorf("start export %s: empty operation id", surveyID)
	}
	return op.ID, nil
}

// checkFinished polls the export operation status.
func (c *Client) checkFinished(ctx context.Context, operationID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/operations/%s", c.apiBase, operationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("check operation %s: %w", operationID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("check operation %s: status %d: %s", operationID, resp.StatusCode, errText)
	}

	var op struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return false, fmt.Errorf("decode operation status: %w", err)
	}
	return op.Status == "ok", nil
}

// fetchExportResult downloads the finished export file.
func (c *Client) fetchExportResult(ctx context.Context, surveyID, operationID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/surveys/%s/answers/export-results?%s",
		c.apiBase, surveyID, url.Values{"task_id": {operationID}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch export result %s: %w", operationID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch export result %s: status %d: %s", operationID, resp.StatusCode, errText)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
}
