package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"formsbot/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-token", zap.NewNop())
	client.pollInterval = 10 * time.Millisecond
	return client
}

func TestClient_FetchForm(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/surveys/abc123def456/form", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "abc123def456",
			"name": "Опрос",
			"pages": []map[string]any{
				{"items": []map[string]any{
					{"id": "answer_short_text_1", "label": "Комментарий", "type": "string", "hidden": false},
				}},
			},
		})
	}))

	form, err := client.FetchForm(context.Background(), "abc123def456")
	require.NoError(t, err)
	assert.Equal(t, "abc123def456", form.ID)
	assert.Equal(t, "Опрос", form.Name)
	require.Len(t, form.Pages, 1)
}

func TestClient_FetchForm_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FetchForm(context.Background(), "missing0000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func submitForm() *models.FormSchema {
	return &models.FormSchema{
		ID:   "abc123def456",
		Name: "Опрос",
		Pages: []models.Page{
			{Items: []models.Question{
				{ID: "answer_choices_1", Type: "enum", Items: []models.Option{{ID: "opt_1"}, {ID: "opt_2"}}},
				{ID: "answer_boolean_2", Type: "boolean"},
				{ID: "answer_date_3", Type: "date"},
				{ID: "answer_short_text_4", Type: "string"},
				{ID: "answer_hidden_5", Type: "string", Hidden: true},
			}},
		},
	}
}

func TestClient_Submit_PayloadShape(t *testing.T) {
	var received map[string]map[string]any

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/surveys/abc123def456/form", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))

	answers := map[string]models.Answer{
		"answer_choices_1":    {Choices: []string{"opt_2"}},
		"answer_boolean_2":    models.BoolAnswer(true),
		"answer_date_3":       {Date: "2023-01-01"},
		"answer_short_text_4": {Text: "отлично"},
		"answer_hidden_5":     {Text: "не должно попасть"},
	}

	require.NoError(t, client.Submit(context.Background(), submitForm(), answers))

	// Choice questions carry option ids, the rest a text value
	assert.Equal(t, []any{"opt_2"}, received["answer_choices_1"]["choices"])
	assert.Equal(t, "1", received["answer_boolean_2"]["text"])
	assert.Equal(t, "2023-01-01", received["answer_date_3"]["text"])
	assert.Equal(t, "отлично", received["answer_short_text_4"]["text"])

	// Hidden questions never reach the payload
	_, ok := received["answer_hidden_5"]
	assert.False(t, ok)
}

func TestClient_Submit_Rejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validation failed", http.StatusBadRequest)
	}))

	err := client.Submit(context.Background(), submitForm(), nil)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestClient_ExportResults(t *testing.T) {
	var statusPolls int

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/surveys/abc123def456/answers/export":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "csv", req["format"])
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{"id": "op-42"})

		case r.Method == http.MethodGet && r.URL.Path == "/operations/op-42":
			statusPolls++
			status := "in_progress"
			if statusPolls >= 3 {
				status = "ok"
			}
			json.NewEncoder(w).Encode(map[string]string{"status": status})

		case r.Method == http.MethodGet && r.URL.Path == "/surveys/abc123def456/answers/export-results":
			assert.Equal(t, "op-42", r.URL.Query().Get("task_id"))
			w.Write([]byte("id,answer\n1,да\n"))

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	data, err := client.ExportResults(context.Background(), "abc123def456", "csv")
	require.NoError(t, err)
	assert.Equal(t, "id,answer\n1,да\n", string(data))
	assert.GreaterOrEqual(t, statusPolls, 3)
}

func TestClient_ExportResults_ContextCancelled(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{"id": "op-42"})
		default:
			// The export never finishes
			json.NewEncoder(w).Encode(map[string]string{"status": "in_progress"})
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ExportResults(ctx, "abc123def456", "csv")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
