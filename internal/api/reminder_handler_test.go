package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/todoloop/remind-api/internal/domain"
	"github.com/todoloop/remind-api/internal/reminder"
	"github.com/todoloop/remind-api/internal/store"
)

// mockReminderService is a mock implementation of the ReminderService interface
type mockReminderService struct {
	overdueSweepFn     func(ctx context.Context) (*reminder.SweepResult, error)
	fullSweepFn        func(ctx context.Context) ([]reminder.Outcome, error)
	sendTaskReminderFn func(ctx context.Context, taskID uuid.UUID, typ domain.ReminderType) (string, error)
	dueCountsFn        func(ctx context.Context) (int, int, error)
	diagnosticSweepFn  func(ctx context.Context) (*reminder.SweepResult, error)
	sendTestEmailFn    func(ctx context.Context) (string, error)
}

func (m *mockReminderService) OverdueSweep(ctx context.Context) (*reminder.SweepResult, error) {
	return m.overdueSweepFn(ctx)
}

func (m *mockReminderService) FullSweep(ctx context.Context) ([]reminder.Outcome, error) {
	return m.fullSweepFn(ctx)
}

func (m *mockReminderService) SendTaskReminder(
	ctx context.Context,
	taskID uuid.UUID,
	typ domain.ReminderType,
) (string, error) {
	return m.sendTaskReminderFn(ctx, taskID, typ)
}

func (m *mockReminderService) DueCounts(ctx context.Context) (int, int, error) {
	return m.dueCountsFn(ctx)
}

func (m *mockReminderService) DiagnosticSweep(ctx context.Context) (*reminder.SweepResult, error) {
	return m.diagnosticSweepFn(ctx)
}

func (m *mockReminderService) SendTestEmail(ctx context.Context) (string, error) {
	return m.sendTestEmailFn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduledSweep(t *testing.T) {
	tests := []struct {
		name           string
		result         *reminder.SweepResult
		err            error
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "No overdue tasks",
			result:         &reminder.SweepResult{},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"success":    true,
				"message":    "No overdue tasks found",
				"emailsSent": float64(0),
			},
		},
		{
			name: "Completed sweep",
			result: &reminder.SweepResult{
				EmailsSent:        2,
				UsersNotified:     2,
				TotalOverdueTasks: 5,
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"success":           true,
				"emailsSent":        float64(2),
				"usersNotified":     float64(2),
				"totalOverdueTasks": float64(5),
			},
		},
		{
			name:           "Store failure",
			err:            reminder.ErrFetchTasks,
			expectedStatus: http.StatusInternalServerError,
			expectedBody: map[string]interface{}{
				"error": "Failed to fetch tasks",
			},
		},
		{
			name:           "Transport failure",
			err:            errors.New("smtp unreachable"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody: map[string]interface{}{
				"error": "Failed to send reminders",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockReminderService{
				overdueSweepFn: func(ctx context.Context) (*reminder.SweepResult, error) {
					return tc.result, tc.err
				},
			}

			handler := NewReminderHandler(mockService, testLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/cron/daily-reminders", nil)
			w := httptest.NewRecorder()

			handler.ScheduledSweep(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			for key, want := range tc.expectedBody {
				assert.Equal(t, want, body[key], "field %q", key)
			}
		})
	}
}

func TestSendRemindersTargeted(t *testing.T) {
	taskID := uuid.New()

	tests := []struct {
		name           string
		body           string
		sendResult     string
		sendErr        error
		expectedStatus int
		expectedField  string
		expectedValue  string
	}{
		{
			name:           "Success",
			body:           `{"userId":"user-1","taskId":"` + taskID.String() + `","type":"overdue"}`,
			sendResult:     "msg-1",
			expectedStatus: http.StatusOK,
			expectedField:  "id",
			expectedValue:  "msg-1",
		},
		{
			name:           "Unknown task",
			body:           `{"userId":"user-1","taskId":"` + taskID.String() + `"}`,
			sendErr:        store.ErrTaskNotFound,
			expectedStatus: http.StatusNotFound,
			expectedField:  "error",
			expectedValue:  "Task or email not found",
		},
		{
			name:           "Task owner has no address",
			body:           `{"userId":"user-1","taskId":"` + taskID.String() + `"}`,
			sendErr:        reminder.ErrNoRecipientEmail,
			expectedStatus: http.StatusNotFound,
			expectedField:  "error",
			expectedValue:  "Task or email not found",
		},
		{
			name:           "Malformed task ID",
			body:           `{"userId":"user-1","taskId":"not-a-uuid"}`,
			expectedStatus: http.StatusNotFound,
			expectedField:  "error",
			expectedValue:  "Task or email not found",
		},
		{
			name:           "Invalid type",
			body:           `{"userId":"user-1","taskId":"` + taskID.String() + `","type":"weekly"}`,
			expectedStatus: http.StatusBadRequest,
			expectedField:  "error",
		},
		{
			name:           "Transport failure",
			body:           `{"userId":"user-1","taskId":"` + taskID.String() + `"}`,
			sendErr:        errors.New("smtp unreachable"),
			expectedStatus: http.StatusInternalServerError,
			expectedField:  "error",
			expectedValue:  "Failed to send reminders",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockReminderService{
				sendTaskReminderFn: func(ctx context.Context, id uuid.UUID, typ domain.ReminderType) (string, error) {
					assert.Equal(t, taskID, id)
					return tc.sendResult, tc.sendErr
				},
			}

			handler := NewReminderHandler(mockService, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/send", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.SendReminders(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tc.expectedValue != "" {
				assert.Equal(t, tc.expectedValue, body[tc.expectedField])
			} else {
				assert.Contains(t, body, tc.expectedField)
			}
		})
	}
}

func TestSendRemindersSweep(t *testing.T) {
	outcomes := []reminder.Outcome{
		{UserID: "user-1", Email: "a@example.com", Type: domain.ReminderOverdue, Success: true, MessageID: "msg-1", TaskCount: 2},
		{UserID: "user-2", Email: "b@example.com", Type: domain.ReminderUpcoming, Success: false, Error: "bounced", TaskCount: 1},
	}

	mockService := &mockReminderService{
		fullSweepFn: func(ctx context.Context) ([]reminder.Outcome, error) {
			return outcomes, nil
		},
	}

	handler := NewReminderHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/send", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SendReminders(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp FullSweepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.EmailsSent)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "msg-1", resp.Results[0].MessageID)
	assert.Equal(t, "bounced", resp.Results[1].Error)
}

func TestDueCounts(t *testing.T) {
	mockService := &mockReminderService{
		dueCountsFn: func(ctx context.Context) (int, int, error) {
			return 3, 1, nil
		},
	}

	handler := NewReminderHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/send", nil)
	w := httptest.NewRecorder()

	handler.DueCounts(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp DueCountsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.OverdueTasks)
	assert.Equal(t, 1, resp.UpcomingTasks)
}

func TestDiagnosticSweep(t *testing.T) {
	t.Run("includes per-send details", func(t *testing.T) {
		mockService := &mockReminderService{
			diagnosticSweepFn: func(ctx context.Context) (*reminder.SweepResult, error) {
				return &reminder.SweepResult{
					EmailsSent:        1,
					UsersNotified:     1,
					TotalOverdueTasks: 4,
					Outcomes: []reminder.Outcome{
						{UserID: "test-user", Email: "qa@example.com", Type: domain.ReminderOverdue, Success: true, MessageID: "msg-1", TaskCount: 4},
					},
				}, nil
			},
		}

		handler := NewReminderHandler(mockService, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/test-reminders", nil)
		w := httptest.NewRecorder()

		handler.DiagnosticSweep(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp SweepResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 1, resp.EmailsSent)
		assert.Equal(t, 4, resp.TotalOverdueTasks)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "test-user", resp.Details[0].UserID)
	})

	t.Run("no test recipient configured", func(t *testing.T) {
		mockService := &mockReminderService{
			diagnosticSweepFn: func(ctx context.Context) (*reminder.SweepResult, error) {
				return nil, reminder.ErrNoTestRecipient
			},
		}

		handler := NewReminderHandler(mockService, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/test-reminders", nil)
		w := httptest.NewRecorder()

		handler.DiagnosticSweep(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "No test recipient configured", body["error"])
	})
}

func TestTestEmail(t *testing.T) {
	mockService := &mockReminderService{
		sendTestEmailFn: func(ctx context.Context) (string, error) {
			return "msg-42", nil
		},
	}

	handler := NewReminderHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/test-email", nil)
	w := httptest.NewRecorder()

	handler.TestEmail(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp TestEmailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "msg-42", resp.ID)
}
