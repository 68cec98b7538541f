package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sessionAPIStub struct {
	input   service.CreateSessionsInput
	result  model.SubmissionResult
	preview *service.Preview
	slots   []*model.AvailabilitySlot
	group   []*model.ClassSession
	err     error
}

func (s *sessionAPIStub) CreateSessions(_ context.Context, in service.CreateSessionsInput) (model.SubmissionResult, error) {
	s.input = in
	return s.result, s.err
}

func (s *sessionAPIStub) PreviewSessions(_ context.Context, in service.CreateSessionsInput) (*service.Preview, error) {
	s.input = in
	return s.preview, s.err
}

func (s *sessionAPIStub) GetAvailability(context.Context, int64) ([]*model.AvailabilitySlot, error) {
	return s.slots, s.err
}

func (s *sessionAPIStub) GetGroup(context.Context, uuid.UUID) ([]*model.ClassSession, error) {
	return s.group, s.err
}

type userAPIStub struct {
	zone string
}

func (s *userAPIStub) SetTimezone(_ context.Context, id int64, tz string) (*model.User, error) {
	if id != 20 {
		return nil, model.ErrUserNotFound
	}
	if tz == "Mars/Olympus" {
		return nil, fmt.Errorf("%w: unknown timezone %q", model.ErrInvalidInput, tz)
	}
	s.zone = tz
	return &model.User{ID: id, Timezone: mo.Some(tz)}, nil
}

func newTestRouter(stub *sessionAPIStub) *gin.Engine {
	return newTestRouterWithUsers(stub, &userAPIStub{})
}

func newTestRouterWithUsers(stub *sessionAPIStub, users *userAPIStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(stub, users, zap.NewNop())
	h.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return NewRouter(h, zap.NewNop())
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const createBody = `{
	"requester_id": 20,
	"course_id": 3,
	"title": "Physics",
	"date": "2025-03-03",
	"start_time": "14:30",
	"end_time": "15:30",
	"recurrence": {"kind": "weekdays", "count": 5},
	"attachment_url": "https://files.example/syllabus.pdf"
}`

func TestCreateSessions(t *testing.T) {
	groupID := uuid.New()
	stub := &sessionAPIStub{result: model.SubmissionResult{
		CreatedCount: 5,
		TotalCount:   5,
		GroupID:      groupID,
		SessionIDs:   []int64{1, 2, 3, 4, 5},
		Timezone:     model.ResolvedTimezone{Name: "Asia/Kolkata", Source: model.TimezoneFromUser},
	}}

	w := do(t, newTestRouter(stub), http.MethodPost, "/api/tutors/10/sessions", createBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, int64(10), stub.input.TutorID)
	assert.Equal(t, int64(20), stub.input.RequesterID)
	assert.Equal(t, mo.Some(int64(3)), stub.input.CourseID)
	assert.Equal(t, "weekdays", stub.input.Recurrence)
	assert.Equal(t, mo.Some(5), stub.input.Count)
	assert.False(t, stub.input.Until.IsPresent())

	body := decode(t, w)
	assert.Equal(t, float64(5), body["created_count"])
	assert.Equal(t, groupID.String(), body["group_id"])
	assert.Equal(t, "user", body["timezone"].(map[string]any)["source"])
}

func TestCreateSessionsBadRequest(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		body    string
		message string
	}{
		{
			name:    "bad tutor id",
			path:    "/api/tutors/abc/sessions",
			body:    createBody,
			message: "tutor id",
		},
		{
			name:    "malformed json",
			path:    "/api/tutors/10/sessions",
			body:    `{"title":`,
			message: "malformed request body",
		},
		{
			name:    "missing title",
			path:    "/api/tutors/10/sessions",
			body:    strings.Replace(createBody, `"title": "Physics",`, "", 1),
			message: "title is required",
		},
		{
			name:    "bad clock",
			path:    "/api/tutors/10/sessions",
			body:    strings.Replace(createBody, `"14:30"`, `"2:30pm"`, 1),
			message: "start_time must be a time in HH:MM format",
		},
		{
			name:    "bad date",
			path:    "/api/tutors/10/sessions",
			body:    strings.Replace(createBody, `"2025-03-03"`, `"03/03/2025"`, 1),
			message: "date must be a date in YYYY-MM-DD format",
		},
		{
			name:    "unknown recurrence",
			path:    "/api/tutors/10/sessions",
			body:    strings.Replace(createBody, `"weekdays"`, `"monthly"`, 1),
			message: "kind must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &sessionAPIStub{}
			w := do(t, newTestRouter(stub), http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			body := decode(t, w)
			assert.Equal(t, "invalid_input", body["error"])
			assert.Contains(t, body["message"], tt.message)
			assert.Zero(t, stub.input.TutorID, "service is not called")
		})
	}
}

func TestCreateSessionsErrors(t *testing.T) {
	conflict := &model.ConflictError{
		Violations: []model.Violation{{
			Occurrence: model.Occurrence{
				Date:  civil.Date{Year: 2025, Month: time.March, Day: 8},
				Start: civil.Time{Hour: 14, Minute: 30},
				End:   civil.Time{Hour: 15, Minute: 30},
			},
			Outcome: model.ValidationOutcome{
				Message: "The tutor is not available on Saturday, 2025-03-08. Please choose another date.",
				Reason:  model.ReasonNoSlotOnDate,
			},
		}},
		Total:   4,
		Message: "The tutor is not available on Saturday, 2025-03-08. Please choose another date.",
	}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"conflict", conflict, http.StatusConflict, "slot_conflict"},
		{"no availability", model.ErrNoAvailabilityConfigured, http.StatusUnprocessableEntity, "no_availability_configured"},
		{"not a tutor", model.ErrNotATutor, http.StatusUnprocessableEntity, "not_a_tutor"},
		{"tutor not found", model.ErrTutorNotFound, http.StatusNotFound, "tutor_not_found"},
		{
			"creation failure",
			&model.CreationError{Created: 2, Total: 5, Err: errors.New("db down")},
			http.StatusBadGateway, "creation_failure",
		},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &sessionAPIStub{err: tt.err}
			w := do(t, newTestRouter(stub), http.MethodPost, "/api/tutors/10/sessions", createBody)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			body := decode(t, w)
			assert.Equal(t, tt.code, body["error"])

			switch tt.code {
			case "slot_conflict":
				assert.Equal(t, float64(0), body["created_count"])
				assert.Equal(t, float64(4), body["total_count"])
				conflicts := body["conflicts"].([]any)
				require.Len(t, conflicts, 1)
				first := conflicts[0].(map[string]any)
				assert.Equal(t, "2025-03-08", first["date"])
				assert.Equal(t, "no_slot_on_date", first["reason"])
				assert.Contains(t, body["message"], "No sessions were created.")
			case "creation_failure":
				assert.Equal(t, float64(2), body["created_count"])
				assert.Equal(t, float64(5), body["total_count"])
			case "internal_error":
				assert.Equal(t, "internal error", body["message"])
			}
		})
	}
}

func TestPreviewSessions(t *testing.T) {
	stub := &sessionAPIStub{preview: &service.Preview{
		Occurrences: []model.Occurrence{{
			Date:  civil.Date{Year: 2025, Month: time.March, Day: 3},
			Start: civil.Time{Hour: 14, Minute: 30},
			End:   civil.Time{Hour: 15, Minute: 30},
		}},
		RRule:    "FREQ=DAILY;COUNT=5;BYDAY=MO,TU,WE,TH,FR",
		Timezone: model.ResolvedTimezone{Name: "Asia/Kolkata", Source: model.TimezoneFromUser},
	}}

	w := do(t, newTestRouter(stub), http.MethodPost, "/api/tutors/10/sessions/preview", createBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	occurrences := body["occurrences"].([]any)
	require.Len(t, occurrences, 1)
	assert.Equal(t, "14:30", occurrences[0].(map[string]any)["start_time"])
	assert.Empty(t, body["conflicts"])
	assert.Equal(t, "FREQ=DAILY;COUNT=5;BYDAY=MO,TU,WE,TH,FR", body["rrule"])
}

func TestGetAvailability(t *testing.T) {
	stub := &sessionAPIStub{slots: []*model.AvailabilitySlot{{
		ID:       7,
		StartUTC: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC),
	}}}
	router := newTestRouter(stub)

	w := do(t, router, http.MethodGet, "/api/tutors/10/availability?timezone=Asia/Kolkata", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "Asia/Kolkata", body["timezone"])
	slot := body["slots"].([]any)[0].(map[string]any)
	assert.Equal(t, "2025-03-03", slot["local_date"])
	assert.Equal(t, "14:30", slot["local_start"])
	assert.Equal(t, "16:30", slot["local_end"])

	w = do(t, router, http.MethodGet, "/api/tutors/10/availability?timezone=Mars/Olympus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportGroup(t *testing.T) {
	groupID := uuid.New()
	stub := &sessionAPIStub{group: []*model.ClassSession{{
		ID: 1, GroupID: groupID, Title: "Physics",
		Date: "2025-03-03", StartTime: "14:30", EndTime: "15:30", Timezone: "Asia/Kolkata",
	}}}
	router := newTestRouter(stub)

	w := do(t, router, http.MethodGet, "/api/sessions/groups/"+groupID.String()+"/calendar.ics", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Body.String(), "BEGIN:VEVENT")
	assert.Contains(t, w.Body.String(), "SUMMARY:Physics")

	w = do(t, router, http.MethodGet, "/api/sessions/groups/not-a-uuid/calendar.ics", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stub.err = model.ErrGroupNotFound
	w = do(t, router, http.MethodGet, "/api/sessions/groups/"+groupID.String()+"/calendar.ics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(&sessionAPIStub{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetTimezone(t *testing.T) {
	users := &userAPIStub{}
	router := newTestRouterWithUsers(&sessionAPIStub{}, users)

	w := do(t, router, http.MethodPut, "/api/users/20/timezone", `{"timezone":"Asia/Kolkata"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Asia/Kolkata", users.zone)
	assert.Equal(t, "Asia/Kolkata", decode(t, w)["timezone"])

	w = do(t, router, http.MethodPut, "/api/users/20/timezone", `{"timezone":"Mars/Olympus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPut, "/api/users/21/timezone", `{"timezone":"Europe/Moscow"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPut, "/api/users/20/timezone", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
