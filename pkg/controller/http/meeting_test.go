package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/schedlab/tzquorum/pkg/controller/http"
	"github.com/schedlab/tzquorum/pkg/repository/memory"
	"github.com/schedlab/tzquorum/pkg/usecase"
)

func newTestServer() *httpctrl.Server {
	return httpctrl.New(usecase.New(memory.New()))
}

func doJSON(t *testing.T, srv *httpctrl.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v)).Required()
	return v
}

func createMeetingBody() map[string]any {
	return map[string]any{
		"title":                "Design review",
		"organizerName":        "Carol",
		"organizerEmail":       "carol@example.com",
		"meetingType":          "ONE_TIME",
		"dateRangeStart":       "2026-09-07T00:00:00Z",
		"dateRangeEnd":         "2026-09-08T00:00:00Z",
		"slotDuration":         30,
		"expectedParticipants": 2,
	}
}

func availabilityBody(name, email string, startHours ...int) map[string]any {
	var slots []map[string]any
	for _, h := range startHours {
		start := time.Date(2026, 9, 7, h, 0, 0, 0, time.UTC)
		slots = append(slots, map[string]any{
			"start": start.Format(time.RFC3339),
			"end":   start.Add(30 * time.Minute).Format(time.RFC3339),
		})
	}
	return map[string]any{
		"name":         name,
		"email":        email,
		"timezone":     "UTC",
		"availability": slots,
	}
}

func TestHealthEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/health", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestCreateMeeting(t *testing.T) {
	t.Run("creates and returns the meeting", func(t *testing.T) {
		rec := doJSON(t, newTestServer(), http.MethodPost, "/api/meetings", createMeetingBody())
		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		resp := decodeBody[map[string]any](t, rec)
		gt.Value(t, resp["id"]).NotEqual("")
		gt.Value(t, resp["status"]).Equal("ACTIVE")
		gt.Value(t, resp["slotDuration"]).Equal(float64(30))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		srv := newTestServer()
		req := httptest.NewRequest(http.MethodPost, "/api/meetings", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejects unknown meeting type", func(t *testing.T) {
		body := createMeetingBody()
		body["meetingType"] = "DAILY"
		rec := doJSON(t, newTestServer(), http.MethodPost, "/api/meetings", body)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejects unsupported duration", func(t *testing.T) {
		body := createMeetingBody()
		body["slotDuration"] = 45
		rec := doJSON(t, newTestServer(), http.MethodPost, "/api/meetings", body)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		body := createMeetingBody()
		body["title"] = ""
		rec := doJSON(t, newTestServer(), http.MethodPost, "/api/meetings", body)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		body := createMeetingBody()
		body["dateRangeStart"] = "2026-09-08T00:00:00Z"
		body["dateRangeEnd"] = "2026-09-07T00:00:00Z"
		rec := doJSON(t, newTestServer(), http.MethodPost, "/api/meetings", body)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestGetMeeting(t *testing.T) {
	srv := newTestServer()

	created := decodeBody[map[string]any](t,
		doJSON(t, srv, http.MethodPost, "/api/meetings", createMeetingBody()))
	id := created["id"].(string)

	t.Run("found", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/meetings/"+id, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		resp := decodeBody[map[string]any](t, rec)
		gt.Value(t, resp["title"]).Equal("Design review")
	})

	t.Run("not found", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/meetings/missing", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestSubmitAvailabilityEndpoint(t *testing.T) {
	t.Run("accepts a response", func(t *testing.T) {
		srv := newTestServer()
		created := decodeBody[map[string]any](t,
			doJSON(t, srv, http.MethodPost, "/api/meetings", createMeetingBody()))
		id := created["id"].(string)

		rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/meetings/%s/availability", id),
			availabilityBody("Alice", "alice@example.com", 10, 11))
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		resp := decodeBody[map[string]string](t, rec)
		gt.Value(t, resp["participantId"]).NotEqual("")
	})

	t.Run("rejects empty availability", func(t *testing.T) {
		srv := newTestServer()
		created := decodeBody[map[string]any](t,
			doJSON(t, srv, http.MethodPost, "/api/meetings", createMeetingBody()))
		id := created["id"].(string)

		body := availabilityBody("Alice", "alice@example.com")
		rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/meetings/%s/availability", id), body)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejects inverted slot", func(t *testing.T) {
		srv := newTestServer()
		created := decodeBody[map[string]any](t,
			doJSON(t, srv, http.MethodPost, "/api/meetings", createMeetingBody()))
		id := created["id"].(string)

		body := availabilityBody("Alice", "alice@example.com")
		body["availability"] = []map[string]any{{
			"start": "2026-09-07T11:00:00Z",
			"end":   "2026-09-07T10:00:00Z",
		}}
		rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/meetings/%s/availability", id), body)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("closed poll returns conflict", func(t *testing.T) {
		srv := newTestServer()
		created := decodeBody[map[string]any](t,
			doJSON(t, srv, http.MethodPost, "/api/meetings", createMeetingBody()))
		id := created["id"].(string)

		for _, email := range []string{"alice@example.com", "bob@example.com"} {
			rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/meetings/%s/availability", id),
				availabilityBody(email, email, 10))
			gt.Value(t, rec.Code).Equal(http.StatusOK)
		}

		rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/meetings/%s/availability", id),
			availabilityBody("Mallory", "mallory@example.com", 10))
		gt.Value(t, rec.Code).Equal(http.StatusConflict)
	})
}

func TestMeetingResultEndpoint(t *testing.T) {
	t.Run("overlap without suggestion", func(t *testing.T) {
		srv := newTestServer()
		created := decodeBody[map[string]any](t,
			doJSON(t, srv, http.MethodPost, "/api/meetings", createMeetingBody()))
		id := created["id"].(string)

		doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/meetings/%s/availability", id),
			availabilityBody("Alice", "alice@example.com", 10))
		doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/meetings/%s/availability", id),
			availabilityBody("Bob", "bob@example.com", 10))

		rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/meetings/%s/result", id), nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		resp := decodeBody[map[string]any](t, rec)
		gt.Value(t, resp["hasOverlap"]).Equal(true)
		gt.Value(t, resp["suggestion"]).Nil()
	})

	t.Run("disjoint answers include a suggestion", func(t *testing.T) {
		srv := newTestServer()
		created := decodeBody[map[string]any](t,
			doJSON(t, srv, http.MethodPost, "/api/meetings", createMeetingBody()))
		id := created["id"].(string)

		doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/meetings/%s/availability", id),
			availabilityBody("Alice", "alice@example.com", 9))
		doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/meetings/%s/availability", id),
			availabilityBody("Bob", "bob@example.com", 15))

		rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/meetings/%s/result", id), nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		resp := decodeBody[map[string]any](t, rec)
		gt.Value(t, resp["hasOverlap"]).Equal(false)

		suggestion, ok := resp["suggestion"].(map[string]any)
		gt.Bool(t, ok).True()
		gt.Value(t, suggestion["reasoning"]).NotEqual("")
		impacts, ok := suggestion["participantImpact"].([]any)
		gt.Bool(t, ok).True()
		gt.Array(t, impacts).Length(2)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		rec := doJSON(t, newTestServer(), http.MethodGet, "/api/meetings/missing/result", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}
