package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/advisor"
	"github.com/Veraticus/harmony/internal/content"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/recommend"
	"github.com/Veraticus/harmony/internal/testutil"
	"github.com/Veraticus/harmony/internal/tracker"
)

var fixedNow = time.Date(2025, 4, 10, 14, 30, 0, 0, time.UTC)

type fixture struct {
	server    *Server
	completer *testutil.FakeCompleter
}

func newFixture(t *testing.T, replies ...testutil.Reply) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewFileStore(t)
	now := func() time.Time { return fixedNow }
	completer := testutil.NewFakeCompleter(replies...)

	_, err := tracker.NewProfiles(store, tracker.WithClock(now)).Save(context.Background(), model.Profile{
		StudentID:   "asha",
		FullName:    "Asha Rao",
		Degree:      "B.Tech",
		YearOfStudy: "3rd Year",
	})
	require.NoError(t, err)

	engine := recommend.NewEngine(recommend.NewStoreSource(store), recommend.Options{Now: now})
	t.Cleanup(engine.Close)

	srv := New(Deps{
		Store:       store,
		Recommender: engine,
		Content: content.NewPool(func(subject string) *content.Cache {
			return content.NewCache(content.Options{
				Completer: completer,
				State:     content.NewDocumentState(store, subject),
				Now:       now,
			})
		}),
		Resources: content.NewResourceFinder(completer, nil),
		Advisor:   advisor.New(completer, nil),
		Now:       now,
	})
	return &fixture{server: srv, completer: completer}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.server.Engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func titles(recs []model.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListStudents(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string][]string](t, rec)
	assert.Equal(t, []string{"asha"}, body["students"])
}

func TestStudentLookupErrors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/students/ravi/dashboard", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decode[ErrorEnvelope](t, rec)
	assert.Equal(t, "student_not_found", env.Error.Code)

	rec = f.do(t, http.MethodGet, "/api/students/bad$id/dashboard", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env = decode[ErrorEnvelope](t, rec)
	assert.Equal(t, "invalid_student_id", env.Error.Code)
	assert.NotEmpty(t, env.Error.Message)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/students/asha/semesters",
		gin.H{"semester": "Sem 1", "semester_index": 1, "sgpa": 8.0, "credits": 20}).Code)

	rec := f.do(t, http.MethodGet, "/api/students/asha/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[dashboardResponse](t, rec)
	assert.Equal(t, "Asha Rao", body.Profile.FullName)
	assert.InDelta(t, 8.0, body.Academic.CGPA, 1e-9)
	assert.InDelta(t, model.DefaultCGPAGoal, body.Academic.CGPAGoal, 1e-9)
	assert.NotEmpty(t, body.Recommendations)
}

func TestWritesInvalidateRecommendations(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/students/asha/recommendations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	before := decode[map[string][]model.Recommendation](t, rec)["recommendations"]
	assert.Contains(t, titles(before), "Start Tracking Your Mood")
	assert.Equal(t, model.PriorityHigh, before[0].Priority)

	rec = f.do(t, http.MethodPost, "/api/students/asha/moods", gin.H{"score": 8, "stress_factors": []string{"Exams"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	mood := decode[model.MoodEntry](t, rec)
	assert.Equal(t, "2025-04-10", mood.Date.String())

	rec = f.do(t, http.MethodGet, "/api/students/asha/recommendations", nil)
	after := decode[map[string][]model.Recommendation](t, rec)["recommendations"]
	assert.NotContains(t, titles(after), "Start Tracking Your Mood")
}

func TestAddTransaction(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/students/asha/transactions",
		gin.H{"amount": -120.5, "description": "Canteen", "date": "2025-04-09"})
	require.Equal(t, http.StatusCreated, rec.Code)
	tx := decode[model.Transaction](t, rec)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "Food", tx.Category)

	rec = f.do(t, http.MethodPost, "/api/students/asha/transactions", gin.H{"description": "no amount"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/students/asha/transactions", gin.H{"amount": 5, "date": "April 9"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddSemester(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/students/asha/semesters",
		gin.H{"semester": "Sem 1", "semester_index": 1, "sgpa": 8.0, "credits": 20})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/students/asha/semesters",
		gin.H{"semester": "Sem 2", "semester_index": 2, "sgpa": 8.4, "credits": 22})
	require.Equal(t, http.StatusCreated, rec.Code)
	sem := decode[model.SemesterPerformance](t, rec)
	assert.InDelta(t, 8.2095, sem.CGPA, 1e-4)

	rec = f.do(t, http.MethodPost, "/api/students/asha/semesters",
		gin.H{"semester": "Sem 3", "semester_index": 3, "sgpa": 11, "credits": 20})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContent(t *testing.T) {
	f := newFixture(t, testutil.Reply{Err: errors.New("connection refused")})

	rec := f.do(t, http.MethodGet, "/api/students/asha/content/financial_tips", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		LastUpdated *time.Time   `json:"last_updated"`
		Fields      []string     `json:"fields"`
		Items       []model.Item `json:"items"`
	}](t, rec)
	assert.NotEmpty(t, body.Items)
	assert.Nil(t, body.LastUpdated)
	assert.Equal(t, []string{"tip", "description", "action_item"}, body.Fields)
	assert.Equal(t, 1, f.completer.Calls())

	rec = f.do(t, http.MethodGet, "/api/students/asha/content/news?topic=technology", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/students/asha/content/horoscope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_kind", decode[ErrorEnvelope](t, rec).Error.Code)
}

func TestContentLive(t *testing.T) {
	f := newFixture(t, testutil.Reply{Text: `[
		{"tip": "Track spending", "description": "Use a notebook.", "action_item": "Start today"},
		{"tip": "Cook", "description": "Share meals.", "action_item": "Plan a menu"},
		{"tip": "Scholarships", "description": "Apply early.", "action_item": "Check NSP"}
	]`})

	for range 2 {
		rec := f.do(t, http.MethodGet, "/api/students/asha/content/financial_tips", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.NotNil(t, body["last_updated"])
	}
	assert.Equal(t, 1, f.completer.Calls())

	f.do(t, http.MethodGet, "/api/students/asha/content/financial_tips?force=true", nil)
	assert.Equal(t, 2, f.completer.Calls())
}

func TestResources(t *testing.T) {
	f := newFixture(t, testutil.Reply{Err: errors.New("offline")})

	rec := f.do(t, http.MethodGet, "/api/students/asha/resources?q=Physics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Query string       `json:"query"`
		Items []model.Item `json:"items"`
	}](t, rec)
	assert.Equal(t, "Physics", body.Query)
	assert.NotEmpty(t, body.Items)
}

func TestAdvice(t *testing.T) {
	f := newFixture(t, testutil.Reply{Text: "Break the syllabus into weekly goals."})

	rec := f.do(t, http.MethodPost, "/api/students/asha/advice", gin.H{"question": "How do I study for exams?"})
	require.Equal(t, http.StatusOK, rec.Code)
	answer := decode[advisor.Advice](t, rec)
	assert.Equal(t, advisor.DomainAcademic, answer.Domain)
	assert.Equal(t, "Break the syllabus into weekly goals.", answer.Text)
	assert.False(t, answer.Fallback)
	assert.Contains(t, f.completer.Requests()[0].SystemPrompt, "degree: B.Tech")

	rec = f.do(t, http.MethodPost, "/api/students/asha/advice", gin.H{"question": "help", "domain": "astrology"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_domain", decode[ErrorEnvelope](t, rec).Error.Code)

	rec = f.do(t, http.MethodPost, "/api/students/asha/advice", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
