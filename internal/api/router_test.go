package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bloo-az/bloo/internal/middleware"
	"github.com/bloo-az/bloo/internal/models"
)

type fakeNotifier struct {
	fail bool
	sent int
}

func (n *fakeNotifier) Send(ctx context.Context, subject, body, from string, to []string) error {
	if n.fail {
		return errors.New("send failed")
	}
	n.sent++
	return nil
}

type testServer struct {
	h        http.Handler
	store    *memoryStore
	notifier *fakeNotifier
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := newMemoryStore()
	notifier := &fakeNotifier{}
	rt := NewRouter(store, notifier, "Bloo <info@bloo.az>", "admin@bloo.az")
	if err := rt.Auth().EnsureAdmin("admin@bloo.az", "s3cret"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	mux := http.NewServeMux()
	rt.Register(mux)
	ts := &testServer{h: middleware.WithAuth(mux), store: store, notifier: notifier}

	var res struct {
		Token string `json:"token"`
	}
	code := ts.do(t, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "admin@bloo.az", "password": "s3cret"}, &res)
	if code != http.StatusOK || res.Token == "" {
		t.Fatalf("login failed: code=%d token=%q", code, res.Token)
	}
	ts.token = res.Token
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	r := httptest.NewRequest(method, "http://bloo.az"+path, &buf)
	r.RemoteAddr = "10.0.0.5:1234"
	if ts.token != "" {
		r.Header.Set("Authorization", "Bearer "+ts.token)
	}
	w := httptest.NewRecorder()
	ts.h.ServeHTTP(w, r)
	if out != nil && w.Code < 300 {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return w.Code
}

func TestAdminEndpointsRequireAuth(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""
	if code := ts.do(t, http.MethodGet, "/api/admin/questions", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""
	code := ts.do(t, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "admin@bloo.az", "password": "nope"}, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestModerationFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	var mentor models.Mentor
	code := ts.do(t, http.MethodPost, "/api/admin/mentors", map[string]any{
		"name": "Dr. Rena", "university": "BSU", "email": "rena@uni.az",
	}, &mentor)
	if code != http.StatusCreated || mentor.ID == "" {
		t.Fatalf("create mentor: code=%d mentor=%+v", code, mentor)
	}

	var submitted struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	code = ts.do(t, http.MethodPost, "/api/questions", map[string]string{
		"user_name": "Aysel", "user_email": "aysel@example.com",
		"question_text": "How do I apply?",
	}, &submitted)
	if code != http.StatusCreated || submitted.Status != "pending" {
		t.Fatalf("submit: code=%d %+v", code, submitted)
	}

	var q models.Question
	code = ts.do(t, http.MethodPost, "/api/admin/questions/"+submitted.ID+"/assign",
		map[string]string{"mentor_id": mentor.ID}, &q)
	if code != http.StatusOK || q.Status != models.StatusAssigned {
		t.Fatalf("assign: code=%d status=%s", code, q.Status)
	}

	// assigning again conflicts instead of double-sending
	code = ts.do(t, http.MethodPost, "/api/admin/questions/"+submitted.ID+"/assign",
		map[string]string{"mentor_id": mentor.ID}, nil)
	if code != http.StatusConflict {
		t.Fatalf("second assign: expected 409, got %d", code)
	}

	code = ts.do(t, http.MethodPost, "/api/admin/questions/"+submitted.ID+"/answer",
		map[string]string{"answer_text": "Apply online."}, &q)
	if code != http.StatusOK || q.Status != models.StatusAnswered {
		t.Fatalf("answer: code=%d status=%s", code, q.Status)
	}

	var batch struct {
		Approved int `json:"approved"`
	}
	code = ts.do(t, http.MethodPost, "/api/admin/questions/approve",
		map[string]any{"ids": []string{submitted.ID}}, &batch)
	if code != http.StatusOK || batch.Approved != 1 {
		t.Fatalf("approve: code=%d %+v", code, batch)
	}

	code = ts.do(t, http.MethodPost, "/api/admin/questions/"+submitted.ID+"/send", nil, &q)
	if code != http.StatusOK || q.Status != models.StatusSent {
		t.Fatalf("send: code=%d status=%s", code, q.Status)
	}

	// admin heads-up + mentor mail + answer mail
	if ts.notifier.sent != 3 {
		t.Fatalf("expected 3 mails, got %d", ts.notifier.sent)
	}
}

func TestAssignNotifierFailureReturnsBadGateway(t *testing.T) {
	ts := newTestServer(t)

	var mentor models.Mentor
	ts.do(t, http.MethodPost, "/api/admin/mentors", map[string]any{
		"name": "Dr. Rena", "email": "rena@uni.az",
	}, &mentor)

	var submitted struct {
		ID string `json:"id"`
	}
	ts.do(t, http.MethodPost, "/api/questions", map[string]string{
		"user_name": "Aysel", "user_email": "aysel@example.com", "question_text": "?",
	}, &submitted)

	ts.notifier.fail = true
	code := ts.do(t, http.MethodPost, "/api/admin/questions/"+submitted.ID+"/assign",
		map[string]string{"mentor_id": mentor.ID}, nil)
	if code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", code)
	}
	q, _ := ts.store.GetQuestion(submitted.ID)
	if q.Status != models.StatusPending {
		t.Fatalf("question must stay pending, got %s", q.Status)
	}
}

func TestPublicMentorListingHidesInactive(t *testing.T) {
	ts := newTestServer(t)

	var active models.Mentor
	ts.do(t, http.MethodPost, "/api/admin/mentors", map[string]any{"name": "Active One"}, &active)
	var hidden models.Mentor
	ts.do(t, http.MethodPost, "/api/admin/mentors", map[string]any{"name": "Hidden One"}, &hidden)
	inactive := false
	ts.do(t, http.MethodPut, "/api/admin/mentors/"+hidden.ID, map[string]any{"is_active": &inactive}, nil)

	ts.token = ""
	var listing struct {
		Mentors []models.Mentor `json:"mentors"`
	}
	code := ts.do(t, http.MethodGet, "/api/mentors", nil, &listing)
	if code != http.StatusOK {
		t.Fatalf("list: %d", code)
	}
	if len(listing.Mentors) != 1 || listing.Mentors[0].ID != active.ID {
		t.Fatalf("public listing wrong: %+v", listing.Mentors)
	}

	if code := ts.do(t, http.MethodGet, "/api/mentors/"+hidden.Slug, nil, nil); code != http.StatusNotFound {
		t.Fatalf("hidden mentor should 404, got %d", code)
	}
	var m models.Mentor
	if code := ts.do(t, http.MethodGet, "/api/mentors/"+active.Slug, nil, &m); code != http.StatusOK || m.ID != active.ID {
		t.Fatalf("active mentor by slug: code=%d %+v", code, m)
	}
}

func TestSubmitValidationOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""
	code := ts.do(t, http.MethodPost, "/api/questions", map[string]string{
		"user_name": "", "user_email": "bad", "question_text": "",
	}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
