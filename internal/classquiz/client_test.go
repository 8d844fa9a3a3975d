package classquiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
)

// fakeAPI implements just enough of the ClassQuiz API for the client tests.
type fakeAPI struct {
	t           *testing.T
	quizzes     []map[string]string
	quiz        domain.Quiz
	finished    map[string]any
	finishCalls int
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	// Method-prefixed patterns ("POST /path") need go1.22; emulate them so
	// the fake works on the go1.21 toolchain this module builds with.
	route := func(method, pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			h(w, r)
		})
	}
	route("POST", "/api/v1/login/start", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"session_id": "sess-1",
			"step_1":     []string{"PASSWORD"},
		})
	})
	route("POST", "/api/v1/login/step/1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("session_id") != "sess-1" {
			http.Error(w, "bad session", http.StatusBadRequest)
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["auth_type"] != "PASSWORD" || body["data"] != "DevPass123!" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	route("POST", "/api/v1/users/create", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] == "Amal" {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	route("GET", "/api/v1/quiz/list", func(w http.ResponseWriter, r *http.Request) {
		f.requireAuth(w, r)
		json.NewEncoder(w).Encode(f.quizzes)
	})
	route("GET", "/api/v1/quiz/get/", func(w http.ResponseWriter, r *http.Request) {
		f.requireAuth(w, r)
		json.NewEncoder(w).Encode(f.quiz)
	})
	route("POST", "/api/v1/editor/start", func(w http.ResponseWriter, r *http.Request) {
		f.requireAuth(w, r)
		json.NewEncoder(w).Encode(map[string]string{"token": "edit-1"})
	})
	route("POST", "/api/v1/editor/finish", func(w http.ResponseWriter, r *http.Request) {
		f.requireAuth(w, r)
		if r.URL.Query().Get("edit_id") != "edit-1" {
			http.Error(w, "bad edit id", http.StatusBadRequest)
			return
		}
		f.finishCalls++
		json.NewDecoder(r.Body).Decode(&f.finished)
		json.NewEncoder(w).Encode(map[string]string{"id": "quiz-new"})
	})
	return mux
}

func (f *fakeAPI) requireAuth(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer tok-1" {
		f.t.Errorf("missing bearer token on %s", r.URL.Path)
	}
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	api.t = t
	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)
	return New(server.URL)
}

func TestLoginStoresToken(t *testing.T) {
	client := newTestClient(t, &fakeAPI{})

	if err := client.Login(context.Background(), "monty.classquiz@gmail.com", "DevPass123!"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if client.token != "tok-1" {
		t.Fatalf("expected token stored, got %q", client.token)
	}
}

func TestCreateUserExistingIsTolerated(t *testing.T) {
	client := newTestClient(t, &fakeAPI{})

	err := client.CreateUser(context.Background(), domain.DevUser{Username: "Amal", Email: "a@x"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	if err := client.CreateUser(context.Background(), domain.DevUser{Username: "Monty", Email: "m@x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestFindQuizIDByTitle(t *testing.T) {
	api := &fakeAPI{quizzes: []map[string]string{
		{"id": "q-1", "title": "Connection Test Quiz"},
		{"id": "q-2", "title": "Session 1 Quiz"},
		{"id": "q-3", "title": "Session 1 Quiz"},
	}}
	client := newTestClient(t, api)
	mustLogin(t, client)

	id, err := client.FindQuizIDByTitle(context.Background(), "Connection Test Quiz")
	if err != nil || id != "q-1" {
		t.Fatalf("expected q-1, got id=%q err=%v", id, err)
	}

	if _, err := client.FindQuizIDByTitle(context.Background(), "Missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}

	if _, err := client.FindQuizIDByTitle(context.Background(), "Session 1 Quiz"); err == nil {
		t.Fatalf("ambiguous title must error")
	}
}

func TestUpdateQuizPushesEditableFieldsOnly(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)
	mustLogin(t, client)

	quiz := domain.Quiz{
		ID:    "q-1",
		Title: "Session 1 Quiz",
		Questions: []domain.QuizQuestion{
			{Question: "What prints?", Time: "60", Type: "ABCD"},
		},
	}
	if err := client.UpdateQuiz(context.Background(), "q-1", quiz); err != nil {
		t.Fatalf("update: %v", err)
	}
	if api.finishCalls != 1 {
		t.Fatalf("expected one editor finish, got %d", api.finishCalls)
	}
	if _, ok := api.finished["id"]; ok {
		t.Fatalf("quiz id must not be part of the editor payload: %v", api.finished)
	}
	if api.finished["title"] != "Session 1 Quiz" {
		t.Fatalf("unexpected payload: %v", api.finished)
	}
}

func TestCreateQuizReturnsID(t *testing.T) {
	client := newTestClient(t, &fakeAPI{})
	mustLogin(t, client)

	id, err := client.CreateQuiz(context.Background(), domain.Quiz{Title: "Connection Test Quiz"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if id != "quiz-new" {
		t.Fatalf("expected quiz-new, got %q", id)
	}
}

func mustLogin(t *testing.T, client *Client) {
	t.Helper()
	if err := client.Login(context.Background(), "monty.classquiz@gmail.com", "DevPass123!"); err != nil {
		t.Fatalf("login: %v", err)
	}
}
