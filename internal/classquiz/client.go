// Package classquiz is a minimal client for the slice of the ClassQuiz HTTP
// API the operator tooling needs: account creation, the two-step PASSWORD
// login, quiz lookup, and the editor start/finish flow.
package classquiz

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
)

// Client talks to one ClassQuiz instance. Login stores the bearer token for
// subsequent calls; a Client is not safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New builds a client for the given base URL (scheme://host, without the
// /api/v1 suffix).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Login performs the two-step PASSWORD flow and keeps the access token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var start struct {
		SessionID string   `json:"session_id"`
		Step1     []string `json:"step_1"`
	}
	err := c.do(ctx, http.MethodPost, "/login/start", nil,
		map[string]string{"email": email}, &start)
	if err != nil {
		return fmt.Errorf("login start: %w", err)
	}

	hasPassword := false
	for _, method := range start.Step1 {
		if method == "PASSWORD" {
			hasPassword = true
			break
		}
	}
	if !hasPassword {
		return fmt.Errorf("account %s is not configured for PASSWORD login", email)
	}

	var step struct {
		AccessToken string `json:"access_token"`
	}
	query := url.Values{"session_id": {start.SessionID}}
	err = c.do(ctx, http.MethodPost, "/login/step/1", query,
		map[string]string{"auth_type": "PASSWORD", "data": password}, &step)
	if err != nil {
		return fmt.Errorf("login step 1: %w", err)
	}

	c.token = step.AccessToken
	return nil
}

// CreateUser registers one account. An already-registered username or email
// comes back as domain.ErrUserExists so callers can stay idempotent.
func (c *Client) CreateUser(ctx context.Context, user domain.DevUser) error {
	body := map[string]string{
		"username": user.Username,
		"email":    user.Email,
		"password": user.Password,
	}
	err := c.do(ctx, http.MethodPost, "/users/create", nil, body, nil)
	var status *statusError
	if errors.As(err, &status) && (status.Code == http.StatusBadRequest || status.Code == http.StatusConflict) {
		lower := strings.ToLower(status.Body)
		if strings.Contains(lower, "already") || strings.Contains(lower, "exists") {
			return domain.ErrUserExists
		}
	}
	return err
}

// FindQuizIDByTitle locates a quiz by exact title among the current user's
// quizzes. Missing titles return domain.ErrQuizNotFound; an ambiguous title
// is an error so a wrong quiz is never updated.
func (c *Client) FindQuizIDByTitle(ctx context.Context, title string) (string, error) {
	var quizzes []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	query := url.Values{"page_size": {"100"}, "page": {"1"}}
	if err := c.do(ctx, http.MethodGet, "/quiz/list", query, nil, &quizzes); err != nil {
		return "", fmt.Errorf("list quizzes: %w", err)
	}

	var matches []string
	for _, quiz := range quizzes {
		if quiz.Title == title {
			matches = append(matches, quiz.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: no quiz titled %q", domain.ErrQuizNotFound, title)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("multiple quizzes titled %q; pass --quiz-id to disambiguate", title)
	}
}

// GetQuiz fetches the full quiz document.
func (c *Client) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.do(ctx, http.MethodGet, "/quiz/get/"+quizID, nil, nil, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("get quiz %s: %w", quizID, err)
	}
	return quiz, nil
}

// UpdateQuiz pushes an edited quiz back through the editor API.
func (c *Client) UpdateQuiz(ctx context.Context, quizID string, quiz domain.Quiz) error {
	query := url.Values{"edit": {"true"}, "quiz_id": {quizID}}
	editID, err := c.startEditor(ctx, query)
	if err != nil {
		return err
	}
	return c.finishEditor(ctx, editID, quiz, nil)
}

// CreateQuiz creates a new quiz through the editor API and returns its ID.
func (c *Client) CreateQuiz(ctx context.Context, quiz domain.Quiz) (string, error) {
	editID, err := c.startEditor(ctx, url.Values{"edit": {"false"}})
	if err != nil {
		return "", err
	}

	var created struct {
		ID     string `json:"id"`
		QuizID string `json:"quiz_id"`
	}
	if err := c.finishEditor(ctx, editID, quiz, &created); err != nil {
		return "", err
	}
	quizID := created.ID
	if quizID == "" {
		quizID = created.QuizID
	}
	if quizID == "" {
		return "", fmt.Errorf("editor API did not return a quiz id after creation")
	}
	return quizID, nil
}

func (c *Client) startEditor(ctx context.Context, query url.Values) (string, error) {
	var started struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/editor/start", query, nil, &started); err != nil {
		return "", fmt.Errorf("editor start: %w", err)
	}
	return started.Token, nil
}

func (c *Client) finishEditor(ctx context.Context, editID string, quiz domain.Quiz, out any) error {
	// The finish endpoint accepts only the editable fields, never the id.
	input := struct {
		Public          bool                  `json:"public"`
		Title           string                `json:"title"`
		Description     string                `json:"description"`
		CoverImage      *string               `json:"cover_image"`
		BackgroundColor *string               `json:"background_color"`
		BackgroundImage *string               `json:"background_image"`
		Questions       []domain.QuizQuestion `json:"questions"`
	}{
		Public:          quiz.Public,
		Title:           quiz.Title,
		Description:     quiz.Description,
		CoverImage:      quiz.CoverImage,
		BackgroundColor: quiz.BackgroundColor,
		BackgroundImage: quiz.BackgroundImage,
		Questions:       quiz.Questions,
	}
	query := url.Values{"edit_id": {editID}}
	if err := c.do(ctx, http.MethodPost, "/editor/finish", query, input, out); err != nil {
		return fmt.Errorf("editor finish: %w", err)
	}
	return nil
}

// statusError is any non-2xx response, carrying enough of the body for
// callers to classify it.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}
