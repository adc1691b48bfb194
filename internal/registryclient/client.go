package registryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"quiz-registry/internal/registry"
)

var ErrServiceUnavailable = errors.New("quiz registry service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client talks to a registry service. The token, when set, is attached to
// every request as the caller identity; read-only calls work without one.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type addQuestionRequest struct {
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

type addQuestionResponse struct {
	QuestionID uint64 `json:"question_id"`
}

type questionItem struct {
	QuestionID uint64 `json:"question_id"`
	Text       string `json:"text"`
}

type questionsResponse struct {
	QuestionCount int            `json:"question_count"`
	Questions     []questionItem `json:"questions"`
}

type checkAnswerRequest struct {
	Answer string `json:"answer"`
}

type checkAnswerResponse struct {
	QuestionID uint64 `json:"question_id"`
	Correct    bool   `json:"correct"`
}

type grantEducatorRequest struct {
	Identity string `json:"identity"`
}

type powerResponse struct {
	Identity string `json:"identity"`
	Power    string `json:"power"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(baseURL, token string, httpClient *http.Client) *Client {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

func (c *Client) AddQuestion(ctx context.Context, text, answer string) (uint64, error) {
	request := addQuestionRequest{Text: text, Answer: answer}

	var payload addQuestionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/questions", request, &payload); err != nil {
		return 0, err
	}
	return payload.QuestionID, nil
}

func (c *Client) ListQuestions(ctx context.Context) ([]registry.PublicQuestion, error) {
	var payload questionsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/questions", nil, &payload); err != nil {
		return nil, err
	}

	questions := make([]registry.PublicQuestion, 0, len(payload.Questions))
	for _, item := range payload.Questions {
		questions = append(questions, registry.PublicQuestion{
			QuestionID: item.QuestionID,
			Text:       item.Text,
		})
	}
	return questions, nil
}

func (c *Client) GetQuestion(ctx context.Context, questionID uint64) (registry.PublicQuestion, error) {
	var payload questionItem
	path := "/questions/" + strconv.FormatUint(questionID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return registry.PublicQuestion{}, err
	}
	return registry.PublicQuestion{
		QuestionID: payload.QuestionID,
		Text:       payload.Text,
	}, nil
}

func (c *Client) CheckAnswer(ctx context.Context, questionID uint64, answer string) (bool, error) {
	request := checkAnswerRequest{Answer: answer}
	path := "/questions/" + strconv.FormatUint(questionID, 10) + "/check"

	var payload checkAnswerResponse
	if err := c.doJSON(ctx, http.MethodPost, path, request, &payload); err != nil {
		return false, err
	}
	return payload.Correct, nil
}

func (c *Client) Register(ctx context.Context) (registry.PowerLevel, error) {
	var payload powerResponse
	if err := c.doJSON(ctx, http.MethodPost, "/register", nil, &payload); err != nil {
		return registry.PowerUnregistered, err
	}
	return registry.ParsePowerLevel(payload.Power), nil
}

func (c *Client) GrantEducator(ctx context.Context, identity string) error {
	return c.doJSON(ctx, http.MethodPost, "/educators", grantEducatorRequest{Identity: identity}, nil)
}

func (c *Client) Power(ctx context.Context) (registry.PowerLevel, error) {
	var payload powerResponse
	if err := c.doJSON(ctx, http.MethodGet, "/power", nil, &payload); err != nil {
		return registry.PowerUnregistered, err
	}
	return registry.ParsePowerLevel(payload.Power), nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		request.Header.Set("X-Caller-Token", c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
