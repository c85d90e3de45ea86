package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/zhubert/tutor/internal/errors"
)

// PrepareProfile asks the backend to build a learner profile. The response
// body is returned untouched so it can be passed to GenerateQuiz.
func (c *Client) PrepareProfile(ctx context.Context) (json.RawMessage, error) {
	const op errors.Op = "api.PrepareProfile"

	var raw json.RawMessage
	if err := c.do(ctx, op, http.MethodPost, "/quiz/prepare", nil, &raw); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.E(op, errors.KindDecode, "empty profile payload")
	}
	return raw, nil
}

// GenerateQuiz starts a quiz from a profile payload and returns its first question.
func (c *Client) GenerateQuiz(ctx context.Context, profile json.RawMessage) (Question, error) {
	var q Question
	if err := c.do(ctx, "api.GenerateQuiz", http.MethodPost, "/quiz/generate", profile, &q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// NextQuestion fetches the next question of the active quiz.
func (c *Client) NextQuestion(ctx context.Context) (Question, error) {
	var q Question
	if err := c.do(ctx, "api.NextQuestion", http.MethodGet, "/quiz/next", nil, &q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Answer submits a 1-based choice for the current question.
func (c *Client) Answer(ctx context.Context, choice int) (AnswerResult, error) {
	req := struct {
		Choice int `json:"choice"`
	}{choice}

	var r AnswerResult
	if err := c.do(ctx, "api.Answer", http.MethodPost, "/quiz/answer", req, &r); err != nil {
		return AnswerResult{}, err
	}
	return r, nil
}

// History returns every completed quiz, oldest first.
func (c *Client) History(ctx context.Context) ([]QuizSession, error) {
	var resp struct {
		History []QuizSession `json:"history"`
	}
	if err := c.do(ctx, "api.History", http.MethodGet, "/quiz/history", nil, &resp); err != nil {
		return nil, err
	}
	if resp.History == nil {
		resp.History = []QuizSession{}
	}
	return resp.History, nil
}
