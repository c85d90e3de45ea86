package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/zhubert/tutor/internal/errors"
)

// CreateSession asks the backend for a new, empty session and returns its id.
func (c *Client) CreateSession(ctx context.Context) (string, error) {
	const op errors.Op = "api.CreateSession"

	var resp struct {
		SessionID string `json:"session_id"`
		ID        string `json:"id"`
	}
	if err := c.do(ctx, op, http.MethodPost, "/sessions/new", nil, &resp); err != nil {
		return "", err
	}
	id := resp.SessionID
	if id == "" {
		id = resp.ID
	}
	if id == "" {
		return "", errors.E(op, errors.KindDecode, "response has no session_id")
	}
	c.log.Info("session created", "sessionID", id)
	return id, nil
}

// ListSessions returns the sessions in the order the backend reports them,
// oldest first.
func (c *Client) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	var resp struct {
		Sessions []SessionSummary `json:"sessions"`
	}
	if err := c.do(ctx, "api.ListSessions", http.MethodGet, "/sessions", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Sessions == nil {
		resp.Sessions = []SessionSummary{}
	}
	return resp.Sessions, nil
}

// sessionNotFoundMessage is the error text the backend sends for an unknown session.
const sessionNotFoundMessage = "Session not found"

// GetTranscript loads the messages of one session.
func (c *Client) GetTranscript(ctx context.Context, id string) (Transcript, error) {
	const op errors.Op = "api.GetTranscript"
	var t Transcript
	if err := c.do(ctx, op, http.MethodGet, "/sessions/"+url.PathEscape(id), nil, &t); err != nil {
		// The backend reports unknown sessions in the error envelope
		if errors.Is(err, errors.KindBackend) && strings.Contains(err.Error(), sessionNotFoundMessage) {
			return Transcript{}, errors.SessionNotFound(op, id)
		}
		return Transcript{}, err
	}
	if t.SessionID == "" {
		t.SessionID = id
	}
	if t.Messages == nil {
		t.Messages = []Message{}
	}
	return t, nil
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, "api.DeleteSession", http.MethodDelete, "/sessions/"+url.PathEscape(id), nil, nil)
}

// Chat sends a user message and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, sessionID, message string) (string, error) {
	req := struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}{sessionID, message}

	var resp struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, "api.Chat", http.MethodPost, "/chat", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
