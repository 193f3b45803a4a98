package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ecotravel/ecotravel-api/internal/session"
)

// SessionInput carries the session id on every session-scoped operation.
type SessionInput struct {
	SessionID string `header:"X-Session-ID" required:"true" doc:"Session identifier returned by POST /sessions"`
}

type SessionHandler struct {
	sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) resolve(sessionID string) (*session.Session, error) {
	s, ok := h.sessions.Get(sessionID)
	if !ok {
		return nil, huma.Error404NotFound("Session not found or expired")
	}
	return s, nil
}

type CreateSessionRequest struct{}

type CreateSessionResponse struct {
	Body struct {
		SessionID string        `json:"session_id"`
		State     session.State `json:"state"`
	}
}

func (h *SessionHandler) HandleCreateSession(ctx context.Context, input *CreateSessionRequest) (*CreateSessionResponse, error) {
	s, err := h.sessions.Create()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to create session: " + err.Error())
	}

	res := &CreateSessionResponse{}
	res.Body.SessionID = s.ID
	res.Body.State = s.State()
	return res, nil
}

type StateRequest struct {
	SessionInput
}

type StateResponse struct {
	Body session.State
}

func (h *SessionHandler) HandleState(ctx context.Context, input *StateRequest) (*StateResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}
	return &StateResponse{Body: s.State()}, nil
}
