package handlers

import (
	"context"

	"github.com/ecotravel/ecotravel-api/internal/models"
)

type ChatRequest struct {
	SessionInput
	Body struct {
		Text string `json:"text" required:"true" doc:"User message; blank input is ignored"`
	}
}

type ChatResponse struct {
	Body struct {
		Reply      *models.ChatMessage  `json:"reply,omitempty" doc:"Absent when the reply failed or the input was blank"`
		Transcript []models.ChatMessage `json:"transcript"`
	}
}

// HandleChat posts one user message. A failed collaborator reply is not
// an HTTP error: the user's message persists and the reply is simply
// absent.
func (h *SessionHandler) HandleChat(ctx context.Context, input *ChatRequest) (*ChatResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	reply, err := s.PostUserMessage(ctx, input.Body.Text)
	if err != nil {
		return nil, err
	}

	res := &ChatResponse{}
	res.Body.Reply = reply
	res.Body.Transcript = s.Transcript()
	return res, nil
}

type SuggestionsRequest struct {
	SessionInput
}

type SuggestionsResponse struct {
	Body struct {
		Suggestions []string `json:"suggestions"`
	}
}

func (h *SessionHandler) HandleSuggestions(ctx context.Context, input *SuggestionsRequest) (*SuggestionsResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	res := &SuggestionsResponse{}
	res.Body.Suggestions = s.Suggestions()
	return res, nil
}
