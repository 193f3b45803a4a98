package session

import (
	"context"
	"log"
	"slices"
	"strings"

	"github.com/ecotravel/ecotravel-api/internal/models"
)

// PostUserMessage appends the user's message immediately (visible before
// any reply arrives), then asks the chat collaborator for a response.
// A failed reply is logged and nothing is appended; unlike a failed
// search there is no error bubble. Blank input is ignored entirely.
func (s *Session) PostUserMessage(ctx context.Context, text string) (*models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	s.mu.Lock()
	history := slices.Clone(s.transcript)
	s.appendMessageLocked(models.RoleUser, text)
	s.typing = true
	trips := slices.Clone(s.results)
	view := s.view
	s.mu.Unlock()

	profile, err := s.Profile()
	if err != nil {
		log.Printf("session %s: failed to load profile for chat context: %v", s.ID, err)
	}

	reply, err := s.planner.SendChatMessage(ctx, history, text, trips, profile, string(view))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = false

	if err != nil {
		log.Printf("session %s: chat reply failed: %v", s.ID, err)
		return nil, nil
	}

	msg := s.appendMessageLocked(models.RoleModel, reply)
	return &msg, nil
}

func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transcript)
}
