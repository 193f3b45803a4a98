package planner

import (
	"context"

	"github.com/ecotravel/ecotravel-api/internal/models"
)

// Mock is a configurable stand-in for tests. It records the context of
// the last chat call so tests can assert on what was forwarded.
type Mock struct {
	Options []models.TripOption
	Reply   string

	GenerateErr error
	ChatErr     error

	LastChatHistory []models.ChatMessage
	LastChatMessage string
	LastChatTrips   []models.TripOption
	LastChatView    string
}

var _ Client = (*Mock)(nil)

func (m *Mock) GenerateTripOptions(_ context.Context, _ models.TripPreferences) ([]models.TripOption, error) {
	if m.GenerateErr != nil {
		return nil, m.GenerateErr
	}
	return m.Options, nil
}

func (m *Mock) SendChatMessage(_ context.Context, history []models.ChatMessage, newMessage string, trips []models.TripOption, _ models.UserProfile, view string) (string, error) {
	m.LastChatHistory = history
	m.LastChatMessage = newMessage
	m.LastChatTrips = trips
	m.LastChatView = view
	if m.ChatErr != nil {
		return "", m.ChatErr
	}
	return m.Reply, nil
}
