package session

import (
	"errors"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/ecotravel/ecotravel-api/internal/models"
	"github.com/ecotravel/ecotravel-api/internal/planner"
	"gorm.io/gorm"
)

const greeting = "Hey! 👋 I'm your EcoTravel Buddy. \n\nI'm here to help you plan the perfect trip and keep your footprint low. Where are you dreaming of going today?"

var quickReplies = []string{
	"Inspire me with eco-trips! 🌿",
	"How's my CO2 budget? 📉",
	"Why travel by train? 🚆",
	"Plan a weekend getaway",
}

// Session bundles the state of one client: preferences, results, chat
// transcript, view and the database-backed profile and history rows.
// The mutex protects the in-memory fields; it is deliberately not held
// across collaborator calls, so overlapping searches or chat sends race
// and the later response wins.
type Session struct {
	ID string

	db      *gorm.DB
	planner planner.Client

	mu             sync.Mutex
	view           View
	loading        bool
	typing         bool
	prefs          *models.TripPreferences
	results        []models.TripOption
	activeSearchID string
	transcript     []models.ChatMessage
	lastSearchMs   int64
}

// State is a consistent snapshot of everything the client renders.
type State struct {
	View              View                    `json:"view"`
	Loading           bool                    `json:"loading"`
	Typing            bool                    `json:"typing"`
	Preferences       *models.TripPreferences `json:"preferences,omitempty"`
	Results           []models.TripOption     `json:"results"`
	RecommendedTripID string                  `json:"recommendedTripId,omitempty"`
	ActiveSearchID    string                  `json:"activeSearchId,omitempty"`
	Transcript        []models.ChatMessage    `json:"transcript"`
	Suggestions       []string                `json:"suggestions,omitempty"`
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		View:              s.view,
		Loading:           s.loading,
		Typing:            s.typing,
		Results:           slices.Clone(s.results),
		RecommendedTripID: recommendedTripID(s.results),
		ActiveSearchID:    s.activeSearchID,
		Transcript:        slices.Clone(s.transcript),
		Suggestions:       s.suggestionsLocked(),
	}
	if s.prefs != nil {
		p := *s.prefs
		state.Preferences = &p
	}
	return state
}

// Suggestions returns the quick-reply prompts. They are offered only
// while the transcript holds at most the greeting and one more message;
// once the user has written, they are withdrawn for good.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestionsLocked()
}

func (s *Session) suggestionsLocked() []string {
	if len(s.transcript) > 2 {
		return nil
	}
	return slices.Clone(quickReplies)
}

func (s *Session) appendMessageLocked(role models.ChatRole, text string) models.ChatMessage {
	msg := models.ChatMessage{Role: role, Text: text, Timestamp: time.Now().UnixMilli()}
	s.transcript = append(s.transcript, msg)
	s.mirrorTranscriptLocked()
	return msg
}

// mirrorTranscriptLocked copies the live transcript into the search
// history entry matching the active search id, if one has been recorded.
// Only that entry receives live updates; all others stay frozen.
func (s *Session) mirrorTranscriptLocked() {
	if s.activeSearchID == "" {
		return
	}

	var entry models.SearchHistoryEntry
	err := s.db.Where("session_id = ? AND entry_id = ?", s.ID, s.activeSearchID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Entry not recorded yet; the snapshot taken at record time will
		// carry the transcript up to this point.
		return
	}
	if err != nil {
		log.Printf("session %s: failed to load active search entry: %v", s.ID, err)
		return
	}

	entry.ChatHistory = slices.Clone(s.transcript)
	if err := s.db.Save(&entry).Error; err != nil {
		log.Printf("session %s: failed to mirror transcript: %v", s.ID, err)
	}
}
