package session

import (
	"github.com/ecotravel/ecotravel-api/internal/models"
)

// View is the top-level screen the client presents.
type View string

const (
	ViewForm    View = "form"
	ViewResults View = "results"
	ViewProfile View = "profile"
)

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// EditRequest reopens the form pre-filled with the last submitted
// preferences. Results and the active search id are kept.
func (s *Session) EditRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ViewForm
}

// NewSearch returns to the form and clears results, preferences and the
// active search id. The transcript is never cleared; the companion
// persona persists across searches.
func (s *Session) NewSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view = ViewForm
	s.results = nil
	s.prefs = nil
	// Cleared before the note below so it lands only in the live
	// transcript, not in the finished search's snapshot.
	s.activeSearchID = ""
	s.appendMessageLocked(models.RoleModel, "Starting fresh! Where to next?")
}

// ToggleProfile flips between the profile screen and the form.
func (s *Session) ToggleProfile() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == ViewProfile {
		s.view = ViewForm
	} else {
		s.view = ViewProfile
	}
	return s.view
}
