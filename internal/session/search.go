package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"time"

	"github.com/ecotravel/ecotravel-api/internal/models"
	"github.com/samber/lo"
)

var ErrSearchInFlight = errors.New("a search is already in progress")

// SubmitSearch runs one search end to end: transient "searching" chat
// message, trip-generation call, then either results + history snapshot
// + switch to the results view, or an apology message with all prior
// state left intact. Failures are not retried.
func (s *Session) SubmitSearch(ctx context.Context, prefs models.TripPreferences) ([]models.TripOption, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.loading {
		// The form is only submittable while no search is in flight.
		s.mu.Unlock()
		return nil, ErrSearchInFlight
	}
	s.loading = true
	p := prefs
	s.prefs = &p
	s.appendMessageLocked(models.RoleModel, fmt.Sprintf("Awesome! I'm looking for the best routes from %s to %s for you... 🌍", prefs.Origin, prefs.Destination))
	s.mu.Unlock()

	options, err := s.planner.GenerateTripOptions(ctx, prefs)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	if err != nil {
		// Prior results stay untouched and the view does not switch.
		s.appendMessageLocked(models.RoleModel, "Oof, I hit a snag trying to find those trips. Mind checking your internet or trying again?")
		return nil, err
	}

	// An empty option list is zero results, not an error.
	s.results = options
	s.activeSearchID = s.nextSearchIDLocked()
	s.appendMessageLocked(models.RoleModel, fmt.Sprintf("I found %d great options! Check them out on the left. Option 1 is super green! 🌱", len(options)))

	entry := models.SearchHistoryEntry{
		SessionID:   s.ID,
		EntryID:     s.activeSearchID,
		Timestamp:   time.Now().UnixMilli(),
		Preferences: prefs,
		Results:     slices.Clone(options),
		ChatHistory: slices.Clone(s.transcript),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("session %s: failed to record search history: %v", s.ID, err)
	}

	s.view = ViewResults
	return options, nil
}

// nextSearchIDLocked derives a time-based id, unique within the session
// even when two searches complete in the same millisecond.
func (s *Session) nextSearchIDLocked() string {
	ms := time.Now().UnixMilli()
	if ms <= s.lastSearchMs {
		ms = s.lastSearchMs + 1
	}
	s.lastSearchMs = ms
	return strconv.FormatInt(ms, 10)
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// RecommendedTripID is recomputed from the current results on every
// read, never cached.
func (s *Session) RecommendedTripID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recommendedTripID(s.results)
}

// recommendedTripID picks the option with the highest sustainability
// score; on a tie the first occurrence wins.
func recommendedTripID(trips []models.TripOption) string {
	if len(trips) == 0 {
		return ""
	}
	best := lo.MaxBy(trips, func(a, b models.TripOption) bool {
		return a.SustainabilityScore > b.SustainabilityScore
	})
	return best.ID
}
