package session

import (
	"errors"
	"slices"

	"github.com/ecotravel/ecotravel-api/internal/models"
	"gorm.io/gorm"
)

var ErrSearchNotFound = errors.New("search history entry not found")

// SearchHistory lists recorded searches newest first.
func (s *Session) SearchHistory() ([]models.SearchHistoryEntry, error) {
	var entries []models.SearchHistoryEntry
	err := s.db.Where("session_id = ?", s.ID).Order("timestamp DESC, id DESC").Find(&entries).Error
	return entries, err
}

// searchEntry is the pure read behind restore; the stored snapshot is
// returned untouched.
func (s *Session) searchEntry(id string) (models.SearchHistoryEntry, error) {
	var entry models.SearchHistoryEntry
	err := s.db.Where("session_id = ? AND entry_id = ?", s.ID, id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entry, ErrSearchNotFound
	}
	return entry, err
}

// RestoreSearch reinstates a snapshot wholesale: preferences, results,
// transcript and the active search id all come from the entry, and the
// view switches to results. The stored entry itself is not modified or
// reordered.
func (s *Session) RestoreSearch(id string) (models.SearchHistoryEntry, error) {
	entry, err := s.searchEntry(id)
	if err != nil {
		return entry, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := entry.Preferences
	s.prefs = &p
	s.results = slices.Clone(entry.Results)
	s.transcript = slices.Clone(entry.ChatHistory)
	s.activeSearchID = entry.EntryID
	s.view = ViewResults

	return entry, nil
}
