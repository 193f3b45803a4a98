package models

import (
	"gorm.io/gorm"
)

// SearchHistoryEntry snapshots one completed search: the request, the
// returned options and the transcript at completion time. Entries are
// immutable once recorded, with one exception: the entry matching the
// active search id keeps receiving live transcript updates so that a
// later restore reproduces the transcript exactly.
type SearchHistoryEntry struct {
	gorm.Model  `json:"-"`
	SessionID   string          `gorm:"index" json:"-"`
	EntryID     string          `gorm:"index" json:"id" doc:"Derived from creation time (unix ms)"`
	Timestamp   int64           `json:"timestamp"`
	Preferences TripPreferences `gorm:"serializer:json" json:"preferences"`
	Results     []TripOption    `gorm:"serializer:json" json:"results"`
	ChatHistory []ChatMessage   `gorm:"serializer:json" json:"chatHistory"`
}
