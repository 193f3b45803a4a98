package models

import (
	"gorm.io/gorm"
)

// BookingRecord is created on booking and never mutated or deleted.
// Listing order is reverse chronological (newest first).
type BookingRecord struct {
	gorm.Model  `json:"-"`
	SessionID   string  `gorm:"index" json:"-"`
	BookingID   string  `json:"id"`
	Destination string  `json:"destination"`
	BookedAt    int64   `json:"dateBooked" doc:"Unix milliseconds"`
	CO2Used     float64 `json:"co2Used"`
	Cost        string  `json:"cost"`
	TripTitle   string  `json:"tripTitle"`
}

// SavedTrip pins a generated TripOption to the profile. At most one row
// per (session, trip id); saving an already-saved trip is a no-op.
type SavedTrip struct {
	gorm.Model `json:"-"`
	SessionID  string     `gorm:"index:idx_saved_session_trip,unique" json:"-"`
	TripID     string     `gorm:"index:idx_saved_session_trip,unique" json:"-"`
	Trip       TripOption `gorm:"serializer:json" json:"trip"`
}
