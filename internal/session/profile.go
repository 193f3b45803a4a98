package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ecotravel/ecotravel-api/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var ErrTripNotFound = errors.New("trip not found in current results")

func (s *Session) Profile() (models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Where("session_id = ?", s.ID).First(&profile).Error
	return profile, err
}

// Bookings lists booking records newest first.
func (s *Session) Bookings() ([]models.BookingRecord, error) {
	var bookings []models.BookingRecord
	err := s.db.Where("session_id = ?", s.ID).Order("booked_at DESC, id DESC").Find(&bookings).Error
	return bookings, err
}

// SavedTrips lists saved trips newest first.
func (s *Session) SavedTrips() ([]models.TripOption, error) {
	var rows []models.SavedTrip
	if err := s.db.Where("session_id = ?", s.ID).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r models.SavedTrip, _ int) models.TripOption {
		return r.Trip
	}), nil
}

// BookTrip books an option from the current results: cumulative CO2 and
// spend go up, a booking record is prepended, a celebratory message is
// appended and the view switches to profile. This is the only store
// mutation that switches views.
func (s *Session) BookTrip(tripID string) (*models.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := lo.Find(s.results, func(t models.TripOption) bool { return t.ID == tripID })
	if !ok {
		return nil, ErrTripNotFound
	}

	destination := trip.Title
	if s.prefs != nil {
		destination = s.prefs.Destination
	}

	var profile models.UserProfile
	if err := s.db.Where("session_id = ?", s.ID).First(&profile).Error; err != nil {
		return nil, err
	}
	profile.TotalCO2Used += trip.TotalCO2Kg
	profile.CurrentSpend += float64(extractCost(trip.CostEstimate))
	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	record := models.BookingRecord{
		SessionID:   s.ID,
		BookingID:   fmt.Sprintf("booking_%d", now),
		Destination: destination,
		BookedAt:    now,
		CO2Used:     trip.TotalCO2Kg,
		Cost:        trip.CostEstimate,
		TripTitle:   trip.Title,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	s.appendMessageLocked(models.RoleModel, fmt.Sprintf("Woohoo! 🎉 %q is booked. I've added it to your dashboard. Your carbon footprint for this trip is %gkg.", trip.Title, trip.TotalCO2Kg))
	s.view = ViewProfile

	return &record, nil
}

// SaveTrip pins an option from the current results. Saving an
// already-saved id is a no-op.
func (s *Session) SaveTrip(tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := lo.Find(s.results, func(t models.TripOption) bool { return t.ID == tripID })
	if !ok {
		return ErrTripNotFound
	}

	var existing models.SavedTrip
	err := s.db.Where("session_id = ? AND trip_id = ?", s.ID, trip.ID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	saved := models.SavedTrip{SessionID: s.ID, TripID: trip.ID, Trip: trip}
	if err := s.db.Create(&saved).Error; err != nil {
		return err
	}

	s.appendMessageLocked(models.RoleModel, fmt.Sprintf("I've saved %q for later. You can find it in your dashboard!", trip.Title))
	return nil
}

// UpdateLimits replaces both limits directly. There is no bounds check:
// a limit below current usage is a supported over-limit state.
func (s *Session) UpdateLimits(co2Limit, budgetLimit float64) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.Where("session_id = ?", s.ID).First(&profile).Error; err != nil {
		return profile, err
	}

	profile.CO2Limit = co2Limit
	profile.YearlyBudgetLimit = budgetLimit
	err := s.db.Save(&profile).Error
	return profile, err
}

// extractCost takes the first run of digits in a free-text cost
// estimate, so "120-150€" books as 120. No digits means zero.
func extractCost(estimate string) int {
	start := -1
	for i, r := range estimate {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(estimate[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(estimate[start:])
		return n
	}
	return 0
}
