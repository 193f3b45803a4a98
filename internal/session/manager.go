package session

import (
	"time"

	"github.com/ecotravel/ecotravel-api/internal/models"
	"github.com/ecotravel/ecotravel-api/internal/planner"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// Manager hands out sessions and expires idle ones. Everything a session
// owns lives either in its struct or in the in-memory database, so an
// evicted session is simply gone.
type Manager struct {
	db          *gorm.DB
	planner     planner.Client
	profileName string
	sessions    *cache.Cache
}

func NewManager(db *gorm.DB, client planner.Client, ttl time.Duration, profileName string) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{
		db:          db,
		planner:     client,
		profileName: profileName,
		sessions:    cache.New(ttl, 10*time.Minute),
	}
}

// Create seeds a new session: demo profile, two past bookings and the
// greeting that opens every transcript.
func (m *Manager) Create() (*Session, error) {
	s := &Session{
		ID:      uuid.NewString(),
		db:      m.db,
		planner: m.planner,
		view:    ViewForm,
	}

	if err := m.seed(s); err != nil {
		return nil, err
	}

	s.transcript = []models.ChatMessage{{
		Role:      models.RoleModel,
		Text:      greeting,
		Timestamp: time.Now().UnixMilli(),
	}}

	m.sessions.SetDefault(s.ID, s)
	return s, nil
}

// Get returns the session and refreshes its expiration (sliding TTL).
func (m *Manager) Get(id string) (*Session, bool) {
	v, ok := m.sessions.Get(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	m.sessions.SetDefault(id, s)
	return s, true
}

func (m *Manager) seed(s *Session) error {
	profile := models.UserProfile{
		SessionID:         s.ID,
		Name:              m.profileName,
		TotalCO2Used:      450,
		CO2Limit:          1500,
		YearlyBudgetLimit: 3000,
		CurrentSpend:      850,
	}
	if err := m.db.Create(&profile).Error; err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	seedBookings := []models.BookingRecord{
		{
			SessionID:   s.ID,
			BookingID:   "hist_1",
			Destination: "Amsterdam",
			BookedAt:    now - 1000000000,
			CO2Used:     45,
			Cost:        "120€",
			TripTitle:   "Train to Amsterdam",
		},
		{
			SessionID:   s.ID,
			BookingID:   "hist_2",
			Destination: "Barcelona",
			BookedAt:    now - 500000000,
			CO2Used:     405,
			Cost:        "730€",
			TripTitle:   "Summer Holiday Flight",
		},
	}
	return m.db.Create(&seedBookings).Error
}
