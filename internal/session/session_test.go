package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecotravel/ecotravel-api/internal/models"
	"github.com/ecotravel/ecotravel-api/internal/planner"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestManager(t *testing.T, mock planner.Client) *Manager {
	t.Helper()

	// Setup in-memory DB
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&models.UserProfile{}, &models.BookingRecord{}, &models.SavedTrip{}, &models.SearchHistoryEntry{})
	if err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}

	return NewManager(db, mock, time.Hour, "Alex")
}

func newTestSession(t *testing.T, mock planner.Client) *Session {
	t.Helper()

	s, err := newTestManager(t, mock).Create()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return s
}

func samplePrefs() models.TripPreferences {
	return models.TripPreferences{
		Origin:      "Berlin",
		Destination: "Lisbon",
		Dates:       "June",
		Budget:      "500€",
		Travelers:   2,
		Interests:   "hiking",
	}
}

func sampleTrips() []models.TripOption {
	return []models.TripOption{
		{
			ID:                  "eco-1",
			Title:               "Night Train to Lisbon",
			TransportMode:       models.TransportTrain,
			TransportCO2Kg:      32,
			TotalCO2Kg:          95,
			DurationHours:       26,
			CostEstimate:        "120-150€",
			SustainabilityScore: 92,
			Accommodation:       models.Accommodation{Name: "Casa Verde Eco-Lodge", Type: "Eco-Lodge"},
		},
		{
			ID:                  "fast-1",
			Title:               "Direct Flight",
			TransportMode:       models.TransportFlight,
			TransportCO2Kg:      380,
			TotalCO2Kg:          470,
			DurationHours:       4,
			CostEstimate:        "210€",
			SustainabilityScore: 30,
			Accommodation:       models.Accommodation{Name: "City Business Hotel", Type: "Hotel"},
		},
		{
			ID:                  "balanced-1",
			Title:               "Bus and Coastal Train",
			TransportMode:       models.TransportMixed,
			TransportCO2Kg:      85,
			TotalCO2Kg:          160,
			DurationHours:       18,
			CostEstimate:        "from €95",
			SustainabilityScore: 75,
			Accommodation:       models.Accommodation{Name: "Harbour Hostel", Type: "Hostel"},
		},
	}
}

func TestSubmitSearch_Success(t *testing.T) {
	mock := &planner.Mock{Options: sampleTrips()}
	s := newTestSession(t, mock)

	results, err := s.SubmitSearch(context.Background(), samplePrefs())
	if err != nil {
		t.Fatalf("SubmitSearch returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	state := s.State()
	if state.View != ViewResults {
		t.Errorf("expected view %q, got %q", ViewResults, state.View)
	}
	if state.Loading {
		t.Error("expected loading to be cleared")
	}
	if state.ActiveSearchID == "" {
		t.Fatal("expected an active search id")
	}
	if state.Preferences == nil || state.Preferences.Destination != "Lisbon" {
		t.Errorf("expected preferences to be stored, got %+v", state.Preferences)
	}

	// Transcript: greeting, "searching" note, success note.
	if len(state.Transcript) != 3 {
		t.Fatalf("expected 3 transcript messages, got %d", len(state.Transcript))
	}

	entries, err := s.SearchHistory()
	if err != nil {
		t.Fatalf("SearchHistory returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	if entries[0].EntryID != state.ActiveSearchID {
		t.Errorf("expected history entry id %q to match active search id %q", entries[0].EntryID, state.ActiveSearchID)
	}
	if entries[0].Preferences != samplePrefs() {
		t.Errorf("history entry preferences mismatch: %+v", entries[0].Preferences)
	}
	if len(entries[0].Results) != 3 {
		t.Errorf("expected 3 results in history entry, got %d", len(entries[0].Results))
	}
}

func TestSubmitSearch_ValidationNeverReachesStore(t *testing.T) {
	mock := &planner.Mock{Options: sampleTrips()}
	s := newTestSession(t, mock)

	prefs := samplePrefs()
	prefs.Origin = ""

	if _, err := s.SubmitSearch(context.Background(), prefs); err == nil {
		t.Fatal("expected validation error")
	}

	state := s.State()
	if state.View != ViewForm {
		t.Errorf("expected view to stay %q, got %q", ViewForm, state.View)
	}
	if len(state.Transcript) != 1 {
		t.Errorf("expected transcript untouched (1 message), got %d", len(state.Transcript))
	}
}

func TestSubmitSearch_FailureKeepsPriorState(t *testing.T) {
	mock := &planner.Mock{Options: sampleTrips()}
	s := newTestSession(t, mock)

	if _, err := s.SubmitSearch(context.Background(), samplePrefs()); err != nil {
		t.Fatalf("first SubmitSearch returned error: %v", err)
	}
	before := s.State()

	mock.GenerateErr = errors.New("model unavailable")
	if _, err := s.SubmitSearch(context.Background(), samplePrefs()); err == nil {
		t.Fatal("expected error from failing search")
	}

	after := s.State()
	if after.Loading {
		t.Error("expected loading to be cleared after failure")
	}
	if len(after.Results) != len(before.Results) {
		t.Errorf("expected prior results untouched, got %d", len(after.Results))
	}
	if after.View != before.View {
		t.Errorf("expected view unchanged, got %q", after.View)
	}
	if after.ActiveSearchID != before.ActiveSearchID {
		t.Error("expected active search id unchanged")
	}

	// The failing attempt adds its "searching" note and an apology.
	if len(after.Transcript) != len(before.Transcript)+2 {
		t.Fatalf("expected %d transcript messages, got %d", len(before.Transcript)+2, len(after.Transcript))
	}

	entries, _ := s.SearchHistory()
	if len(entries) != 1 {
		t.Errorf("expected no history entry for the failed search, got %d entries", len(entries))
	}
}

func TestSubmitSearch_EmptyResultIsNotAnError(t *testing.T) {
	mock := &planner.Mock{Options: nil}
	s := newTestSession(t, mock)

	results, err := s.SubmitSearch(context.Background(), samplePrefs())
	if err != nil {
		t.Fatalf("SubmitSearch returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected zero results, got %d", len(results))
	}
	if s.View() != ViewResults {
		t.Errorf("expected view %q, got %q", ViewResults, s.View())
	}
	if s.RecommendedTripID() != "" {
		t.Errorf("expected no recommended trip, got %q", s.RecommendedTripID())
	}
}

func TestRecommendedTripID(t *testing.T) {
	t.Run("HighestScoreWins", func(t *testing.T) {
		if got := recommendedTripID(sampleTrips()); got != "eco-1" {
			t.Errorf("expected eco-1, got %q", got)
		}
	})

	t.Run("FirstOccurrenceWinsTies", func(t *testing.T) {
		trips := []models.TripOption{
			{ID: "a", SustainabilityScore: 80},
			{ID: "b", SustainabilityScore: 80},
			{ID: "c", SustainabilityScore: 40},
		}
		if got := recommendedTripID(trips); got != "a" {
			t.Errorf("expected a, got %q", got)
		}
	})

	t.Run("EmptyList", func(t *testing.T) {
		if got := recommendedTripID(nil); got != "" {
			t.Errorf("expected empty id, got %q", got)
		}
	})
}

func TestPostUserMessage(t *testing.T) {
	mock := &planner.Mock{Reply: "Trains are the move! 🚆"}
	s := newTestSession(t, mock)

	reply, err := s.PostUserMessage(context.Background(), "Why travel by train?")
	if err != nil {
		t.Fatalf("PostUserMessage returned error: %v", err)
	}
	if reply == nil || reply.Text != mock.Reply {
		t.Fatalf("expected assistant reply, got %+v", reply)
	}

	transcript := s.Transcript()
	if len(transcript) != 3 {
		t.Fatalf("expected 3 transcript messages, got %d", len(transcript))
	}
	if transcript[1].Role != models.RoleUser {
		t.Errorf("expected optimistic user message at index 1, got role %q", transcript[1].Role)
	}
	if transcript[2].Role != models.RoleModel {
		t.Errorf("expected assistant reply at index 2, got role %q", transcript[2].Role)
	}
	if s.Typing() {
		t.Error("expected typing indicator cleared")
	}

	// Context forwarded to the collaborator.
	if mock.LastChatView != string(ViewForm) {
		t.Errorf("expected view %q forwarded, got %q", ViewForm, mock.LastChatView)
	}
	if mock.LastChatMessage != "Why travel by train?" {
		t.Errorf("unexpected message forwarded: %q", mock.LastChatMessage)
	}
	if len(mock.LastChatHistory) != 1 {
		t.Errorf("expected history of 1 (greeting) before the new turn, got %d", len(mock.LastChatHistory))
	}
}

func TestPostUserMessage_BlankIsNoOp(t *testing.T) {
	mock := &planner.Mock{Reply: "should never be used"}
	s := newTestSession(t, mock)

	reply, err := s.PostUserMessage(context.Background(), "   ")
	if err != nil {
		t.Fatalf("PostUserMessage returned error: %v", err)
	}
	if reply != nil {
		t.Fatalf("expected no reply, got %+v", reply)
	}
	if len(s.Transcript()) != 1 {
		t.Errorf("expected transcript untouched, got %d messages", len(s.Transcript()))
	}
}

func TestPostUserMessage_FailureIsSilent(t *testing.T) {
	mock := &planner.Mock{ChatErr: errors.New("model unavailable")}
	s := newTestSession(t, mock)

	before := len(s.Transcript())
	reply, err := s.PostUserMessage(context.Background(), "hello?")
	if err != nil {
		t.Fatalf("expected silent failure, got error: %v", err)
	}
	if reply != nil {
		t.Fatalf("expected no reply on failure, got %+v", reply)
	}

	// Only the user's own message persists.
	transcript := s.Transcript()
	if len(transcript) != before+1 {
		t.Fatalf("expected %d transcript messages, got %d", before+1, len(transcript))
	}
	if transcript[len(transcript)-1].Role != models.RoleUser {
		t.Errorf("expected last message to be the user's, got role %q", transcript[len(transcript)-1].Role)
	}
	if s.Typing() {
		t.Error("expected typing indicator cleared")
	}
}

func TestSuggestionsWithdrawnAfterFirstExchange(t *testing.T) {
	mock := &planner.Mock{Reply: "Sure thing!"}
	s := newTestSession(t, mock)

	if got := s.Suggestions(); len(got) != 4 {
		t.Fatalf("expected 4 suggestions on a fresh transcript, got %d", len(got))
	}

	if _, err := s.PostUserMessage(context.Background(), "Plan a weekend getaway"); err != nil {
		t.Fatalf("PostUserMessage returned error: %v", err)
	}

	if got := s.Suggestions(); got != nil {
		t.Errorf("expected suggestions withdrawn, got %v", got)
	}
}

func TestBookTrip(t *testing.T) {
	mock := &planner.Mock{Options: sampleTrips()}
	s := newTestSession(t, mock)

	if _, err := s.SubmitSearch(context.Background(), samplePrefs()); err != nil {
		t.Fatalf("SubmitSearch returned error: %v", err)
	}

	// Seeded profile: 450kg used of 1500, 850 spent of 3000, 2 bookings.
	record, err := s.BookTrip("eco-1")
	if err != nil {
		t.Fatalf("BookTrip returned error: %v", err)
	}

	if record.Destination != "Lisbon" {
		t.Errorf("expected destination Lisbon, got %q", record.Destination)
	}
	if record.CO2Used != 95 {
		t.Errorf("expected 95kg CO2, got %g", record.CO2Used)
	}

	profile, err := s.Profile()
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.TotalCO2Used != 545 {
		t.Errorf("expected 545kg total CO2, got %g", profile.TotalCO2Used)
	}
	// Cost extraction: "120-150€" books as 120.
	if profile.CurrentSpend != 970 {
		t.Errorf("expected spend 970, got %g", profile.CurrentSpend)
	}

	bookings, err := s.Bookings()
	if err != nil {
		t.Fatalf("Bookings returned error: %v", err)
	}
	if len(bookings) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(bookings))
	}
	if bookings[0].BookingID != record.BookingID {
		t.Errorf("expected newest booking first, got %q", bookings[0].BookingID)
	}

	if s.View() != ViewProfile {
		t.Errorf("expected booking to switch view to %q, got %q", ViewProfile, s.View())
	}
}

func TestBookTrip_AdditiveAndOrderPreserving(t *testing.T) {
	mock := &planner.Mock{Options: sampleTrips()}
	s := newTestSession(t, mock)

	if _, err := s.SubmitSearch(context.Background(), samplePrefs()); err != nil {
		t.Fatalf("SubmitSearch returned error: %v", err)
	}

	first, err := s.BookTrip("eco-1")
	if err != nil {
		t.Fatalf("first BookTrip returned error: %v", err)
	}
	second, err := s.BookTrip("fast-1")
	if err != nil {
		t.Fatalf("second BookTrip returned error: %v", err)
	}

	profile, _ := s.Profile()
	if profile.TotalCO2Used != 450+95+470 {
		t.Errorf("expected cumulative CO2 %g, got %g", float64(450+95+470), profile.TotalCO2Used)
	}

	bookings, _ := s.Bookings()
	if len(bookings) != 4 {
		t.Fatalf("expected 4 bookings, got %d", len(bookings))
	}
	if bookings[0].BookingID != second.BookingID || bookings[1].BookingID != first.BookingID {
		t.Error("expected bookings in reverse chronological order")
	}
}

func TestSaveTrip_Idempotent(t *testing.T) {
	mock := &planner.Mock{Options: sampleTrips()}
	s := newTestSession(t, mock)

	if _, err := s.SubmitSearch(context.Background(), samplePrefs()); err != nil {
		t.Fatalf("SubmitSearch returned error: %v", err)
	}

	if err := s.SaveTrip("balanced-1"); err != nil {
		t.Fatalf("first SaveTrip returned error: %v", err)
	}
	transcriptAfterFirst := len(s.Transcript())

	if err := s.SaveTrip("balanced-1"); err != nil {
		t.Fatalf("second SaveTrip returned error: %v", err)
	}

	saved, err := s.SavedTrips()
	if err != nil {
		t.Fatalf("SavedTrips returned error: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved trip, got %d", len(saved))
	}
	if saved[0].ID != "balanced-1" {
		t.Errorf("expected balanced-1 saved, got %q", saved[0].ID)
	}

	// The duplicate save adds no confirmation message either.
	if len(s.Transcript()) != transcriptAfterFirst {
		t.Error("expected no transcript change on duplicate save")
	}
}

func TestUpdateLimits_OverLimitState(t *testing.T) {
	mock := &planner.Mock{}
	s := newTestSession(t, mock)

	profile, err := s.UpdateLimits(300, 500)
	if err != nil {
		t.Fatalf("UpdateLimits returned error: %v", err)
	}

	usage := profile.Usage()
	if usage.CO2Ratio != 150 {
		t.Errorf("expected raw CO2 ratio 150, got %g", usage.CO2Ratio)
	}
	if usage.CO2Percent != 100 {
		t.Errorf("expected display CO2 percent clamped at 100, got %g", usage.CO2Percent)
	}
	if !usage.CO2OverLimit {
		t.Error("expected CO2 over-limit state")
	}
	if usage.BudgetRatio != 170 {
		t.Errorf("expected raw budget ratio 170, got %g", usage.BudgetRatio)
	}
	if !usage.BudgetOverLimit {
		t.Error("expected budget over-limit state")
	}
}

func TestRestoreSearch(t *testing.T) {
	mock := &planner.Mock{Options: sampleTrips(), Reply: "eco-1 is the green pick!"}
	s := newTestSession(t, mock)

	if _, err := s.SubmitSearch(context.Background(), samplePrefs()); err != nil {
		t.Fatalf("SubmitSearch returned error: %v", err)
	}
	searchID := s.State().ActiveSearchID

	// Chat after the search is mirrored into the active entry.
	if _, err := s.PostUserMessage(context.Background(), "Which one is greenest?"); err != nil {
		t.Fatalf("PostUserMessage returned error: %v", err)
	}
	snapshotLen := len(s.Transcript())

	// Mutate the live stores afterwards.
	s.NewSearch()
	if len(s.State().Results) != 0 || s.State().ActiveSearchID != "" {
		t.Fatal("expected new search to clear results and active id")
	}

	entry, err := s.RestoreSearch(searchID)
	if err != nil {
		t.Fatalf("RestoreSearch returned error: %v", err)
	}

	state := s.State()
	if state.View != ViewResults {
		t.Errorf("expected view %q, got %q", ViewResults, state.View)
	}
	if state.ActiveSearchID != searchID {
		t.Errorf("expected active search id %q, got %q", searchID, state.ActiveSearchID)
	}
	if state.Preferences == nil || *state.Preferences != samplePrefs() {
		t.Errorf("expected restored preferences, got %+v", state.Preferences)
	}
	if len(state.Results) != 3 {
		t.Errorf("expected 3 restored results, got %d", len(state.Results))
	}

	// The snapshot carries the transcript as of the last mirrored update,
	// not the "Starting fresh" note added after the id was cleared.
	if len(state.Transcript) != snapshotLen {
		t.Errorf("expected %d transcript messages, got %d", snapshotLen, len(state.Transcript))
	}
	if len(entry.ChatHistory) != snapshotLen {
		t.Errorf("expected %d messages in stored entry, got %d", snapshotLen, len(entry.ChatHistory))
	}
}

func TestRestoreSearch_UnknownID(t *testing.T) {
	s := newTestSession(t, &planner.Mock{})
	if _, err := s.RestoreSearch("nope"); !errors.Is(err, ErrSearchNotFound) {
		t.Fatalf("expected ErrSearchNotFound, got %v", err)
	}
}

func TestTranscriptMirrorsOnlyActiveEntry(t *testing.T) {
	mock := &planner.Mock{Options: sampleTrips(), Reply: "On it!"}
	s := newTestSession(t, mock)

	if _, err := s.SubmitSearch(context.Background(), samplePrefs()); err != nil {
		t.Fatalf("first SubmitSearch returned error: %v", err)
	}
	firstID := s.State().ActiveSearchID
	firstSnapshot, err := s.searchEntry(firstID)
	if err != nil {
		t.Fatalf("searchEntry returned error: %v", err)
	}

	secondPrefs := samplePrefs()
	secondPrefs.Destination = "Porto"
	if _, err := s.SubmitSearch(context.Background(), secondPrefs); err != nil {
		t.Fatalf("second SubmitSearch returned error: %v", err)
	}
	secondID := s.State().ActiveSearchID

	if _, err := s.PostUserMessage(context.Background(), "Tell me about Porto"); err != nil {
		t.Fatalf("PostUserMessage returned error: %v", err)
	}

	firstAfter, _ := s.searchEntry(firstID)
	if len(firstAfter.ChatHistory) != len(firstSnapshot.ChatHistory) {
		t.Errorf("expected inactive entry frozen at %d messages, got %d", len(firstSnapshot.ChatHistory), len(firstAfter.ChatHistory))
	}

	secondAfter, _ := s.searchEntry(secondID)
	if len(secondAfter.ChatHistory) != len(s.Transcript()) {
		t.Errorf("expected active entry mirrored to %d messages, got %d", len(s.Transcript()), len(secondAfter.ChatHistory))
	}
}

func TestNewSearchKeepsTranscript(t *testing.T) {
	mock := &planner.Mock{Options: sampleTrips()}
	s := newTestSession(t, mock)

	if _, err := s.SubmitSearch(context.Background(), samplePrefs()); err != nil {
		t.Fatalf("SubmitSearch returned error: %v", err)
	}
	before := len(s.Transcript())

	s.NewSearch()

	state := s.State()
	if state.View != ViewForm {
		t.Errorf("expected view %q, got %q", ViewForm, state.View)
	}
	if len(state.Results) != 0 {
		t.Errorf("expected results cleared, got %d", len(state.Results))
	}
	if state.ActiveSearchID != "" {
		t.Errorf("expected active search id cleared, got %q", state.ActiveSearchID)
	}
	if state.Preferences != nil {
		t.Errorf("expected preferences cleared, got %+v", state.Preferences)
	}
	if len(state.Transcript) != before+1 {
		t.Errorf("expected transcript to keep prior messages plus one note, got %d (was %d)", len(state.Transcript), before)
	}
}

func TestToggleProfile(t *testing.T) {
	s := newTestSession(t, &planner.Mock{})

	if v := s.ToggleProfile(); v != ViewProfile {
		t.Errorf("expected %q, got %q", ViewProfile, v)
	}
	if v := s.ToggleProfile(); v != ViewForm {
		t.Errorf("expected %q, got %q", ViewForm, v)
	}
}

func TestExtractCost(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"120-150€", 120},
		{"210€", 210},
		{"from €95", 95},
		{"price on request", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := extractCost(c.in); got != c.want {
			t.Errorf("extractCost(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestManagerGet(t *testing.T) {
	m := newTestManager(t, &planner.Mock{})

	s, err := m.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, ok := m.Get(s.ID)
	if !ok || got.ID != s.ID {
		t.Fatalf("expected to find session %q", s.ID)
	}

	if _, ok := m.Get("unknown"); ok {
		t.Error("expected unknown session id to miss")
	}
}
