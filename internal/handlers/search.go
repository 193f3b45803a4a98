package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ecotravel/ecotravel-api/internal/models"
	"github.com/ecotravel/ecotravel-api/internal/session"
)

type SearchRequest struct {
	SessionInput
	Body struct {
		Origin      string `json:"origin" required:"true" doc:"Where the trip starts"`
		Destination string `json:"destination" required:"true" doc:"Where the trip goes"`
		Dates       string `json:"dates" required:"true" doc:"Free-text dates or duration"`
		Budget      string `json:"budget" required:"true" doc:"Free-text budget e.g. '500€'"`
		Travelers   int    `json:"travelers" required:"true" minimum:"1" doc:"Number of travelers"`
		Interests   string `json:"interests,omitempty" doc:"Optional free-text interests"`
	}
}

type SearchResponse struct {
	Body struct {
		SearchID          string              `json:"search_id"`
		Results           []models.TripOption `json:"results"`
		RecommendedTripID string              `json:"recommended_trip_id,omitempty"`
		View              session.View        `json:"view"`
	}
}

func (h *SessionHandler) HandleSearch(ctx context.Context, input *SearchRequest) (*SearchResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	prefs := models.TripPreferences{
		Origin:      input.Body.Origin,
		Destination: input.Body.Destination,
		Dates:       input.Body.Dates,
		Budget:      input.Body.Budget,
		Travelers:   input.Body.Travelers,
		Interests:   input.Body.Interests,
	}

	// Validation errors never reach the store.
	if err := prefs.Validate(); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	results, err := s.SubmitSearch(ctx, prefs)
	if errors.Is(err, session.ErrSearchInFlight) {
		return nil, huma.Error409Conflict(err.Error())
	}
	if err != nil {
		// The session already appended the apology message and kept its
		// prior results.
		return nil, huma.Error502BadGateway("Trip generation failed: " + err.Error())
	}

	state := s.State()
	res := &SearchResponse{}
	res.Body.SearchID = state.ActiveSearchID
	res.Body.Results = results
	res.Body.RecommendedTripID = state.RecommendedTripID
	res.Body.View = state.View
	return res, nil
}

type NewSearchRequest struct {
	SessionInput
}

type ViewResponse struct {
	Body struct {
		View session.View `json:"view"`
	}
}

// HandleNewSearch clears results and the active search id and returns to
// the form. The transcript survives.
func (h *SessionHandler) HandleNewSearch(ctx context.Context, input *NewSearchRequest) (*ViewResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.NewSearch()

	res := &ViewResponse{}
	res.Body.View = s.View()
	return res, nil
}

type EditSearchRequest struct {
	SessionInput
}

// HandleEditSearch reopens the form pre-filled with the last submitted
// preferences, keeping current results.
func (h *SessionHandler) HandleEditSearch(ctx context.Context, input *EditSearchRequest) (*ViewResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.EditRequest()

	res := &ViewResponse{}
	res.Body.View = s.View()
	return res, nil
}
