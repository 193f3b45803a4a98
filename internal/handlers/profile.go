package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ecotravel/ecotravel-api/internal/models"
	"github.com/ecotravel/ecotravel-api/internal/session"
)

type ProfileRequest struct {
	SessionInput
}

type ProfileResponse struct {
	Body struct {
		Profile    models.UserProfile     `json:"profile"`
		Usage      models.UsageStats      `json:"usage"`
		History    []models.BookingRecord `json:"history"`
		SavedTrips []models.TripOption    `json:"savedTrips"`
	}
}

func (h *SessionHandler) HandleProfile(ctx context.Context, input *ProfileRequest) (*ProfileResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	profile, err := s.Profile()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load profile: " + err.Error())
	}
	bookings, err := s.Bookings()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load bookings: " + err.Error())
	}
	saved, err := s.SavedTrips()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load saved trips: " + err.Error())
	}

	res := &ProfileResponse{}
	res.Body.Profile = profile
	res.Body.Usage = profile.Usage()
	res.Body.History = bookings
	res.Body.SavedTrips = saved
	return res, nil
}

type UpdateLimitsRequest struct {
	SessionInput
	Body struct {
		CO2Limit          float64 `json:"co2Limit" required:"true" doc:"Annual CO2 limit in kg"`
		YearlyBudgetLimit float64 `json:"yearlyBudgetLimit" required:"true" doc:"Annual budget limit"`
	}
}

type UpdateLimitsResponse struct {
	Body struct {
		Profile models.UserProfile `json:"profile"`
		Usage   models.UsageStats  `json:"usage"`
	}
}

func (h *SessionHandler) HandleUpdateLimits(ctx context.Context, input *UpdateLimitsRequest) (*UpdateLimitsResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	profile, err := s.UpdateLimits(input.Body.CO2Limit, input.Body.YearlyBudgetLimit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to update limits: " + err.Error())
	}

	res := &UpdateLimitsResponse{}
	res.Body.Profile = profile
	res.Body.Usage = profile.Usage()
	return res, nil
}

type ToggleProfileRequest struct {
	SessionInput
}

func (h *SessionHandler) HandleToggleProfile(ctx context.Context, input *ToggleProfileRequest) (*ViewResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	res := &ViewResponse{}
	res.Body.View = s.ToggleProfile()
	return res, nil
}

type BookTripRequest struct {
	SessionInput
	Body struct {
		TripID string `json:"trip_id" required:"true" doc:"Id of an option in the current results"`
	}
}

type BookTripResponse struct {
	Body struct {
		Booking models.BookingRecord `json:"booking"`
		View    session.View         `json:"view"`
	}
}

func (h *SessionHandler) HandleBookTrip(ctx context.Context, input *BookTripRequest) (*BookTripResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	record, err := s.BookTrip(input.Body.TripID)
	if errors.Is(err, session.ErrTripNotFound) {
		return nil, huma.Error404NotFound(err.Error())
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to book trip: " + err.Error())
	}

	res := &BookTripResponse{}
	res.Body.Booking = *record
	res.Body.View = s.View()
	return res, nil
}

type SaveTripRequest struct {
	SessionInput
	Body struct {
		TripID string `json:"trip_id" required:"true" doc:"Id of an option in the current results"`
	}
}

type SaveTripResponse struct {
	Body struct {
		SavedTrips []models.TripOption `json:"savedTrips"`
	}
}

func (h *SessionHandler) HandleSaveTrip(ctx context.Context, input *SaveTripRequest) (*SaveTripResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.SaveTrip(input.Body.TripID); err != nil {
		if errors.Is(err, session.ErrTripNotFound) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, huma.Error500InternalServerError("Failed to save trip: " + err.Error())
	}

	saved, err := s.SavedTrips()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load saved trips: " + err.Error())
	}

	res := &SaveTripResponse{}
	res.Body.SavedTrips = saved
	return res, nil
}
