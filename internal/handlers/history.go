package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ecotravel/ecotravel-api/internal/models"
	"github.com/ecotravel/ecotravel-api/internal/session"
)

type SearchHistoryRequest struct {
	SessionInput
}

type SearchHistoryResponse struct {
	Body struct {
		Searches []models.SearchHistoryEntry `json:"searches"`
	}
}

func (h *SessionHandler) HandleSearchHistory(ctx context.Context, input *SearchHistoryRequest) (*SearchHistoryResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.SearchHistory()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load search history: " + err.Error())
	}

	res := &SearchHistoryResponse{}
	res.Body.Searches = entries
	return res, nil
}

type RestoreSearchRequest struct {
	SessionInput
	ID string `path:"id" doc:"Search history entry id"`
}

type RestoreSearchResponse struct {
	Body session.State
}

// HandleRestoreSearch reinstates a recorded snapshot and returns the
// resulting session state.
func (h *SessionHandler) HandleRestoreSearch(ctx context.Context, input *RestoreSearchRequest) (*RestoreSearchResponse, error) {
	s, err := h.resolve(input.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.RestoreSearch(input.ID); err != nil {
		if errors.Is(err, session.ErrSearchNotFound) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, huma.Error500InternalServerError("Failed to restore search: " + err.Error())
	}

	return &RestoreSearchResponse{Body: s.State()}, nil
}
