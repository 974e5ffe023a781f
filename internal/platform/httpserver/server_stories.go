package httpserver

import (
	"encoding/json"
	"net/http"

	autherrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/requirements/tracking-service/ports"
	trackinghttp "requisite/contexts/requirements/tracking-service/transport/http"
)

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	feature, ok := featureFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	stories, err := s.tracking.Service.ListStories(r.Context(), feature.ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stories)
}

func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	feature, ok := featureFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	var req trackinghttp.StoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	story, err := s.tracking.Service.CreateStory(r.Context(), feature.ID, ports.StoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, story)
}

func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	story, ok := storyFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}
	writeJSON(w, http.StatusOK, story)
}

func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	story, ok := storyFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	var req trackinghttp.StoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	updated, err := s.tracking.Service.UpdateStory(r.Context(), story.ID, ports.StoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
