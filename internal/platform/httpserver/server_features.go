package httpserver

import (
	"encoding/json"
	"net/http"

	autherrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/requirements/tracking-service/ports"
	trackinghttp "requisite/contexts/requirements/tracking-service/transport/http"
)

func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	product, ok := productFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	features, err := s.tracking.Service.ListFeatures(r.Context(), product.ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, features)
}

func (s *Server) handleCreateFeature(w http.ResponseWriter, r *http.Request) {
	product, ok := productFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	var req trackinghttp.FeatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	feature, err := s.tracking.Service.CreateFeature(r.Context(), product.ID, ports.FeatureInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, feature)
}

func (s *Server) handleGetFeature(w http.ResponseWriter, r *http.Request) {
	feature, ok := featureFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}
	writeJSON(w, http.StatusOK, feature)
}

func (s *Server) handleUpdateFeature(w http.ResponseWriter, r *http.Request) {
	feature, ok := featureFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	var req trackinghttp.FeatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	updated, err := s.tracking.Service.UpdateFeature(r.Context(), feature.ID, ports.FeatureInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
