package httpserver

import (
	"encoding/json"
	"net/http"

	authentities "requisite/contexts/identity-access/auth-service/domain/entities"
	autherrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/requirements/tracking-service/application"
	"requisite/contexts/requirements/tracking-service/ports"
	trackinghttp "requisite/contexts/requirements/tracking-service/transport/http"
)

func (s *Server) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	sc, ok := securityContextFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	organizations, err := s.tracking.Service.ListOrganizations(r.Context(), viewerOf(sc))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, organizations)
}

// Organization creation is reserved for system admins; there is no
// organization-scoped role that could grant it.
func (s *Server) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	sc, ok := securityContextFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}
	if !sc.IsSystemAdmin {
		s.writeDomainError(w, autherrors.ErrNotAuthorized)
		return
	}

	var req trackinghttp.OrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	organization, err := s.tracking.Service.CreateOrganization(r.Context(), ports.OrganizationInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, organization)
}

func (s *Server) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	organization, ok := organizationFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}
	writeJSON(w, http.StatusOK, organization)
}

func (s *Server) handleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	organization, ok := organizationFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	var req trackinghttp.OrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	updated, err := s.tracking.Service.UpdateOrganization(r.Context(), organization.ID, ports.OrganizationInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func viewerOf(sc authentities.SecurityContext) application.Viewer {
	return application.Viewer{
		IsSystemAdmin:   sc.IsSystemAdmin,
		OrganizationIDs: sc.OrganizationIDs(),
		ProductIDs:      sc.ProductIDs(),
	}
}
