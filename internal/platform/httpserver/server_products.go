package httpserver

import (
	"encoding/json"
	"net/http"

	autherrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/requirements/tracking-service/ports"
	trackinghttp "requisite/contexts/requirements/tracking-service/transport/http"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	sc, ok := securityContextFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}
	organization, ok := organizationFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	products, err := s.tracking.Service.ListVisibleProducts(r.Context(), organization.ID, viewerOf(sc))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	organization, ok := organizationFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	var req trackinghttp.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	product, err := s.tracking.Service.CreateProduct(r.Context(), organization.ID, ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Public:      req.Public,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// handleGetProduct applies visibility in the handler rather than through the
// product resolver: a private product must look absent to non-members, and
// the resolver's membership requirement would answer 403 instead.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	sc, ok := securityContextFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}
	organization, ok := organizationFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	product, err := s.tracking.Service.GetVisibleProduct(r.Context(), organization.ID, pathID(r, "productID"), viewerOf(sc))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := productFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	var req trackinghttp.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	updated, err := s.tracking.Service.UpdateProduct(r.Context(), product.ID, ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Public:      req.Public,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
