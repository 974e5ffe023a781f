package httpserver

import (
	"encoding/json"
	"net/http"

	authentities "requisite/contexts/identity-access/auth-service/domain/entities"
	autherrors "requisite/contexts/identity-access/auth-service/domain/errors"
	"requisite/contexts/identity-access/auth-service/ports"
	authhttp "requisite/contexts/identity-access/auth-service/transport/http"
)

func (s *Server) handleListOrganizationMembers(w http.ResponseWriter, r *http.Request) {
	organization, ok := organizationFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	members, err := s.auth.Members.ListOrganizationMembers(r.Context(), organization.ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	responses := make([]authhttp.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, toOrganizationMemberResponse(member))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (s *Server) handleAddOrganizationMember(w http.ResponseWriter, r *http.Request) {
	organization, ok := organizationFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	req, ok := decodeMemberRequest(w, r)
	if !ok {
		return
	}

	member, err := s.auth.Members.AddOrganizationMember(r.Context(), organization.ID, ports.OrganizationMemberInput{
		UserDomain: req.User.Domain,
		UserName:   req.User.UserName,
		EntityID:   memberEntityID(req),
		Role:       authentities.OrganizationRole(req.Role),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrganizationMemberResponse(member))
}

func (s *Server) handleUpdateOrganizationMember(w http.ResponseWriter, r *http.Request) {
	organization, ok := organizationFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	req, ok := decodeMemberRequest(w, r)
	if !ok {
		return
	}

	member, err := s.auth.Members.UpdateOrganizationMember(
		r.Context(),
		organization.ID,
		pathID(r, "memberID"),
		ports.OrganizationMemberInput{
			UserDomain: req.User.Domain,
			UserName:   req.User.UserName,
			EntityID:   memberEntityID(req),
			Role:       authentities.OrganizationRole(req.Role),
		},
	)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrganizationMemberResponse(member))
}

func (s *Server) handleRemoveOrganizationMember(w http.ResponseWriter, r *http.Request) {
	organization, ok := organizationFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	if err := s.auth.Members.RemoveOrganizationMember(r.Context(), organization.ID, pathID(r, "memberID")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListProductMembers(w http.ResponseWriter, r *http.Request) {
	product, ok := productFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	members, err := s.auth.Members.ListProductMembers(r.Context(), product.ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	responses := make([]authhttp.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, toProductMemberResponse(member))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (s *Server) handleAddProductMember(w http.ResponseWriter, r *http.Request) {
	product, ok := productFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	req, ok := decodeMemberRequest(w, r)
	if !ok {
		return
	}

	member, err := s.auth.Members.AddProductMember(r.Context(), product.ID, ports.ProductMemberInput{
		UserDomain: req.User.Domain,
		UserName:   req.User.UserName,
		EntityID:   memberEntityID(req),
		Role:       authentities.ProductRole(req.Role),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductMemberResponse(member))
}

func (s *Server) handleUpdateProductMember(w http.ResponseWriter, r *http.Request) {
	product, ok := productFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	req, ok := decodeMemberRequest(w, r)
	if !ok {
		return
	}

	member, err := s.auth.Members.UpdateProductMember(
		r.Context(),
		product.ID,
		pathID(r, "memberID"),
		ports.ProductMemberInput{
			UserDomain: req.User.Domain,
			UserName:   req.User.UserName,
			EntityID:   memberEntityID(req),
			Role:       authentities.ProductRole(req.Role),
		},
	)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductMemberResponse(member))
}

func (s *Server) handleRemoveProductMember(w http.ResponseWriter, r *http.Request) {
	product, ok := productFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}

	if err := s.auth.Members.RemoveProductMember(r.Context(), product.ID, pathID(r, "memberID")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeMemberRequest(w http.ResponseWriter, r *http.Request) (authhttp.MemberRequest, bool) {
	var req authhttp.MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return authhttp.MemberRequest{}, false
	}
	return req, true
}

func memberEntityID(req authhttp.MemberRequest) int {
	if req.Entity == nil {
		return 0
	}
	return req.Entity.ID
}

func toOrganizationMemberResponse(m authentities.OrganizationMembership) authhttp.MemberResponse {
	return authhttp.MemberResponse{
		ID:     m.ID,
		User:   toUserResponse(m.User),
		Entity: authhttp.MemberEntityDTO{ID: m.Entity.ID, Name: m.Entity.Name},
		Role:   string(m.Role),
	}
}

func toProductMemberResponse(m authentities.ProductMembership) authhttp.MemberResponse {
	return authhttp.MemberResponse{
		ID:     m.ID,
		User:   toUserResponse(m.User),
		Entity: authhttp.MemberEntityDTO{ID: m.Entity.ID, Name: m.Entity.Name},
		Role:   string(m.Role),
	}
}
