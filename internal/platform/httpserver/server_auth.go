package httpserver

import (
	"encoding/json"
	"net/http"

	"requisite/contexts/identity-access/auth-service/application"
	authentities "requisite/contexts/identity-access/auth-service/domain/entities"
	autherrors "requisite/contexts/identity-access/auth-service/domain/errors"
	authhttp "requisite/contexts/identity-access/auth-service/transport/http"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	user, err := s.auth.Login.Execute(r.Context(), application.PasswordLoginQuery{
		Domain:   req.Domain,
		UserName: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	token, err := s.auth.Tokens.Sign(user)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authhttp.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.registrationEnabled {
		writeError(w, http.StatusForbidden, "registration_disabled", "registration is disabled")
		return
	}

	var req authhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
		return
	}

	user, err := s.auth.Register.Execute(r.Context(), application.RegisterUserInput{
		Domain:       req.Domain,
		UserName:     req.UserName,
		Password:     req.Password,
		EmailAddress: req.EmailAddress,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := identityFrom(r)
	if !ok {
		s.writeDomainError(w, autherrors.ErrMissingIdentity)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(user authentities.User) authhttp.UserResponse {
	return authhttp.UserResponse{
		ID:           user.ID,
		Domain:       user.Domain,
		UserName:     user.UserName,
		EmailAddress: user.EmailAddress,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
	}
}
