package httpserver

import (
	"net/http"
	"strings"
)

// RenewedTokenHeader carries a freshly signed token on every authenticated
// response so active sessions slide their expiry forward.
const RenewedTokenHeader = "X-Auth-Token"

// authenticate verifies the bearer token, re-resolves the user behind it and
// attaches the live identity to the request. Any failure terminates the
// pipeline with 401 before later stages run.
func (s *Server) authenticate() Stage {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "not_authenticated", "not authenticated")
				return
			}

			user, ok, err := s.auth.VerifyToken.Execute(r.Context(), token)
			if err != nil {
				s.writeDomainError(w, err)
				return
			}
			if !ok {
				writeError(w, http.StatusUnauthorized, "not_authenticated", "not authenticated")
				return
			}

			if renewed, err := s.auth.Tokens.Sign(user); err == nil {
				w.Header().Set(RenewedTokenHeader, renewed)
			}

			next.ServeHTTP(w, withIdentity(r, user))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
