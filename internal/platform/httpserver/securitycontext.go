package httpserver

import (
	"net/http"

	autherrors "requisite/contexts/identity-access/auth-service/domain/errors"
)

// securityContext computes the caller's authorization snapshot. It requires an
// identity already attached by authenticate; a missing identity is a pipeline
// ordering defect, not a caller error.
func (s *Server) securityContext() Stage {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := identityFrom(r)
			if !ok {
				s.writeDomainError(w, autherrors.ErrMissingIdentity)
				return
			}

			sc, err := s.auth.SecurityContext.Execute(r.Context(), user)
			if err != nil {
				s.writeDomainError(w, err)
				return
			}

			next.ServeHTTP(w, withSecurityContext(r, sc))
		})
	}
}
