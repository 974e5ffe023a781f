package httpserver

import (
	"net/http"
	"strconv"

	authentities "requisite/contexts/identity-access/auth-service/domain/entities"
	autherrors "requisite/contexts/identity-access/auth-service/domain/errors"
	trackingerrors "requisite/contexts/requirements/tracking-service/domain/errors"
)

// resolveOrganization authorizes the caller against the organization named in
// the path before looking it up. Authorization runs first so a member without
// the required role gets 403 even when the organization does not exist.
func (s *Server) resolveOrganization(requiredRole authentities.OrganizationRole) Stage {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, ok := securityContextFrom(r)
			if !ok {
				s.writeDomainError(w, autherrors.ErrMissingIdentity)
				return
			}

			orgID := pathID(r, "orgID")
			if !sc.AuthorizedForOrganization(orgID, requiredRole) {
				s.writeDomainError(w, autherrors.ErrNotAuthorized)
				return
			}

			org, found, err := s.tracking.Repo.GetOrganization(r.Context(), orgID)
			if err != nil {
				s.writeDomainError(w, err)
				return
			}
			if !found {
				s.writeDomainError(w, trackingerrors.ErrOrganizationNotFound)
				return
			}

			next.ServeHTTP(w, withOrganization(r, org))
		})
	}
}

// resolveProduct authorizes product membership first, then verifies the
// product exists and belongs to the already-resolved organization. A product
// under a different organization is reported as absent, not as a conflict.
func (s *Server) resolveProduct(requiredRole authentities.ProductRole) Stage {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, ok := securityContextFrom(r)
			if !ok {
				s.writeDomainError(w, autherrors.ErrMissingIdentity)
				return
			}
			org, ok := organizationFrom(r)
			if !ok {
				s.writeDomainError(w, autherrors.ErrMissingIdentity)
				return
			}

			productID := pathID(r, "productID")
			if !sc.AuthorizedForProduct(productID, requiredRole) {
				s.writeDomainError(w, autherrors.ErrNotAuthorized)
				return
			}

			product, found, err := s.tracking.Repo.GetProduct(r.Context(), productID)
			if err != nil {
				s.writeDomainError(w, err)
				return
			}
			if !found || product.OrganizationID != org.ID {
				s.writeDomainError(w, trackingerrors.ErrProductNotFound)
				return
			}

			next.ServeHTTP(w, withProduct(r, product))
		})
	}
}

// resolveFeature is structural only. Access was settled at the product level;
// this stage just pins the feature to the resolved product.
func (s *Server) resolveFeature() Stage {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			product, ok := productFrom(r)
			if !ok {
				s.writeDomainError(w, autherrors.ErrMissingIdentity)
				return
			}

			feature, found, err := s.tracking.Repo.GetFeature(r.Context(), pathID(r, "featureID"))
			if err != nil {
				s.writeDomainError(w, err)
				return
			}
			if !found || feature.ProductID != product.ID {
				s.writeDomainError(w, trackingerrors.ErrFeatureNotFound)
				return
			}

			next.ServeHTTP(w, withFeature(r, feature))
		})
	}
}

// resolveStory is structural only, pinning the story to the resolved feature.
func (s *Server) resolveStory() Stage {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			feature, ok := featureFrom(r)
			if !ok {
				s.writeDomainError(w, autherrors.ErrMissingIdentity)
				return
			}

			story, found, err := s.tracking.Repo.GetStory(r.Context(), pathID(r, "storyID"))
			if err != nil {
				s.writeDomainError(w, err)
				return
			}
			if !found || story.FeatureID != feature.ID {
				s.writeDomainError(w, trackingerrors.ErrStoryNotFound)
				return
			}

			next.ServeHTTP(w, withStory(r, story))
		})
	}
}

// pathID parses a numeric path segment. A malformed segment yields zero,
// which never matches a stored entity or membership, so malformed ids fall
// out of the pipeline as 403 or 404 rather than as a parse error.
func pathID(r *http.Request, name string) int {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0
	}
	return id
}
