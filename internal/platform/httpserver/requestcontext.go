package httpserver

import (
	"context"
	"net/http"

	authentities "requisite/contexts/identity-access/auth-service/domain/entities"
	trackingentities "requisite/contexts/requirements/tracking-service/domain/entities"
)

// Request-scoped pipeline state. Each stage attaches its output for the
// stages after it; accessors report absence so downstream stages can detect
// ordering defects instead of dereferencing nil.

type contextKey int

const (
	identityKey contextKey = iota
	securityContextKey
	organizationKey
	productKey
	featureKey
	storyKey
)

func withIdentity(r *http.Request, user authentities.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, user))
}

func identityFrom(r *http.Request) (authentities.User, bool) {
	user, ok := r.Context().Value(identityKey).(authentities.User)
	return user, ok
}

func withSecurityContext(r *http.Request, sc authentities.SecurityContext) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), securityContextKey, sc))
}

func securityContextFrom(r *http.Request) (authentities.SecurityContext, bool) {
	sc, ok := r.Context().Value(securityContextKey).(authentities.SecurityContext)
	return sc, ok
}

func withOrganization(r *http.Request, org trackingentities.Organization) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), organizationKey, org))
}

func organizationFrom(r *http.Request) (trackingentities.Organization, bool) {
	org, ok := r.Context().Value(organizationKey).(trackingentities.Organization)
	return org, ok
}

func withProduct(r *http.Request, product trackingentities.Product) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), productKey, product))
}

func productFrom(r *http.Request) (trackingentities.Product, bool) {
	product, ok := r.Context().Value(productKey).(trackingentities.Product)
	return product, ok
}

func withFeature(r *http.Request, feature trackingentities.Feature) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), featureKey, feature))
}

func featureFrom(r *http.Request) (trackingentities.Feature, bool) {
	feature, ok := r.Context().Value(featureKey).(trackingentities.Feature)
	return feature, ok
}

func withStory(r *http.Request, story trackingentities.Story) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), storyKey, story))
}

func storyFrom(r *http.Request) (trackingentities.Story, bool) {
	story, ok := r.Context().Value(storyKey).(trackingentities.Story)
	return story, ok
}
