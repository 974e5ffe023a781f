package httpserver

import (
	"log/slog"
	"net/http"

	authservice "requisite/contexts/identity-access/auth-service"
	authentities "requisite/contexts/identity-access/auth-service/domain/entities"
	trackingservice "requisite/contexts/requirements/tracking-service"
)

type Server struct {
	mux                 *http.ServeMux
	logger              *slog.Logger
	addr                string
	auth                authservice.Module
	tracking            trackingservice.Module
	registrationEnabled bool
}

// Option adjusts server construction.
type Option func(*Server)

// WithRegistrationDisabled turns the self-service registration endpoint off.
func WithRegistrationDisabled() Option {
	return func(s *Server) {
		s.registrationEnabled = false
	}
}

func New(
	auth authservice.Module,
	tracking trackingservice.Module,
	logger *slog.Logger,
	addr string,
	opts ...Option,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:                 http.NewServeMux(),
		logger:              logger,
		addr:                addr,
		auth:                auth,
		tracking:            tracking,
		registrationEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// registerRoutes declares every route as an explicit stage chain. Stages run
// in declaration order and any stage may terminate the request; handlers only
// run once every stage on their route has passed.
func (s *Server) registerRoutes() {
	const (
		orgOwner       = authentities.OrganizationRoleOwner
		productOwner   = authentities.ProductRoleOwner
		contributor    = authentities.ProductRoleContributor
		anyOrgRole     = authentities.OrganizationRole("")
		anyProductRole = authentities.ProductRole("")
	)

	s.route("POST /api/login", s.handleLogin,
		s.validate(validation{Body: loginBody}),
	)
	s.route("POST /api/register", s.handleRegister,
		s.validate(validation{Body: registerBody}),
	)
	s.route("GET /api/user", s.handleCurrentUser,
		s.authenticate(),
	)

	s.route("GET /api/organizations", s.handleListOrganizations,
		s.authenticate(), s.securityContext(),
	)
	s.route("POST /api/organizations", s.handleCreateOrganization,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Body: organizationBody}),
	)
	s.route("GET /api/organizations/{orgID}", s.handleGetOrganization,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID")}),
		s.resolveOrganization(anyOrgRole),
	)
	s.route("PUT /api/organizations/{orgID}", s.handleUpdateOrganization,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID"), Body: organizationBody}),
		s.resolveOrganization(orgOwner),
	)

	s.route("GET /api/organizations/{orgID}/members", s.handleListOrganizationMembers,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID")}),
		s.resolveOrganization(anyOrgRole),
	)
	s.route("POST /api/organizations/{orgID}/members", s.handleAddOrganizationMember,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID"), Body: memberBody}),
		s.resolveOrganization(orgOwner),
	)
	s.route("PUT /api/organizations/{orgID}/members/{memberID}", s.handleUpdateOrganizationMember,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "memberID"), Body: memberBody}),
		s.resolveOrganization(orgOwner),
	)
	s.route("DELETE /api/organizations/{orgID}/members/{memberID}", s.handleRemoveOrganizationMember,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "memberID")}),
		s.resolveOrganization(orgOwner),
	)

	s.route("GET /api/organizations/{orgID}/products", s.handleListProducts,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID")}),
		s.resolveOrganization(anyOrgRole),
	)
	s.route("POST /api/organizations/{orgID}/products", s.handleCreateProduct,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID"), Body: productBody}),
		s.resolveOrganization(orgOwner),
	)
	s.route("GET /api/organizations/{orgID}/products/{productID}", s.handleGetProduct,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID")}),
		s.resolveOrganization(anyOrgRole),
	)
	s.route("PUT /api/organizations/{orgID}/products/{productID}", s.handleUpdateProduct,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID"), Body: productBody}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(productOwner),
	)

	s.route("GET /api/organizations/{orgID}/products/{productID}/members", s.handleListProductMembers,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID")}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(anyProductRole),
	)
	s.route("POST /api/organizations/{orgID}/products/{productID}/members", s.handleAddProductMember,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID"), Body: memberBody}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(productOwner),
	)
	s.route("PUT /api/organizations/{orgID}/products/{productID}/members/{memberID}", s.handleUpdateProductMember,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID", "memberID"), Body: memberBody}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(productOwner),
	)
	s.route("DELETE /api/organizations/{orgID}/products/{productID}/members/{memberID}", s.handleRemoveProductMember,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID", "memberID")}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(productOwner),
	)

	s.route("GET /api/organizations/{orgID}/products/{productID}/features", s.handleListFeatures,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID")}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(anyProductRole),
	)
	s.route("POST /api/organizations/{orgID}/products/{productID}/features", s.handleCreateFeature,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID"), Body: featureBody}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(contributor),
	)
	s.route("GET /api/organizations/{orgID}/products/{productID}/features/{featureID}", s.handleGetFeature,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID", "featureID")}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(anyProductRole), s.resolveFeature(),
	)
	s.route("PUT /api/organizations/{orgID}/products/{productID}/features/{featureID}", s.handleUpdateFeature,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID", "featureID"), Body: featureBody}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(contributor), s.resolveFeature(),
	)

	s.route("GET /api/organizations/{orgID}/products/{productID}/features/{featureID}/stories", s.handleListStories,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID", "featureID")}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(anyProductRole), s.resolveFeature(),
	)
	s.route("POST /api/organizations/{orgID}/products/{productID}/features/{featureID}/stories", s.handleCreateStory,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID", "featureID"), Body: storyBody}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(contributor), s.resolveFeature(),
	)
	s.route("GET /api/organizations/{orgID}/products/{productID}/features/{featureID}/stories/{storyID}", s.handleGetStory,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID", "featureID", "storyID")}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(anyProductRole), s.resolveFeature(), s.resolveStory(),
	)
	s.route("PUT /api/organizations/{orgID}/products/{productID}/features/{featureID}/stories/{storyID}", s.handleUpdateStory,
		s.authenticate(), s.securityContext(),
		s.validate(validation{Params: paramsSchema("orgID", "productID", "featureID", "storyID"), Body: storyBody}),
		s.resolveOrganization(anyOrgRole), s.resolveProduct(contributor), s.resolveFeature(), s.resolveStory(),
	)
}

func (s *Server) route(pattern string, handler http.HandlerFunc, stages ...Stage) {
	s.mux.Handle(pattern, chain(handler, stages...))
}
