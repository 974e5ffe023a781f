package trackingservice

import (
	"log/slog"

	"requisite/contexts/requirements/tracking-service/adapters/memory"
	"requisite/contexts/requirements/tracking-service/application"
	"requisite/contexts/requirements/tracking-service/ports"
)

// Module is the tracking-service composition root exposed to runtime wiring.
type Module struct {
	Service application.Service
	Repo    ports.Repository
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// NewModule wires the entity CRUD service using explicit ports.
func NewModule(deps Dependencies) Module {
	return Module{
		Service: application.Service{
			Repo:   deps.Repository,
			Logger: deps.Logger,
		},
		Repo: deps.Repository,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
