package router

import (
	"smartpark/internal/handlers/admin"
	"smartpark/internal/handlers/parking"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Parking parking.Handler
	Admin   admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Parking.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
