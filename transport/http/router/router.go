package router

import (
	"parkflow/internal/handlers/auth"
	"parkflow/internal/handlers/booking"
	"parkflow/internal/handlers/business"
	"parkflow/internal/handlers/feed"
	"parkflow/internal/handlers/geocode"
	"parkflow/internal/handlers/health"
	"parkflow/internal/handlers/lot"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health   health.Handler
	Auth     auth.Handler
	Lot      lot.Handler
	Booking  booking.Handler
	Business business.Handler
	Geocode  geocode.Handler
	Feed     feed.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Lot.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Business.Router(routerGroup)
		r.DomainHandlers.Geocode.Router(routerGroup)
		r.DomainHandlers.Feed.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
