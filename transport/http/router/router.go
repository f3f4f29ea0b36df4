package router

import (
	"labbook/internal/handlers/appointment"
	"labbook/internal/handlers/auth"
	"labbook/internal/handlers/banner"
	"labbook/internal/handlers/payment"
	"labbook/internal/handlers/statistics"
	"labbook/internal/handlers/test"
	"labbook/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Test        test.Handler
	Banner      banner.Handler
	Appointment appointment.Handler
	Payment     payment.Handler
	Statistics  statistics.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Test.Router(routerGroup)
		r.DomainHandlers.Banner.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Statistics.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
