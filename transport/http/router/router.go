package router

import (
	"hospicore/internal/handlers/admission"
	"hospicore/internal/handlers/appointment"
	"hospicore/internal/handlers/auth"
	"hospicore/internal/handlers/consultation"
	"hospicore/internal/handlers/drug"
	"hospicore/internal/handlers/health"
	"hospicore/internal/handlers/invoice"
	"hospicore/internal/handlers/patient"
	"hospicore/internal/handlers/prescription"
	"hospicore/internal/handlers/room"
	"hospicore/internal/handlers/staff"
	"hospicore/internal/handlers/user"
	"hospicore/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health       health.Handler
	Auth         auth.Handler
	User         user.Handler
	Patient      patient.Handler
	Staff        staff.Handler
	Room         room.Handler
	Drug         drug.Handler
	Prescription prescription.Handler
	Admission    admission.Handler
	Invoice      invoice.Handler
	Appointment  appointment.Handler
	Consultation consultation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthMiddleware middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.RateLimit())

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthMiddleware.APIKey)
		routerGroup.Use(r.AuthMiddleware.Auth)
		routerGroup.Use(r.AuthMiddleware.RBAC)

		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Patient.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Drug.Router(routerGroup)
		r.DomainHandlers.Prescription.Router(routerGroup)
		r.DomainHandlers.Admission.Router(routerGroup)
		r.DomainHandlers.Invoice.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Consultation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authMiddleware middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthMiddleware: authMiddleware,
	}
}
