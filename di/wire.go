//go:build wireinject
// +build wireinject

package di

import (
	"hospicore/config"
	"hospicore/infras/jwt"
	"hospicore/infras/kafka"
	"hospicore/infras/otel"
	"hospicore/infras/postgres"
	"hospicore/infras/redis"
	"hospicore/permissions"
	"hospicore/shared/cache"
	"hospicore/transport/http"
	"hospicore/transport/http/middleware"
	"hospicore/transport/http/router"

	admissionRepository "hospicore/internal/domains/admission/repository"
	admissionService "hospicore/internal/domains/admission/service"
	appointmentRepository "hospicore/internal/domains/appointment/repository"
	appointmentService "hospicore/internal/domains/appointment/service"
	authService "hospicore/internal/domains/auth/service"
	consultationRepository "hospicore/internal/domains/consultation/repository"
	consultationService "hospicore/internal/domains/consultation/service"
	drugRepository "hospicore/internal/domains/drug/repository"
	drugService "hospicore/internal/domains/drug/service"
	invoiceRepository "hospicore/internal/domains/invoice/repository"
	invoiceService "hospicore/internal/domains/invoice/service"
	patientRepository "hospicore/internal/domains/patient/repository"
	patientService "hospicore/internal/domains/patient/service"
	prescriptionRepository "hospicore/internal/domains/prescription/repository"
	prescriptionService "hospicore/internal/domains/prescription/service"
	roomRepository "hospicore/internal/domains/room/repository"
	roomService "hospicore/internal/domains/room/service"
	staffRepository "hospicore/internal/domains/staff/repository"
	staffService "hospicore/internal/domains/staff/service"
	userRepository "hospicore/internal/domains/user/repository"
	userService "hospicore/internal/domains/user/service"

	admissionHandler "hospicore/internal/handlers/admission"
	appointmentHandler "hospicore/internal/handlers/appointment"
	authHandler "hospicore/internal/handlers/auth"
	consultationHandler "hospicore/internal/handlers/consultation"
	drugHandler "hospicore/internal/handlers/drug"
	healthHandler "hospicore/internal/handlers/health"
	invoiceHandler "hospicore/internal/handlers/invoice"
	patientHandler "hospicore/internal/handlers/patient"
	prescriptionHandler "hospicore/internal/handlers/prescription"
	roomHandler "hospicore/internal/handlers/room"
	staffHandler "hospicore/internal/handlers/staff"
	userHandler "hospicore/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var patientDomain = wire.NewSet(
	patientRepository.New,
	patientService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var pharmacyDomain = wire.NewSet(
	drugRepository.New,
	drugService.New,
	prescriptionRepository.New,
	prescriptionService.New,
)

var clinicalDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
	consultationRepository.New,
	consultationService.New,
	admissionRepository.New,
	admissionService.New,
)

var billingDomain = wire.NewSet(
	invoiceRepository.New,
	invoiceService.New,
)

var domains = wire.NewSet(
	userDomain,
	patientDomain,
	staffDomain,
	roomDomain,
	pharmacyDomain,
	clinicalDomain,
	billingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	userHandler.New,
	patientHandler.New,
	staffHandler.New,
	roomHandler.New,
	drugHandler.New,
	prescriptionHandler.New,
	admissionHandler.New,
	appointmentHandler.New,
	consultationHandler.New,
	invoiceHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
