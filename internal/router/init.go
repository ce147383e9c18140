package router

import (
	"github.com/valoris-se/valoris-api/internal/application"
	"github.com/valoris-se/valoris-api/internal/container"
	pginfra "github.com/valoris-se/valoris-api/internal/infrastructure/postgres"
	handlers "github.com/valoris-se/valoris-api/internal/interface/http"
	"github.com/valoris-se/valoris-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons
// and registers it with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	sessions := pginfra.NewOnboardingRepository(pool)
	valuations := pginfra.NewValuationRepository(pool)
	extras := pginfra.NewExtraRepository(pool)
	offers := pginfra.NewOfferRepository(pool)

	authSvc := application.NewAuthService(users, jwt, logger)
	valuationSvc := application.NewValuationService(valuations, logger)
	extrasSvc := application.NewExtrasService(extras, logger)
	offerSvc := application.NewOfferService(offers, logger)
	// A typed-nil publisher must not reach the interface field.
	var mail application.EmailPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		mail = pub
	}

	onboardingSvc := application.NewOnboardingService(
		sessions,
		users,
		container.GetPayments(),
		mail,
		container.GetES(),
		cfg.ESUsersIndex,
		cfg.FrontendURL,
		logger,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt, cfg.Env))
	r.Add(modules.NewValuationModule(handlers.NewValuationHandler(valuationSvc, logger), jwt))
	r.Add(modules.NewExtrasModule(handlers.NewExtrasHandler(extrasSvc, logger), jwt))
	r.Add(modules.NewOfferModule(handlers.NewOfferHandler(offerSvc, logger), jwt))
	r.Add(modules.NewOnboardingModule(
		handlers.NewOnboardingHandler(onboardingSvc, logger),
		handlers.NewWebhookHandler(onboardingSvc, container.GetPayments(), logger),
	))
}
