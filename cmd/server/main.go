package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/quoteflow/quote-service/internal/api"
	v1 "github.com/quoteflow/quote-service/internal/api/v1"
	"github.com/quoteflow/quote-service/internal/auth"
	"github.com/quoteflow/quote-service/internal/cache"
	"github.com/quoteflow/quote-service/internal/config"
	"github.com/quoteflow/quote-service/internal/email"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
	"github.com/quoteflow/quote-service/internal/repository"
	"github.com/quoteflow/quote-service/internal/service"
)

func init() {
	// All timestamps, month windows included, are computed in UTC.
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			provideLogger,

			postgres.NewDB,
			provideDBClient,
			cache.NewInMemoryCache,
			email.NewSender,
			auth.NewProvider,

			// Repositories
			repository.NewQuoteRepository,
			repository.NewClientRepository,
			repository.NewProfileRepository,
			repository.NewTemplateRepository,
			repository.NewQuoteNoteRepository,
			repository.NewAPIKeyRepository,
			repository.NewTeamRepository,

			// Services
			service.NewServiceParams,
			service.NewQuoteService,
			service.NewClientService,
			service.NewProfileService,
			service.NewTemplateService,
			service.NewNoteService,
			service.NewDashboardService,
			service.NewPublicService,
			service.NewAPIKeyService,
			service.NewTeamService,
			service.NewBillingService,
			service.NewUserService,

			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func provideLogger(cfg *config.Configuration) (*logger.Logger, error) {
	return logger.NewLogger(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideHandlers(
	log *logger.Logger,
	db postgres.IClient,
	quoteService service.QuoteService,
	clientService service.ClientService,
	profileService service.ProfileService,
	templateService service.TemplateService,
	noteService service.NoteService,
	dashboardService service.DashboardService,
	publicService service.PublicService,
	apiKeyService service.APIKeyService,
	teamService service.TeamService,
	billingService service.BillingService,
	userService service.UserService,
) api.Handlers {
	return api.Handlers{
		Health:    v1.NewHealthHandler(db, log),
		Quote:     v1.NewQuoteHandler(quoteService, log),
		Client:    v1.NewClientHandler(clientService, log),
		Profile:   v1.NewProfileHandler(profileService, log),
		Template:  v1.NewTemplateHandler(templateService, log),
		Note:      v1.NewNoteHandler(noteService, log),
		Dashboard: v1.NewDashboardHandler(dashboardService, log),
		Public:    v1.NewPublicHandler(publicService, log),
		APIKey:    v1.NewAPIKeyHandler(apiKeyService, log),
		Team:      v1.NewTeamHandler(teamService, log),
		Billing:   v1.NewBillingHandler(billingService, log),
		User:      v1.NewUserHandler(userService, log),
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			db.Close()
			return nil
		},
	})
}
