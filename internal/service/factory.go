package service

import (
	"github.com/quoteflow/quote-service/internal/auth"
	"github.com/quoteflow/quote-service/internal/cache"
	"github.com/quoteflow/quote-service/internal/config"
	"github.com/quoteflow/quote-service/internal/domain/apikey"
	"github.com/quoteflow/quote-service/internal/domain/client"
	"github.com/quoteflow/quote-service/internal/domain/profile"
	"github.com/quoteflow/quote-service/internal/domain/quote"
	"github.com/quoteflow/quote-service/internal/domain/quotenote"
	"github.com/quoteflow/quote-service/internal/domain/team"
	"github.com/quoteflow/quote-service/internal/domain/template"
	"github.com/quoteflow/quote-service/internal/email"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
)

// ServiceParams holds the common dependencies every service is built from.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache
	Email  email.Sender
	Auth   auth.Provider

	// Repositories
	QuoteRepo    quote.Repository
	ClientRepo   client.Repository
	ProfileRepo  profile.Repository
	TemplateRepo template.Repository
	NoteRepo     quotenote.Repository
	APIKeyRepo   apikey.Repository
	TeamRepo     team.Repository
}

// NewServiceParams assembles the shared dependency bundle for fx.
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	email email.Sender,
	auth auth.Provider,
	quoteRepo quote.Repository,
	clientRepo client.Repository,
	profileRepo profile.Repository,
	templateRepo template.Repository,
	noteRepo quotenote.Repository,
	apiKeyRepo apikey.Repository,
	teamRepo team.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		Cache:        cache,
		Email:        email,
		Auth:         auth,
		QuoteRepo:    quoteRepo,
		ClientRepo:   clientRepo,
		ProfileRepo:  profileRepo,
		TemplateRepo: templateRepo,
		NoteRepo:     noteRepo,
		APIKeyRepo:   apiKeyRepo,
		TeamRepo:     teamRepo,
	}
}
