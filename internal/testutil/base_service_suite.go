package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quoteflow/quote-service/internal/cache"
	"github.com/quoteflow/quote-service/internal/config"
	"github.com/quoteflow/quote-service/internal/domain/apikey"
	"github.com/quoteflow/quote-service/internal/domain/client"
	"github.com/quoteflow/quote-service/internal/domain/profile"
	"github.com/quoteflow/quote-service/internal/domain/quote"
	"github.com/quoteflow/quote-service/internal/domain/quotenote"
	"github.com/quoteflow/quote-service/internal/domain/team"
	"github.com/quoteflow/quote-service/internal/domain/template"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
	"github.com/quoteflow/quote-service/internal/types"
)

// TestUserID is the authenticated user most suite tests act as.
const TestUserID = "user_test_1"

const TestUserEmail = "freelancer@example.com"

// Stores holds all the repository interfaces for testing
type Stores struct {
	QuoteRepo    quote.Repository
	ClientRepo   client.Repository
	ProfileRepo  profile.Repository
	TemplateRepo template.Repository
	NoteRepo     quotenote.Repository
	APIKeyRepo   apikey.Repository
	TeamRepo     team.Repository
}

// BaseServiceTestSuite provides common setup for service tests: in-memory
// stores, a no-transaction DB client, fake email and auth, and an
// authenticated context.
type BaseServiceTestSuite struct {
	suite.Suite

	ctx    context.Context
	cfg    *config.Configuration
	log    *logger.Logger
	stores Stores
	db     postgres.IClient
	cache  cache.Cache
	email  *FakeEmailSender
	auth   *FakeAuthProvider
	now    time.Time
}

func (s *BaseServiceTestSuite) SetupSuite() {
	s.log = logger.NewNop()
	s.cfg = &config.Configuration{
		Deployment: config.DeploymentConfig{Mode: "local"},
		Server:     config.ServerConfig{Address: ":0"},
		Logging:    config.LoggingConfig{Level: "info"},
		Auth:       config.AuthConfig{JWTSecret: "test-secret"},
		App:        config.AppConfig{PublicBaseURL: "https://quoteflow.test"},
	}
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	quotes := NewInMemoryQuoteStore()
	s.stores = Stores{
		QuoteRepo:    quotes,
		ClientRepo:   NewInMemoryClientStore(),
		ProfileRepo:  NewInMemoryProfileStore(),
		TemplateRepo: NewInMemoryTemplateStore(),
		NoteRepo:     NewInMemoryNoteStore(quotes),
		APIKeyRepo:   NewInMemoryAPIKeyStore(),
		TeamRepo:     NewInMemoryTeamStore(),
	}
	s.db = NewMockPostgresClient(s.log)
	s.cache = cache.NewInMemoryCache()
	s.email = NewFakeEmailSender()
	s.auth = NewFakeAuthProvider()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.QuoteRepo.(*InMemoryQuoteStore).Clear()
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
	s.stores.ProfileRepo.(*InMemoryProfileStore).Clear()
	s.stores.TemplateRepo.(*InMemoryTemplateStore).Clear()
	s.stores.NoteRepo.(*InMemoryNoteStore).Clear()
	s.stores.APIKeyRepo.(*InMemoryAPIKeyStore).Clear()
	s.stores.TeamRepo.(*InMemoryTeamStore).Clear()
	s.cache.Flush(context.Background())
	s.email.Clear()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.log
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetEmail() *FakeEmailSender {
	return s.email
}

func (s *BaseServiceTestSuite) GetAuth() *FakeAuthProvider {
	return s.auth
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// SetupContext returns a context authenticated as the default test user.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, TestUserID)
	ctx = types.SetUserEmail(ctx, TestUserEmail)
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	return ctx
}
