package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/testutil"
	"github.com/quoteflow/quote-service/internal/types"
)

type APIKeyServiceSuite struct {
	testutil.BaseServiceTestSuite
	service APIKeyService
}

func TestAPIKeyService(t *testing.T) {
	suite.Run(t, new(APIKeyServiceSuite))
}

func (s *APIKeyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewAPIKeyService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		Cache:        s.GetCache(),
		Email:        s.GetEmail(),
		Auth:         s.GetAuth(),
		QuoteRepo:    stores.QuoteRepo,
		ClientRepo:   stores.ClientRepo,
		ProfileRepo:  stores.ProfileRepo,
		TemplateRepo: stores.TemplateRepo,
		NoteRepo:     stores.NoteRepo,
		APIKeyRepo:   stores.APIKeyRepo,
		TeamRepo:     stores.TeamRepo,
	})
}

func (s *APIKeyServiceSuite) upgradeToBusiness() {
	_, err := NewProfileService(ServiceParams{
		Logger: s.GetLogger(), Config: s.GetConfig(), DB: s.GetDB(),
		Cache: s.GetCache(), Email: s.GetEmail(), Auth: s.GetAuth(),
		ProfileRepo: s.GetStores().ProfileRepo,
	}).GetProfile(s.GetContext())
	s.NoError(err)
	s.NoError(s.GetStores().ProfileRepo.UpdatePlan(s.GetContext(), testutil.TestUserID, types.PlanBusiness, ""))
	s.GetCache().Flush(s.GetContext())
}

func (s *APIKeyServiceSuite) TestAPIKeysAreBusinessGated() {
	_, err := s.service.CreateAPIKey(s.GetContext(), dto.CreateAPIKeyRequest{Name: "ci"})
	s.Error(err)
	s.True(ierr.IsBusinessRequired(err))
}

func (s *APIKeyServiceSuite) TestCreateAPIKeyShowsSecretOnce() {
	s.upgradeToBusiness()

	created, err := s.service.CreateAPIKey(s.GetContext(), dto.CreateAPIKeyRequest{Name: "ci"})
	s.NoError(err)
	s.True(strings.HasPrefix(created.Key, "qf_"))
	s.Equal(created.Key[:8], created.Prefix)

	// listings never carry the raw key, only its prefix
	keys, err := s.service.ListAPIKeys(s.GetContext())
	s.NoError(err)
	s.Len(keys, 1)
	s.Equal(created.Prefix, keys[0].Prefix)
	s.NotEqual(created.Key, keys[0].HashedKey)
}

func (s *APIKeyServiceSuite) TestAuthenticate() {
	s.upgradeToBusiness()

	created, err := s.service.CreateAPIKey(s.GetContext(), dto.CreateAPIKeyRequest{Name: "ci"})
	s.NoError(err)

	k, err := s.service.Authenticate(s.GetContext(), created.Key)
	s.NoError(err)
	s.Equal(testutil.TestUserID, k.UserID)

	stored, err := s.GetStores().APIKeyRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotNil(stored.LastUsedAt)
}

func (s *APIKeyServiceSuite) TestAuthenticateRejectsBadKeys() {
	_, err := s.service.Authenticate(s.GetContext(), "not-a-key")
	s.Error(err)

	_, err = s.service.Authenticate(s.GetContext(), "qf_0000000000000000000000000000")
	s.Error(err)
}

func (s *APIKeyServiceSuite) TestDeleteForeignKeyIsNotFound() {
	s.upgradeToBusiness()
	created, err := s.service.CreateAPIKey(s.GetContext(), dto.CreateAPIKeyRequest{Name: "ci"})
	s.NoError(err)

	otherCtx := types.SetUserID(s.GetContext(), "user_other")
	err = s.service.DeleteAPIKey(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
