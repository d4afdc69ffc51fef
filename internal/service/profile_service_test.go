package service

import (
	"fmt"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/testutil"
	"github.com/quoteflow/quote-service/internal/types"
)

type ProfileServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ProfileService
}

func TestProfileService(t *testing.T) {
	suite.Run(t, new(ProfileServiceSuite))
}

func (s *ProfileServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewProfileService(ServiceParams{
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

func (s *ProfileServiceSuite) TestGetProfileProvisionsDefaults() {
	resp, err := s.service.GetProfile(s.GetContext())
	s.NoError(err)

	s.Equal(testutil.TestUserID, resp.ID)
	s.Equal(testutil.TestUserEmail, resp.Email)
	s.Equal(types.PlanFree, resp.Plan)
	s.Equal(types.CurrencyJMD, resp.DefaultCurrency)
	s.True(resp.DefaultTaxRate.Equal(decimal.NewFromInt(15)))
	s.Equal(30, resp.DefaultValidityDays)
	s.Equal(DefaultBrandColor, resp.BrandColor)
	s.False(resp.IsPro)

	// provisioned once, returned from then on
	again, err := s.service.GetProfile(s.GetContext())
	s.NoError(err)
	s.Equal(resp.ID, again.ID)
}

func (s *ProfileServiceSuite) TestUpdateProfileBasics() {
	_, err := s.service.GetProfile(s.GetContext())
	s.NoError(err)

	resp, err := s.service.UpdateProfile(s.GetContext(), dto.UpdateProfileRequest{
		FullName:     lo.ToPtr("Maya Chen"),
		BusinessName: lo.ToPtr("Chen Creative"),
		DefaultTerms: lo.ToPtr("Net 14"),
	})
	s.NoError(err)
	s.Equal("Maya Chen", resp.FullName)
	s.Equal("Chen Creative", resp.BusinessName)
	s.Equal("Net 14", resp.DefaultTerms)
}

func (s *ProfileServiceSuite) TestBrandColorChangeIsProGated() {
	_, err := s.service.GetProfile(s.GetContext())
	s.NoError(err)

	_, err = s.service.UpdateProfile(s.GetContext(), dto.UpdateProfileRequest{
		BrandColor: lo.ToPtr("#AA0044"),
	})
	s.Error(err)
	s.True(ierr.IsProRequired(err))

	// writing the default color back is not a branding change
	_, err = s.service.UpdateProfile(s.GetContext(), dto.UpdateProfileRequest{
		BrandColor: lo.ToPtr(DefaultBrandColor),
	})
	s.NoError(err)

	s.NoError(s.GetStores().ProfileRepo.UpdatePlan(s.GetContext(), testutil.TestUserID, types.PlanPro, ""))
	resp, err := s.service.UpdateProfile(s.GetContext(), dto.UpdateProfileRequest{
		BrandColor: lo.ToPtr("#AA0044"),
	})
	s.NoError(err)
	s.Equal("#AA0044", resp.BrandColor)
}

func (s *ProfileServiceSuite) TestLogoUploadIsProGated() {
	_, err := s.service.GetProfile(s.GetContext())
	s.NoError(err)

	_, err = s.service.UpdateProfile(s.GetContext(), dto.UpdateProfileRequest{
		LogoURL: lo.ToPtr("https://cdn.example.com/logo.png"),
	})
	s.Error(err)
	s.True(ierr.IsProRequired(err))
	// the denial must name the logo feature, not brand color
	s.Contains(fmt.Sprintf("%+v", err), string(types.FeatureLogoUpload))
}

func (s *ProfileServiceSuite) TestViewTrackingIsProGated() {
	_, err := s.service.GetProfile(s.GetContext())
	s.NoError(err)

	_, err = s.service.UpdateProfile(s.GetContext(), dto.UpdateProfileRequest{
		TrackViews: lo.ToPtr(true),
	})
	s.Error(err)
	s.True(ierr.IsProRequired(err))

	// switching tracking off needs no plan
	resp, err := s.service.UpdateProfile(s.GetContext(), dto.UpdateProfileRequest{
		TrackViews: lo.ToPtr(false),
	})
	s.NoError(err)
	s.False(resp.TrackViews)
}
