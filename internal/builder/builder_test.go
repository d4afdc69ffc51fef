package builder

import (
	"testing"

	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fresh() *State {
	return New(types.CurrencyJMD, decimal.NewFromInt(15), 30, "Net 30")
}

func TestNew_StartsOnStepOneWithDefaults(t *testing.T) {
	s := fresh()

	assert.Equal(t, StepClientInfo, s.Step())
	assert.Equal(t, types.CurrencyJMD, s.Currency)
	assert.Equal(t, 30, s.ValidityDays)
	assert.Equal(t, "Net 30", s.Terms)
}

func TestNext_RequiresClientAndTitle(t *testing.T) {
	s := fresh()

	s.Next()
	assert.Equal(t, StepClientInfo, s.Step(), "advance without client is a no-op")

	s.SetClient("client_01", "")
	s.Next()
	assert.Equal(t, StepClientInfo, s.Step(), "advance without title is a no-op")

	s.SetClient("client_01", "Website redesign")
	s.Next()
	assert.Equal(t, StepLineItems, s.Step())
}

func TestNext_LaterStepsAdvanceUnconditionally(t *testing.T) {
	s := fresh()
	s.SetClient("client_01", "Website redesign")
	s.Next()

	// no line items needed to move 2→3, no terms needed to move 3→4
	s.Next()
	assert.Equal(t, StepTerms, s.Step())
	s.Next()
	assert.Equal(t, StepReview, s.Step())

	// review is the last step
	s.Next()
	assert.Equal(t, StepReview, s.Step())
}

func TestBack_KeepsStateIntact(t *testing.T) {
	s := fresh()
	s.SetClient("client_01", "Website redesign")
	s.Next()
	s.AddItem(LineItemInput{Description: "Design", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500)})
	s.Next()

	s.Back()
	s.Back()
	assert.Equal(t, StepClientInfo, s.Step())
	assert.Equal(t, "client_01", s.ClientID)
	assert.Len(t, s.Items, 1)

	s.Back()
	assert.Equal(t, StepClientInfo, s.Step(), "back off step 1 is a no-op")
}

func TestApplyTemplate_ReplacesEverything(t *testing.T) {
	s := fresh()
	s.SetClient("client_01", "Website redesign")
	s.AddItem(LineItemInput{Description: "Old row", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)})

	s.ApplyTemplate(decimal.NewFromInt(10), "Net 14", []LineItemInput{
		{Description: "Logo design", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000)},
		{Description: "Revisions", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(150)},
	})

	assert.Len(t, s.Items, 2)
	assert.Equal(t, "Logo design", s.Items[0].Description)
	assert.Equal(t, "Net 14", s.Terms)
	assert.True(t, s.TaxRate.Equal(decimal.NewFromInt(10)))

	// client selection survives the template
	assert.Equal(t, "client_01", s.ClientID)
	assert.Equal(t, "Website redesign", s.Title)
}

func TestRemoveItem(t *testing.T) {
	s := fresh()
	s.AddItem(LineItemInput{Description: "a"})
	s.AddItem(LineItemInput{Description: "b"})

	s.RemoveItem(5)
	assert.Len(t, s.Items, 2)

	s.RemoveItem(0)
	assert.Len(t, s.Items, 1)
	assert.Equal(t, "b", s.Items[0].Description)
}

func TestBuildRequest_OnlyOnReview(t *testing.T) {
	s := fresh()
	s.SetClient("client_01", "Website redesign")

	_, err := s.BuildRequest()
	assert.True(t, ierr.IsInvalidOperation(err))

	s.Next()
	s.AddItem(LineItemInput{Description: "Design", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500)})
	s.Next()
	s.Next()

	req, err := s.BuildRequest()
	assert.NoError(t, err)
	assert.Equal(t, "client_01", req.ClientID)
	assert.False(t, req.IsEdit())
	assert.Len(t, req.Items, 1)

	// state survives BuildRequest so a failed submit resumes on step 4
	assert.Equal(t, StepReview, s.Step())
	assert.Len(t, s.Items, 1)
}

func TestLoad_EditMode(t *testing.T) {
	items := []LineItemInput{{Description: "Design", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500)}}

	s, err := Load("quote_01", types.QuoteStatusDraft, "client_01", "Website redesign", types.CurrencyUSD, items, decimal.NewFromInt(15), false, 14, "Net 14")
	assert.NoError(t, err)
	assert.Equal(t, StepClientInfo, s.Step())

	s.Next()
	s.Next()
	s.Next()
	req, err := s.BuildRequest()
	assert.NoError(t, err)
	assert.True(t, req.IsEdit())
	assert.Equal(t, "quote_01", req.QuoteID)
}

func TestLoad_RejectsNonDraft(t *testing.T) {
	for _, status := range []types.QuoteStatus{types.QuoteStatusSent, types.QuoteStatusAccepted, types.QuoteStatusExpired} {
		_, err := Load("quote_01", status, "client_01", "t", types.CurrencyUSD, nil, decimal.Zero, false, 30, "")
		assert.True(t, ierr.IsInvalidOperation(err), "status %s", status)
	}
}
