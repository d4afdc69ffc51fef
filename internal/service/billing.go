package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/cache"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type BillingService interface {
	CreateCheckoutSession(ctx context.Context, req dto.CreateCheckoutSessionRequest) (*dto.CreateCheckoutSessionResponse, error)
	// HandleWebhook verifies and applies a Stripe event. Unknown event types
	// are acknowledged and dropped.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	stripe.Key = params.Config.Stripe.SecretKey
	return &billingService{ServiceParams: params}
}

func (s *billingService) CreateCheckoutSession(ctx context.Context, req dto.CreateCheckoutSessionRequest) (*dto.CreateCheckoutSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	priceKey := fmt.Sprintf("%s_%s", req.Plan, req.Interval)
	priceID, ok := s.Config.Stripe.PriceIDs[priceKey]
	if !ok {
		return nil, ierr.NewError("no price configured for plan").
			WithHint("This plan is not available for purchase right now").
			WithReportableDetails(map[string]any{"plan": req.Plan, "interval": req.Interval}).
			Mark(ierr.ErrSystem)
	}

	userID := types.GetUserID(ctx)
	base := s.Config.App.PublicBaseURL

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(priceID),
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(base + "/billing/success"),
		CancelURL:         stripe.String(base + "/billing"),
		ClientReferenceID: stripe.String(userID),
	}
	if email := types.GetUserEmail(ctx); email != "" {
		params.CustomerEmail = stripe.String(email)
	}
	params.Metadata = map[string]string{
		"user_id": userID,
		"plan":    string(req.Plan),
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to start checkout").
			Mark(ierr.ErrHTTPClient)
	}

	s.Logger.Infow("checkout session created", "user_id", userID, "plan", req.Plan)
	return &dto.CreateCheckoutSessionResponse{URL: sess.URL}, nil
}

func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.Config.Stripe.WebhookSecret)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Invalid webhook signature").
			Mark(ierr.ErrUnauthorized)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return ierr.WithError(err).Mark(ierr.ErrValidation)
		}
		return s.applyCheckout(ctx, &sess)
	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return ierr.WithError(err).Mark(ierr.ErrValidation)
		}
		return s.applyCancellation(ctx, &sub)
	default:
		s.Logger.Debugw("ignoring webhook event", "type", event.Type)
		return nil
	}
}

func (s *billingService) applyCheckout(ctx context.Context, sess *stripe.CheckoutSession) error {
	userID := sess.ClientReferenceID
	planName := sess.Metadata["plan"]
	if userID == "" || planName == "" {
		return ierr.NewError("checkout session missing references").
			WithReportableDetails(map[string]any{"session_id": sess.ID}).
			Mark(ierr.ErrValidation)
	}

	plan := types.PlanTier(planName)
	if err := plan.Validate(); err != nil {
		return err
	}

	var subID string
	if sess.Subscription != nil {
		subID = sess.Subscription.ID
	}
	if err := s.ProfileRepo.UpdatePlan(ctx, userID, plan, subID); err != nil {
		return err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixProfile, userID))
	s.Logger.Infow("plan upgraded", "user_id", userID, "plan", plan)
	return nil
}

func (s *billingService) applyCancellation(ctx context.Context, sub *stripe.Subscription) error {
	userID := sub.Metadata["user_id"]
	if userID == "" {
		// fall back to matching the stored subscription id
		s.Logger.Warnw("subscription cancelled without user metadata", "subscription_id", sub.ID)
		return nil
	}

	if err := s.ProfileRepo.UpdatePlan(ctx, userID, types.PlanFree, ""); err != nil {
		return err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixProfile, userID))
	s.Logger.Infow("plan downgraded to free", "user_id", userID)
	return nil
}
