package lib

import (
	"context"
	"log"

	"github.com/stripe/stripe-go/v82"
)

// CheckoutParams describes a single-line-item hosted checkout.
type CheckoutParams struct {
	AmountMinor int64
	Currency    string
	Name        string
	Description string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession is the processor-independent view of a session. Status and
// PaymentStatus carry the processor's live strings verbatim.
type CheckoutSession struct {
	ID            string
	URL           string
	Currency      string
	Status        string
	PaymentStatus string
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

type stripeGateway struct {
	client *stripe.Client
}

func NewStripeGateway(apiKey string) PaymentGateway {
	return &stripeGateway{client: stripe.NewClient(apiKey)}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error) {
	createParams := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String("payment"),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.AmountMinor),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name:        stripe.String(params.Name),
						Description: stripe.String(params.Description),
					},
				},
			},
		},
		Metadata: params.Metadata,
	}
	cs, err := g.client.V1CheckoutSessions.Create(ctx, createParams)
	if err != nil {
		log.Printf("CreateCheckoutSession failed: %s\n", err.Error())
		return nil, err
	}
	return sessionInfo(cs), nil
}

func (g *stripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	cs, err := g.client.V1CheckoutSessions.Retrieve(ctx, sessionID, nil)
	if err != nil {
		log.Printf("RetrieveSession failed for %s: %s\n", sessionID, err.Error())
		return nil, err
	}
	return sessionInfo(cs), nil
}

func sessionInfo(cs *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:            cs.ID,
		URL:           cs.URL,
		Currency:      string(cs.Currency),
		Status:        string(cs.Status),
		PaymentStatus: string(cs.PaymentStatus),
	}
}
