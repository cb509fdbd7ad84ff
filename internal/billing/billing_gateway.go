package billing

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// Gateway is the narrow slice of the payment provider's API this service
// forwards to. Each call is a single best-effort request: no retries, no
// idempotency keys.
//
//go:generate mockgen -source=billing_gateway.go -destination=mock/billing_gateway_mock.go -package=mock
type Gateway interface {
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error
	SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	CreateSubscription(ctx context.Context, customerID, priceID string) (*stripe.Subscription, error)
	GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	ListSubscriptions(ctx context.Context, customerID string) ([]*stripe.Subscription, error)
	ListSubscriptionItems(ctx context.Context, subscriptionID string) ([]*stripe.SubscriptionItem, error)
	UpdateSubscriptionItemPrice(ctx context.Context, subscriptionID, itemID, priceID string) (*stripe.Subscription, error)
	SetCancelAtPeriodEnd(ctx context.Context, id string, cancel bool) (*stripe.Subscription, error)
	CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*stripe.SubscriptionSchedule, error)
	ListInvoices(ctx context.Context, subscriptionID string) ([]*stripe.Invoice, error)
}

type stripeGateway struct {
	sc *client.API
}

func NewStripeGateway(secretKey string) Gateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &stripeGateway{sc: sc}
}

func (g *stripeGateway) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx
	_, err := g.sc.PaymentMethods.Attach(paymentMethodID, params)
	return err
}

func (g *stripeGateway) SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	params := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	params.Context = ctx
	_, err := g.sc.Customers.Update(customerID, params)
	return err
}

func (g *stripeGateway) CreateSubscription(ctx context.Context, customerID, priceID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")
	return g.sc.Subscriptions.New(params)
}

func (g *stripeGateway) GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	return g.sc.Subscriptions.Get(id, params)
}

func (g *stripeGateway) ListSubscriptions(ctx context.Context, customerID string) ([]*stripe.Subscription, error) {
	params := &stripe.SubscriptionListParams{}
	params.Context = ctx
	if customerID != "" {
		params.Customer = stripe.String(customerID)
	}

	var subs []*stripe.Subscription
	iter := g.sc.Subscriptions.List(params)
	for iter.Next() {
		subs = append(subs, iter.Subscription())
	}
	return subs, iter.Err()
}

func (g *stripeGateway) ListSubscriptionItems(ctx context.Context, subscriptionID string) ([]*stripe.SubscriptionItem, error) {
	params := &stripe.SubscriptionItemListParams{
		Subscription: stripe.String(subscriptionID),
	}
	params.Context = ctx

	var items []*stripe.SubscriptionItem
	iter := g.sc.SubscriptionItems.List(params)
	for iter.Next() {
		items = append(items, iter.SubscriptionItem())
	}
	return items, iter.Err()
}

func (g *stripeGateway) UpdateSubscriptionItemPrice(ctx context.Context, subscriptionID, itemID, priceID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(itemID),
				Price: stripe.String(priceID),
			},
		},
	}
	params.Context = ctx
	return g.sc.Subscriptions.Update(subscriptionID, params)
}

func (g *stripeGateway) SetCancelAtPeriodEnd(ctx context.Context, id string, cancel bool) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(cancel),
	}
	params.Context = ctx
	return g.sc.Subscriptions.Update(id, params)
}

func (g *stripeGateway) CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx
	return g.sc.Subscriptions.Cancel(id, params)
}

func (g *stripeGateway) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*stripe.SubscriptionSchedule, error) {
	params := &stripe.SubscriptionScheduleParams{
		Customer: stripe.String(req.CustomerID),
	}
	params.Context = ctx
	if req.StartDate > 0 {
		params.StartDate = stripe.Int64(req.StartDate)
	} else {
		params.StartDateNow = stripe.Bool(true)
	}
	for _, phase := range req.Phases {
		p := &stripe.SubscriptionSchedulePhaseParams{
			Items: []*stripe.SubscriptionSchedulePhaseItemParams{
				{Price: stripe.String(phase.PriceID)},
			},
		}
		if phase.Iterations > 0 {
			p.Iterations = stripe.Int64(phase.Iterations)
		}
		params.Phases = append(params.Phases, p)
	}
	return g.sc.SubscriptionSchedules.New(params)
}

func (g *stripeGateway) ListInvoices(ctx context.Context, subscriptionID string) ([]*stripe.Invoice, error) {
	params := &stripe.InvoiceListParams{
		Subscription: stripe.String(subscriptionID),
	}
	params.Context = ctx

	var invoices []*stripe.Invoice
	iter := g.sc.Invoices.List(params)
	for iter.Next() {
		invoices = append(invoices, iter.Invoice())
	}
	return invoices, iter.Err()
}
