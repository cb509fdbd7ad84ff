package billing

import (
	"context"
	"errors"

	billingerrors "hr-erp/internal/billing/errors"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

//go:generate mockgen -source=billing_service.go -destination=mock/billing_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSubscriptionRequest) (*stripe.Subscription, error)
	List(ctx context.Context, customerID string) ([]*stripe.Subscription, error)
	Get(ctx context.Context, id string) (*stripe.Subscription, error)
	Update(ctx context.Context, id string, req UpdateSubscriptionRequest) (*stripe.Subscription, error)
	Cancel(ctx context.Context, id string) (*stripe.Subscription, error)
	Resume(ctx context.Context, id string) (*stripe.Subscription, error)
	Schedule(ctx context.Context, req CreateScheduleRequest) (*stripe.SubscriptionSchedule, error)
	Invoices(ctx context.Context, id string) ([]*stripe.Invoice, error)
}

type service struct {
	gateway Gateway
	logger  *zap.Logger
}

func NewService(gateway Gateway, logger ...*zap.Logger) Service {
	l := zap.L().Named("billing.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("billing.service")
	}
	return &service{gateway: gateway, logger: l}
}

// translateUpstream maps a provider error into the service's error shape,
// keeping the provider's message.
func translateUpstream(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return billingerrors.Upstream(err, stripeErr.Msg)
	}
	return billingerrors.Upstream(err, err.Error())
}

func (s *service) Create(ctx context.Context, req CreateSubscriptionRequest) (*stripe.Subscription, error) {
	s.logger.Debug("create subscription requested",
		zap.String("customer_id", req.CustomerID),
		zap.String("price_id", req.PriceID),
	)

	if req.PaymentMethodID != "" {
		if err := s.gateway.AttachPaymentMethod(ctx, req.PaymentMethodID, req.CustomerID); err != nil {
			s.logger.Warn("attach payment method failed", zap.Error(err))
			return nil, translateUpstream(err)
		}
		if err := s.gateway.SetDefaultPaymentMethod(ctx, req.CustomerID, req.PaymentMethodID); err != nil {
			s.logger.Warn("set default payment method failed", zap.Error(err))
			return nil, translateUpstream(err)
		}
	}

	sub, err := s.gateway.CreateSubscription(ctx, req.CustomerID, req.PriceID)
	if err != nil {
		s.logger.Warn("create subscription failed", zap.Error(err))
		return nil, translateUpstream(err)
	}

	s.logger.Info("create subscription success", zap.String("subscription_id", sub.ID))
	return sub, nil
}

func (s *service) List(ctx context.Context, customerID string) ([]*stripe.Subscription, error) {
	subs, err := s.gateway.ListSubscriptions(ctx, customerID)
	if err != nil {
		return nil, translateUpstream(err)
	}
	return subs, nil
}

func (s *service) Get(ctx context.Context, id string) (*stripe.Subscription, error) {
	sub, err := s.gateway.GetSubscription(ctx, id)
	if err != nil {
		return nil, billingerrors.SubscriptionNotFound(id)
	}
	return sub, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSubscriptionRequest) (*stripe.Subscription, error) {
	current, err := s.gateway.GetSubscription(ctx, id)
	if err != nil {
		return nil, translateUpstream(err)
	}

	if req.PaymentMethodID != "" {
		customerID := ""
		if current.Customer != nil {
			customerID = current.Customer.ID
		}
		if err := s.gateway.AttachPaymentMethod(ctx, req.PaymentMethodID, customerID); err != nil {
			return nil, translateUpstream(err)
		}
		if err := s.gateway.SetDefaultPaymentMethod(ctx, customerID, req.PaymentMethodID); err != nil {
			return nil, translateUpstream(err)
		}
	}

	if req.PriceID == "" {
		return current, nil
	}

	items, err := s.gateway.ListSubscriptionItems(ctx, id)
	if err != nil {
		return nil, translateUpstream(err)
	}
	if len(items) == 0 {
		return nil, billingerrors.SubscriptionNotFound(id)
	}

	updated, err := s.gateway.UpdateSubscriptionItemPrice(ctx, id, items[0].ID, req.PriceID)
	if err != nil {
		s.logger.Warn("update subscription failed", zap.Error(err))
		return nil, translateUpstream(err)
	}

	s.logger.Info("update subscription success", zap.String("subscription_id", id))
	return updated, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*stripe.Subscription, error) {
	sub, err := s.gateway.CancelSubscription(ctx, id)
	if err != nil {
		s.logger.Warn("cancel subscription failed", zap.Error(err))
		return nil, translateUpstream(err)
	}
	s.logger.Info("cancel subscription success", zap.String("subscription_id", id))
	return sub, nil
}

func (s *service) Resume(ctx context.Context, id string) (*stripe.Subscription, error) {
	current, err := s.gateway.GetSubscription(ctx, id)
	if err != nil {
		return nil, translateUpstream(err)
	}
	if !current.CancelAtPeriodEnd {
		return nil, billingerrors.ErrNotScheduledForCancellation
	}

	sub, err := s.gateway.SetCancelAtPeriodEnd(ctx, id, false)
	if err != nil {
		return nil, translateUpstream(err)
	}

	s.logger.Info("resume subscription success", zap.String("subscription_id", id))
	return sub, nil
}

func (s *service) Schedule(ctx context.Context, req CreateScheduleRequest) (*stripe.SubscriptionSchedule, error) {
	schedule, err := s.gateway.CreateSchedule(ctx, req)
	if err != nil {
		s.logger.Warn("create subscription schedule failed", zap.Error(err))
		return nil, translateUpstream(err)
	}
	s.logger.Info("create subscription schedule success", zap.String("schedule_id", schedule.ID))
	return schedule, nil
}

func (s *service) Invoices(ctx context.Context, id string) ([]*stripe.Invoice, error) {
	invoices, err := s.gateway.ListInvoices(ctx, id)
	if err != nil {
		return nil, translateUpstream(err)
	}
	return invoices, nil
}
