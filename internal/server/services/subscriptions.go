package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/payments"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const currencyINR = "INR"

// planDays is how long one paid period lasts.
var planDays = map[string]int{
	models.PlanMonthly: 30,
	models.PlanYearly:  365,
}

// Gateway creates checkout orders on the hosted payment provider.
type Gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*payments.Order, error)
}

type SubscriptionConfig struct {
	KeySecret     string
	WebhookSecret string
	MonthlyPrice  decimal.Decimal
	YearlyPrice   decimal.Decimal
}

// Checkout is what the browser needs to open the gateway's checkout form.
type Checkout struct {
	OrderID     string
	KeyID       string
	Plan        string
	AmountMinor int64
	Currency    string
}

type SubscriptionService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	gateway       Gateway
	keySecret     string
	webhookSecret string
	prices        map[string]decimal.Decimal
	now           func() time.Time
}

func NewSubscriptionService(db *sql.DB, m repomanager.RepositoryManager, gw Gateway, cfg SubscriptionConfig) *SubscriptionService {
	return &SubscriptionService{
		db:            db,
		repomanager:   m,
		gateway:       gw,
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
		prices: map[string]decimal.Decimal{
			models.PlanMonthly: cfg.MonthlyPrice,
			models.PlanYearly:  cfg.YearlyPrice,
		},
		now: time.Now,
	}
}

// CreateOrder opens a gateway order for plan and records it as created.
func (s *SubscriptionService) CreateOrder(ctx context.Context, salonID, plan string) (*Checkout, error) {
	if err := oneOf("plan", plan, models.PlanMonthly, models.PlanYearly); err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: payments are not configured", common.ErrorInternal)
	}
	price := s.prices[plan]
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: no price configured for %s", common.ErrorInternal, plan)
	}
	amountMinor := price.Mul(hundred).Round(0).IntPart()

	order, err := s.gateway.CreateOrder(ctx, amountMinor, currencyINR, uuid.NewString(),
		map[string]string{"salon_id": salonID, "plan": plan})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if _, err := s.repomanager.Payments(s.db).Create(ctx, &models.Payment{
		SalonID:        salonID,
		Plan:           plan,
		Amount:         price,
		Currency:       currencyINR,
		GatewayOrderID: order.ID,
		Status:         models.PaymentCreated,
	}); err != nil {
		return nil, err
	}

	return &Checkout{
		OrderID:     order.ID,
		KeyID:       s.gateway.KeyID(),
		Plan:        plan,
		AmountMinor: amountMinor,
		Currency:    currencyINR,
	}, nil
}

// Verify checks the checkout callback signature and activates the plan.
// Verifying an already paid order again is a no-op.
func (s *SubscriptionService) Verify(ctx context.Context, salonID, orderID, paymentID, signature string) (*models.Subscription, error) {
	if orderID == "" || paymentID == "" {
		return nil, invalid("orderId and paymentId are required")
	}
	if !payments.VerifyPayment(orderID, paymentID, signature, s.keySecret) {
		return nil, common.ErrInvalidSignature
	}
	if err := s.markPaid(ctx, salonID, orderID, paymentID); err != nil {
		return nil, err
	}
	return s.Get(ctx, salonID)
}

// HandleWebhook applies a signed gateway event. Events for unknown orders and
// event types the service does not act on are accepted and ignored.
func (s *SubscriptionService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if s.webhookSecret == "" || !payments.VerifyWebhook(body, signature, s.webhookSecret) {
		return common.ErrInvalidSignature
	}
	ev, err := payments.ParseWebhook(body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if ev.OrderID == "" {
		return nil
	}

	switch {
	case ev.Paid():
		err = s.markPaid(ctx, "", ev.OrderID, ev.PaymentID)
	case ev.Type == payments.EventPaymentFailed:
		err = s.markFailed(ctx, ev.OrderID, ev.PaymentID)
	default:
		return nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

// markPaid extends the subscription from the later of now and the current
// expiry. salonID, when set, must own the order.
func (s *SubscriptionService) markPaid(ctx context.Context, salonID, orderID, paymentID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		payRepo := s.repomanager.Payments(tx)
		p, err := payRepo.GetByOrderID(ctx, orderID, true)
		if err != nil {
			return err
		}
		if salonID != "" && p.SalonID != salonID {
			return common.ErrorNotFound
		}
		if p.Status == models.PaymentPaid {
			return nil
		}

		now := s.now().UTC()
		if err := payRepo.MarkPaid(ctx, p.ID, paymentID, now); err != nil {
			return err
		}

		salonRepo := s.repomanager.Salons(tx)
		salon, err := salonRepo.GetByID(ctx, p.SalonID)
		if err != nil {
			return err
		}
		base := now
		if salon.SubscriptionExpiresAt != nil && salon.SubscriptionExpiresAt.After(base) {
			base = *salon.SubscriptionExpiresAt
		}
		return salonRepo.SetSubscription(ctx, p.SalonID, p.Plan, base.AddDate(0, 0, planDays[p.Plan]))
	})
}

func (s *SubscriptionService) markFailed(ctx context.Context, orderID, paymentID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Payments(tx)
		p, err := repo.GetByOrderID(ctx, orderID, true)
		if err != nil {
			return err
		}
		if p.Status != models.PaymentCreated {
			return nil
		}
		return repo.MarkFailed(ctx, p.ID, paymentID)
	})
}

// Get reports the plan with a derived status: trial, active or expired.
func (s *SubscriptionService) Get(ctx context.Context, salonID string) (*models.Subscription, error) {
	salon, err := s.repomanager.Salons(s.db).GetByID(ctx, salonID)
	if err != nil {
		return nil, err
	}
	sub := &models.Subscription{Plan: salon.Plan, ExpiresAt: salon.SubscriptionExpiresAt}
	switch {
	case salon.Plan == models.PlanTrial || salon.SubscriptionExpiresAt == nil:
		sub.Status = "trial"
	case salon.SubscriptionExpiresAt.Before(s.now()):
		sub.Status = "expired"
	default:
		sub.Status = "active"
	}
	return sub, nil
}

func (s *SubscriptionService) Payments(ctx context.Context, salonID string) ([]*models.Payment, error) {
	return s.repomanager.Payments(s.db).ListBySalon(ctx, salonID)
}
