package httpapi

import (
	"io"
	"net/http"

	"github.com/ansuman15/salon-software-sub002/internal/server/payments"
	"github.com/labstack/echo/v4"
)

// maxWebhookBody caps what we read before verifying the signature.
const maxWebhookBody = 256 << 10

type orderRequest struct {
	Plan string `json:"plan"`
}

type checkoutResponse struct {
	OrderID     string `json:"orderId"`
	KeyID       string `json:"keyId"`
	Plan        string `json:"plan"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
}

type verifyRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

func (s *Server) getSubscription(c echo.Context) error {
	sub, err := s.svc.Subscriptions.Get(c.Request().Context(), salonID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSubscriptionDTO(sub))
}

func (s *Server) createSubscriptionOrder(c echo.Context) error {
	var req orderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	co, err := s.svc.Subscriptions.CreateOrder(ctx, salonID(c), req.Plan)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "subscription order created", "salon_id", salonID(c), "order_id", co.OrderID, "plan", co.Plan)
	return c.JSON(http.StatusCreated, checkoutResponse(*co))
}

func (s *Server) verifySubscription(c echo.Context) error {
	var req verifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	sub, err := s.svc.Subscriptions.Verify(ctx, salonID(c), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "subscription payment verified", "salon_id", salonID(c), "order_id", req.OrderID)
	return c.JSON(http.StatusOK, toSubscriptionDTO(sub))
}

func (s *Server) listSubscriptionPayments(c echo.Context) error {
	list, err := s.svc.Subscriptions.Payments(c.Request().Context(), salonID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, toPaymentDTO))
}

// paymentWebhook needs the raw body: the signature covers its exact bytes.
func (s *Server) paymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}
	if err := s.svc.Subscriptions.HandleWebhook(ctx, body, c.Request().Header.Get(payments.SignatureHeader)); err != nil {
		s.logger.Warn(ctx, "payment webhook rejected", "error", err)
		return err
	}
	return c.NoContent(http.StatusOK)
}
