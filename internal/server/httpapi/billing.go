package httpapi

import (
	"net/http"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// IdempotencyHeader may carry the client key instead of the body field.
const IdempotencyHeader = "Idempotency-Key"

type invoiceLineRequest struct {
	Kind      string           `json:"kind"`
	RefID     string           `json:"refId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

type invoiceRequest struct {
	CustomerID     string               `json:"customerId"`
	AppointmentID  string               `json:"appointmentId"`
	PaymentMethod  string               `json:"paymentMethod"`
	IdempotencyKey string               `json:"idempotencyKey"`
	Discount       decimal.Decimal      `json:"discount"`
	TaxRate        decimal.Decimal      `json:"taxRate"`
	Lines          []invoiceLineRequest `json:"lines"`
}

type voidRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) listInvoices(c echo.Context) error {
	from, to, err := s.timeRange(c)
	if err != nil {
		return err
	}
	list, err := s.svc.Billing.List(c.Request().Context(), salonID(c), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAll(list, s.invoiceDTO))
}

func (s *Server) createInvoice(c echo.Context) error {
	var req invoiceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	key := req.IdempotencyKey
	if key == "" {
		key = c.Request().Header.Get(IdempotencyHeader)
	}

	in := services.InvoiceInput{
		CustomerID:     req.CustomerID,
		AppointmentID:  req.AppointmentID,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: key,
		Discount:       req.Discount,
		TaxRate:        req.TaxRate,
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, services.InvoiceLineInput(l))
	}

	ctx := c.Request().Context()
	inv, err := s.svc.Billing.CreateInvoice(ctx, salonID(c), in)
	if err != nil {
		return err
	}
	s.metrics.InvoiceCreated()
	s.logger.Info(ctx, "invoice created", "salon_id", salonID(c), "invoice_id", inv.ID, "total", inv.Total.StringFixed(2))
	return c.JSON(http.StatusCreated, s.invoiceDTO(inv))
}

func (s *Server) getInvoice(c echo.Context) error {
	inv, err := s.svc.Billing.Get(c.Request().Context(), salonID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.invoiceDTO(inv))
}

func (s *Server) voidInvoice(c echo.Context) error {
	var req voidRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	inv, err := s.svc.Billing.Void(ctx, salonID(c), c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "invoice voided", "salon_id", salonID(c), "invoice_id", inv.ID)
	return c.JSON(http.StatusOK, s.invoiceDTO(inv))
}

func (s *Server) invoiceDTO(inv *models.Invoice) invoiceDTO {
	return toInvoiceDTO(inv, s.loc)
}
