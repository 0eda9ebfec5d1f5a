package httpapi

import (
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/server/auth"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/shopspring/decimal"
)

// Wire types. Money is a decimal string ("1180.00") so that clients never
// round through float64.

type money struct{ decimal.Decimal }

func (m money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

type sessionDTO struct {
	Role      string `json:"role"`
	SalonID   string `json:"salonId,omitempty"`
	SalonName string `json:"salonName,omitempty"`
}

func toSessionDTO(s *auth.Session) sessionDTO {
	return sessionDTO{Role: s.Role, SalonID: s.SalonID, SalonName: s.SalonName}
}

type salonDTO struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	Status                string     `json:"status"`
	Plan                  string     `json:"plan"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}

func toSalonDTO(s *models.Salon) salonDTO {
	return salonDTO{
		ID:                    s.ID,
		Name:                  s.Name,
		Email:                 s.Email,
		Phone:                 s.Phone,
		Status:                s.Status,
		Plan:                  s.Plan,
		SubscriptionExpiresAt: s.SubscriptionExpiresAt,
		CreatedAt:             s.CreatedAt,
	}
}

type customerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCustomerDTO(c *models.Customer) customerDTO {
	return customerDTO{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, Notes: c.Notes, CreatedAt: c.CreatedAt}
}

type staffDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	Role           string          `json:"role"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	Active         bool            `json:"active"`
}

func toStaffDTO(s *models.Staff) staffDTO {
	return staffDTO{ID: s.ID, Name: s.Name, Phone: s.Phone, Role: s.Role, CommissionRate: s.CommissionRate, Active: s.Active}
}

type serviceDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           money  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
	Active          bool   `json:"active"`
}

func toServiceDTO(s *models.SalonService) serviceDTO {
	return serviceDTO{ID: s.ID, Name: s.Name, Price: money{s.Price}, DurationMinutes: s.DurationMinutes, Active: s.Active}
}

type appointmentDTO struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	StaffID    string    `json:"staffId"`
	ServiceID  string    `json:"serviceId"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
}

func toAppointmentDTO(a *models.Appointment, loc *time.Location) appointmentDTO {
	return appointmentDTO{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		StaffID:    a.StaffID,
		ServiceID:  a.ServiceID,
		StartsAt:   a.StartsAt.In(loc),
		EndsAt:     a.EndsAt.In(loc),
		Status:     a.Status,
		Notes:      a.Notes,
	}
}

type invoiceLineDTO struct {
	Kind        string `json:"kind"`
	RefID       string `json:"refId"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   money  `json:"unitPrice"`
	Amount      money  `json:"amount"`
}

type invoiceDTO struct {
	ID             string           `json:"id"`
	Number         int64            `json:"number"`
	CustomerID     string           `json:"customerId,omitempty"`
	AppointmentID  string           `json:"appointmentId,omitempty"`
	IdempotencyKey string           `json:"idempotencyKey"`
	Subtotal       money            `json:"subtotal"`
	Discount       money            `json:"discount"`
	TaxRate        decimal.Decimal  `json:"taxRate"`
	Tax            money            `json:"tax"`
	Total          money            `json:"total"`
	PaymentMethod  string           `json:"paymentMethod"`
	Status         string           `json:"status"`
	VoidReason     string           `json:"voidReason,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	Lines          []invoiceLineDTO `json:"lines,omitempty"`
}

func toInvoiceDTO(inv *models.Invoice, loc *time.Location) invoiceDTO {
	out := invoiceDTO{
		ID:             inv.ID,
		Number:         inv.Number,
		CustomerID:     inv.CustomerID,
		AppointmentID:  inv.AppointmentID,
		IdempotencyKey: inv.IdempotencyKey,
		Subtotal:       money{inv.Subtotal},
		Discount:       money{inv.Discount},
		TaxRate:        inv.TaxRate,
		Tax:            money{inv.Tax},
		Total:          money{inv.Total},
		PaymentMethod:  inv.PaymentMethod,
		Status:         inv.Status,
		VoidReason:     inv.VoidReason,
		CreatedAt:      inv.CreatedAt.In(loc),
	}
	for _, l := range inv.Lines {
		out.Lines = append(out.Lines, invoiceLineDTO{
			Kind:        l.Kind,
			RefID:       l.RefID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   money{l.UnitPrice},
			Amount:      money{l.Amount},
		})
	}
	return out
}

type productDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku,omitempty"`
	UnitPrice    money  `json:"unitPrice"`
	Stock        int    `json:"stock"`
	ReorderLevel int    `json:"reorderLevel"`
	LowStock     bool   `json:"lowStock"`
}

func toProductDTO(p *models.Product) productDTO {
	return productDTO{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		UnitPrice:    money{p.UnitPrice},
		Stock:        p.Stock,
		ReorderLevel: p.ReorderLevel,
		LowStock:     p.Stock <= p.ReorderLevel,
	}
}

type movementDTO struct {
	ID        int64            `json:"id"`
	Delta     int              `json:"delta"`
	Kind      string           `json:"kind"`
	UnitCost  *decimal.Decimal `json:"unitCost,omitempty"`
	Reference string           `json:"reference,omitempty"`
	Note      string           `json:"note,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func toMovementDTO(m *models.StockMovement) movementDTO {
	out := movementDTO{ID: m.ID, Delta: m.Delta, Kind: m.Kind, Reference: m.Reference, Note: m.Note, CreatedAt: m.CreatedAt}
	if m.UnitCost.Valid {
		cost := m.UnitCost.Decimal
		out.UnitCost = &cost
	}
	return out
}

type attendanceDTO struct {
	StaffID  string `json:"staffId"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`
}

func toAttendanceDTO(a *models.Attendance) attendanceDTO {
	return attendanceDTO{
		StaffID:  a.StaffID,
		Date:     a.WorkDate.Format(common.DateLayout),
		Status:   a.Status,
		CheckIn:  a.CheckIn,
		CheckOut: a.CheckOut,
	}
}

type attendanceSummaryDTO struct {
	StaffID string `json:"staffId"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	HalfDay int    `json:"halfDay"`
	Leave   int    `json:"leave"`
}

type subscriptionDTO struct {
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func toSubscriptionDTO(s *models.Subscription) subscriptionDTO {
	return subscriptionDTO{Plan: s.Plan, Status: s.Status, ExpiresAt: s.ExpiresAt}
}

type paymentDTO struct {
	ID        string     `json:"id"`
	Plan      string     `json:"plan"`
	Amount    money      `json:"amount"`
	Currency  string     `json:"currency"`
	OrderID   string     `json:"orderId"`
	PaymentID string     `json:"paymentId,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

func toPaymentDTO(p *models.Payment) paymentDTO {
	return paymentDTO{
		ID:        p.ID,
		Plan:      p.Plan,
		Amount:    money{p.Amount},
		Currency:  p.Currency,
		OrderID:   p.GatewayOrderID,
		PaymentID: p.GatewayPaymentID,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		PaidAt:    p.PaidAt,
	}
}

type revenueDTO struct {
	Day          string `json:"day"`
	InvoiceCount int    `json:"invoiceCount"`
	Gross        money  `json:"gross"`
	Discount     money  `json:"discount"`
	Tax          money  `json:"tax"`
	Net          money  `json:"net"`
	Cash         money  `json:"cash"`
	Card         money  `json:"card"`
	UPI          money  `json:"upi"`
}

func toRevenueDTO(r *models.DailyRevenue) revenueDTO {
	return revenueDTO{
		Day:          r.Day.Format(common.DateLayout),
		InvoiceCount: r.InvoiceCount,
		Gross:        money{r.Gross},
		Discount:     money{r.Discount},
		Tax:          money{r.Tax},
		Net:          money{r.Net},
		Cash:         money{r.Cash},
		Card:         money{r.Card},
		UPI:          money{r.UPI},
	}
}

type dashboardDTO struct {
	AppointmentsToday int   `json:"appointmentsToday"`
	RevenueToday      money `json:"revenueToday"`
	InvoicesToday     int   `json:"invoicesToday"`
	LowStockProducts  int   `json:"lowStockProducts"`
}

func toDashboardDTO(d *models.Dashboard) dashboardDTO {
	return dashboardDTO{
		AppointmentsToday: d.AppointmentsToday,
		RevenueToday:      money{d.RevenueToday},
		InvoicesToday:     d.InvoicesToday,
		LowStockProducts:  d.LowStockProducts,
	}
}

// mapAll converts a slice of models with fn.
func mapAll[M any, D any](in []M, fn func(M) D) []D {
	out := make([]D, 0, len(in))
	for _, m := range in {
		out = append(out, fn(m))
	}
	return out
}
