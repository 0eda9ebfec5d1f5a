package httpapi

import (
	"context"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/server/auth"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/services"
	"github.com/shopspring/decimal"
)

// The handlers depend on these narrow views of the services package so that
// tests can substitute fakes.

type sessionSvc interface {
	LoginSalon(ctx context.Context, email, activationKey string) (*auth.Session, string, error)
	LoginAdmin(ctx context.Context, username, password string) (*auth.Session, string, error)
	Parse(token string) (*auth.Session, error)
	ValidityDuration() time.Duration
}

type salonAdminSvc interface {
	Create(ctx context.Context, in services.NewSalonInput) (*models.Salon, string, error)
	List(ctx context.Context) ([]*models.Salon, error)
	Get(ctx context.Context, id string) (*models.Salon, error)
	SetStatus(ctx context.Context, id, status string) error
	RotateKey(ctx context.Context, id, custom string) (string, error)
}

type customerSvc interface {
	List(ctx context.Context, salonID string, f models.ListFilter) ([]*models.Customer, error)
	Get(ctx context.Context, salonID, id string) (*models.Customer, error)
	Create(ctx context.Context, salonID string, in services.CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, salonID, id string, in services.CustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, salonID, id string) error
}

type staffSvc interface {
	List(ctx context.Context, salonID string, activeOnly bool) ([]*models.Staff, error)
	Get(ctx context.Context, salonID, id string) (*models.Staff, error)
	Create(ctx context.Context, salonID string, in services.StaffInput) (*models.Staff, error)
	Update(ctx context.Context, salonID, id string, in services.StaffInput) (*models.Staff, error)
	Delete(ctx context.Context, salonID, id string) error
}

type catalogSvc interface {
	List(ctx context.Context, salonID string, activeOnly bool) ([]*models.SalonService, error)
	Get(ctx context.Context, salonID, id string) (*models.SalonService, error)
	Create(ctx context.Context, salonID string, in services.ServiceInput) (*models.SalonService, error)
	Update(ctx context.Context, salonID, id string, in services.ServiceInput) (*models.SalonService, error)
	Delete(ctx context.Context, salonID, id string) error
}

type appointmentSvc interface {
	Create(ctx context.Context, salonID string, in services.AppointmentInput) (*models.Appointment, error)
	Get(ctx context.Context, salonID, id string) (*models.Appointment, error)
	List(ctx context.Context, salonID string, from, to time.Time, staffID string) ([]*models.Appointment, error)
	Reschedule(ctx context.Context, salonID, id string, startsAt time.Time) (*models.Appointment, error)
	SetStatus(ctx context.Context, salonID, id, status string) (*models.Appointment, error)
}

type billingSvc interface {
	CreateInvoice(ctx context.Context, salonID string, in services.InvoiceInput) (*models.Invoice, error)
	Get(ctx context.Context, salonID, id string) (*models.Invoice, error)
	List(ctx context.Context, salonID string, from, to time.Time) ([]*models.Invoice, error)
	Void(ctx context.Context, salonID, id, reason string) (*models.Invoice, error)
}

type inventorySvc interface {
	List(ctx context.Context, salonID string) ([]*models.Product, error)
	Get(ctx context.Context, salonID, id string) (*models.Product, error)
	Create(ctx context.Context, salonID string, in services.ProductInput) (*models.Product, error)
	Update(ctx context.Context, salonID, id string, in services.ProductInput) (*models.Product, error)
	Purchase(ctx context.Context, salonID, productID string, qty int, unitCost decimal.Decimal, supplier string) (int, error)
	Adjust(ctx context.Context, salonID, productID string, delta int, reason string) (int, error)
	Movements(ctx context.Context, salonID, productID string, limit int) ([]*models.StockMovement, error)
	LowStock(ctx context.Context, salonID string) ([]*models.Product, error)
}

type attendanceSvc interface {
	Mark(ctx context.Context, salonID string, in services.AttendanceInput) (*models.Attendance, error)
	Lock(ctx context.Context, salonID, until string) (time.Time, error)
	List(ctx context.Context, salonID, from, to string) ([]*models.Attendance, error)
	MonthlySummary(ctx context.Context, salonID, month string) ([]*models.AttendanceSummary, error)
}

type subscriptionSvc interface {
	CreateOrder(ctx context.Context, salonID, plan string) (*services.Checkout, error)
	Verify(ctx context.Context, salonID, orderID, paymentID, signature string) (*models.Subscription, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) error
	Get(ctx context.Context, salonID string) (*models.Subscription, error)
	Payments(ctx context.Context, salonID string) ([]*models.Payment, error)
}

type reportSvc interface {
	Revenue(ctx context.Context, salonID, from, to string) ([]*models.DailyRevenue, error)
	Dashboard(ctx context.Context, salonID string) (*models.Dashboard, error)
}

type mediaSvc interface {
	PresignUpload(ctx context.Context, salonID, kind, contentType string) (*services.Upload, error)
	PresignDownload(ctx context.Context, salonID, key string) (string, error)
}

// Services bundles everything the HTTP surface calls into.
type Services struct {
	Sessions      sessionSvc
	Salons        salonAdminSvc
	Customers     customerSvc
	Staff         staffSvc
	Catalog       catalogSvc
	Appointments  appointmentSvc
	Billing       billingSvc
	Inventory     inventorySvc
	Attendance    attendanceSvc
	Subscriptions subscriptionSvc
	Reports       reportSvc
	Media         mediaSvc
}
