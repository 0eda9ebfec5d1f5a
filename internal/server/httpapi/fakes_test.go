package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/logging"
	"github.com/ansuman15/salon-software-sub002/internal/server/auth"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/ratelimit"
	"github.com/ansuman15/salon-software-sub002/internal/server/services"
	"github.com/shopspring/decimal"
)

const (
	salonToken = "salon-token"
	adminToken = "admin-token"
)

var ist = time.FixedZone("IST", 5*3600+1800)

var errBoom = errors.New("boom")

// ---- fakes ----

type fakeSessions struct {
	loginSess *auth.Session
	loginErr  error
}

func (f *fakeSessions) LoginSalon(ctx context.Context, email, key string) (*auth.Session, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.loginSess, salonToken, nil
}

func (f *fakeSessions) LoginAdmin(ctx context.Context, username, password string) (*auth.Session, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return &auth.Session{Role: common.RoleAdmin}, adminToken, nil
}

func (f *fakeSessions) Parse(token string) (*auth.Session, error) {
	switch token {
	case salonToken:
		return &auth.Session{SalonID: "s-1", SalonName: "Glow", Role: common.RoleSalon}, nil
	case adminToken:
		return &auth.Session{Role: common.RoleAdmin}, nil
	}
	return nil, common.ErrInvalidToken
}

func (f *fakeSessions) ValidityDuration() time.Duration { return 12 * time.Hour }

type fakeSalons struct {
	salonAdminSvc
	created services.NewSalonInput
	status  string
}

func (f *fakeSalons) Create(ctx context.Context, in services.NewSalonInput) (*models.Salon, string, error) {
	f.created = in
	return &models.Salon{ID: "s-9", Name: in.Name, Email: in.Email, Status: models.SalonActive, Plan: models.PlanTrial}, "ABCD-EFGH-JKLM-NPQR", nil
}

func (f *fakeSalons) List(ctx context.Context) ([]*models.Salon, error) {
	return []*models.Salon{{ID: "s-1", Name: "Glow", Status: models.SalonActive}}, nil
}

func (f *fakeSalons) SetStatus(ctx context.Context, id, status string) error {
	f.status = status
	return nil
}

func (f *fakeSalons) Get(ctx context.Context, id string) (*models.Salon, error) {
	return &models.Salon{ID: id, Status: f.status}, nil
}

type fakeCustomers struct {
	customerSvc
	salonID string
	filter  models.ListFilter
	err     error
}

func (f *fakeCustomers) List(ctx context.Context, salonID string, fl models.ListFilter) ([]*models.Customer, error) {
	f.salonID, f.filter = salonID, fl
	return []*models.Customer{{ID: "c-1", Name: "Asha", Phone: "+919800000001"}}, nil
}

func (f *fakeCustomers) Create(ctx context.Context, salonID string, in services.CustomerInput) (*models.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Customer{ID: "c-2", Name: in.Name, Phone: in.Phone}, nil
}

type fakeAppointments struct {
	appointmentSvc
	in       services.AppointmentInput
	from, to time.Time
	err      error
}

func (f *fakeAppointments) Create(ctx context.Context, salonID string, in services.AppointmentInput) (*models.Appointment, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Appointment{ID: "a-1", StartsAt: in.StartsAt.UTC(), EndsAt: in.StartsAt.UTC().Add(45 * time.Minute), Status: models.AppointmentScheduled}, nil
}

func (f *fakeAppointments) List(ctx context.Context, salonID string, from, to time.Time, staffID string) ([]*models.Appointment, error) {
	f.from, f.to = from, to
	return nil, nil
}

type fakeBilling struct {
	billingSvc
	in  services.InvoiceInput
	err error
}

func (f *fakeBilling) CreateInvoice(ctx context.Context, salonID string, in services.InvoiceInput) (*models.Invoice, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Invoice{
		ID:             "inv-1",
		Number:         7,
		IdempotencyKey: in.IdempotencyKey,
		Subtotal:       decimal.RequireFromString("551.00"),
		Discount:       decimal.Zero,
		TaxRate:        decimal.RequireFromString("10"),
		Tax:            decimal.RequireFromString("55.10"),
		Total:          decimal.RequireFromString("606.10"),
		PaymentMethod:  in.PaymentMethod,
		Status:         models.InvoicePaid,
	}, nil
}

type fakeAttendance struct {
	attendanceSvc
	err error
}

func (f *fakeAttendance) Mark(ctx context.Context, salonID string, in services.AttendanceInput) (*models.Attendance, error) {
	return nil, f.err
}

type fakeSubscriptions struct {
	subscriptionSvc
	body []byte
	sig  string
	err  error
}

func (f *fakeSubscriptions) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	f.body, f.sig = body, signature
	return f.err
}

type fakeReports struct {
	reportSvc
}

func (fakeReports) Dashboard(ctx context.Context, salonID string) (*models.Dashboard, error) {
	return &models.Dashboard{AppointmentsToday: 4, RevenueToday: decimal.RequireFromString("2400.00"), InvoicesToday: 3}, nil
}

type fakeMedia struct {
	mediaSvc
	kind, contentType string
}

func (f *fakeMedia) PresignUpload(ctx context.Context, salonID, kind, contentType string) (*services.Upload, error) {
	f.kind, f.contentType = kind, contentType
	return &services.Upload{Key: "salons/s-1/logo/x.png", URL: "https://s3.local/put", ExpiresAt: time.Date(2026, 10, 19, 10, 15, 0, 0, time.UTC)}, nil
}

func (f *fakeMedia) PresignDownload(ctx context.Context, salonID, key string) (string, error) {
	if !strings.HasPrefix(key, "salons/"+salonID+"/") {
		return "", common.ErrorForbidden
	}
	return "https://s3.local/get", nil
}

// ---- harness ----

type harness struct {
	sessions      *fakeSessions
	salons        *fakeSalons
	customers     *fakeCustomers
	appointments  *fakeAppointments
	billing       *fakeBilling
	attendance    *fakeAttendance
	subscriptions *fakeSubscriptions
	media         *fakeMedia
	health        error
	limiter       *ratelimit.Store
	proxies       []string

	srv *Server
}

func newHarness(t *testing.T, tweak ...func(*harness)) *harness {
	t.Helper()
	h := &harness{
		sessions:      &fakeSessions{loginSess: &auth.Session{SalonID: "s-1", SalonName: "Glow", Role: common.RoleSalon}},
		salons:        &fakeSalons{},
		customers:     &fakeCustomers{},
		appointments:  &fakeAppointments{},
		billing:       &fakeBilling{},
		attendance:    &fakeAttendance{},
		subscriptions: &fakeSubscriptions{},
		media:         &fakeMedia{},
	}
	for _, fn := range tweak {
		fn(h)
	}
	h.srv = NewServer(logging.Nop{}, Services{
		Sessions:      h.sessions,
		Salons:        h.salons,
		Customers:     h.customers,
		Appointments:  h.appointments,
		Billing:       h.billing,
		Attendance:    h.attendance,
		Subscriptions: h.subscriptions,
		Reports:       fakeReports{},
		Media:         h.media,
	}, Options{
		Location:       ist,
		LoginLimiter:   h.limiter,
		TrustedProxies: h.proxies,
		Health:         func(context.Context) error { return h.health },
	})
	return h
}

func newJSONRequest(method, target, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (h *harness) do(method, target, body, token string) *httptest.ResponseRecorder {
	return h.serve(newJSONRequest(method, target, body), token)
}

func (h *harness) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(rec, req)
	return rec
}
