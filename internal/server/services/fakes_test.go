package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/appointments"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/attendance"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/catalog"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/customers"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/invoices"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/payments"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/products"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/revenue"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/salons"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/staff"
	"github.com/shopspring/decimal"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeRepoManager hands out whichever fakes a test populated. Calling a
// repository that was not set panics on the nil embedded interface.
type fakeRepoManager struct {
	salons       *fakeSalons
	customers    *fakeCustomers
	staff        *fakeStaff
	catalog      *fakeCatalog
	appointments *fakeAppointments
	invoices     *fakeInvoices
	products     *fakeProducts
	attendance   *fakeAttendance
	payments     *fakePayments
	revenue      *fakeRevenue
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Salons(dbx.DBTX) salons.Repository             { return m.salons }
func (m *fakeRepoManager) Customers(dbx.DBTX) customers.Repository       { return m.customers }
func (m *fakeRepoManager) Staff(dbx.DBTX) staff.Repository               { return m.staff }
func (m *fakeRepoManager) Catalog(dbx.DBTX) catalog.Repository           { return m.catalog }
func (m *fakeRepoManager) Appointments(dbx.DBTX) appointments.Repository { return m.appointments }
func (m *fakeRepoManager) Invoices(dbx.DBTX) invoices.Repository         { return m.invoices }
func (m *fakeRepoManager) Products(dbx.DBTX) products.Repository         { return m.products }
func (m *fakeRepoManager) Attendance(dbx.DBTX) attendance.Repository     { return m.attendance }
func (m *fakeRepoManager) Payments(dbx.DBTX) payments.Repository         { return m.payments }
func (m *fakeRepoManager) Revenue(dbx.DBTX) revenue.Repository           { return m.revenue }

// --- salons ---

type fakeSalons struct {
	salons.Repository

	byID      map[string]*models.Salon
	getErr    error
	createErr error
	created   *models.Salon
	status    map[string]string
	keyHash   map[string]string
	subPlan   string
	subExpiry time.Time
	lockedTo  time.Time
	lockAll   time.Time
	// watermarkReads counts AttendanceWatermark calls.
	watermarkReads int
}

func newFakeSalons(list ...*models.Salon) *fakeSalons {
	f := &fakeSalons{byID: map[string]*models.Salon{}, status: map[string]string{}, keyHash: map[string]string{}}
	for _, s := range list {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeSalons) Create(ctx context.Context, s *models.Salon) (*models.Salon, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s.ID = "s-new"
	f.created = s
	f.byID[s.ID] = s
	return s, nil
}

func (f *fakeSalons) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, errNotFound()
	}
	return s, nil
}

func (f *fakeSalons) GetByEmail(ctx context.Context, email string) (*models.Salon, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, s := range f.byID {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, errNotFound()
}

func (f *fakeSalons) List(ctx context.Context) ([]*models.Salon, error) {
	out := make([]*models.Salon, 0, len(f.byID))
	for _, s := range f.byID {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSalons) SetStatus(ctx context.Context, id, status string) error {
	if _, ok := f.byID[id]; !ok {
		return errNotFound()
	}
	f.status[id] = status
	return nil
}

func (f *fakeSalons) SetActivationKeyHash(ctx context.Context, id, hash string) error {
	if _, ok := f.byID[id]; !ok {
		return errNotFound()
	}
	f.keyHash[id] = hash
	return nil
}

func (f *fakeSalons) SetSubscription(ctx context.Context, id, plan string, expiresAt time.Time) error {
	f.subPlan, f.subExpiry = plan, expiresAt
	if s, ok := f.byID[id]; ok {
		s.Plan = plan
		s.SubscriptionExpiresAt = &expiresAt
	}
	return nil
}

func (f *fakeSalons) AttendanceWatermark(ctx context.Context, id string) (*time.Time, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, errNotFound()
	}
	f.watermarkReads++
	return s.AttendanceLockedUntil, nil
}

func (f *fakeSalons) LockAttendance(ctx context.Context, id string, until time.Time) (time.Time, error) {
	if f.lockedTo.After(until) {
		return f.lockedTo, nil
	}
	f.lockedTo = until
	return until, nil
}

func (f *fakeSalons) LockAttendanceAll(ctx context.Context, until time.Time) (int64, error) {
	f.lockAll = until
	return int64(len(f.byID)), nil
}

// --- customers ---

type fakeCustomers struct {
	customers.Repository

	created   *models.Customer
	updated   *models.Customer
	createErr error
	getOut    *models.Customer
	getErr    error
	listOut   []*models.Customer
	lastList  models.ListFilter
	deleted   string
	deleteErr error
}

func (f *fakeCustomers) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = "c-new"
	f.created = c
	return c, nil
}

func (f *fakeCustomers) Get(ctx context.Context, salonID, id string) (*models.Customer, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut == nil || f.getOut.SalonID != salonID || f.getOut.ID != id {
		return nil, errNotFound()
	}
	return f.getOut, nil
}

func (f *fakeCustomers) List(ctx context.Context, salonID string, lf models.ListFilter) ([]*models.Customer, error) {
	f.lastList = lf
	return f.listOut, nil
}

func (f *fakeCustomers) Update(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	f.updated = c
	return c, nil
}

func (f *fakeCustomers) Delete(ctx context.Context, salonID, id string) error {
	f.deleted = id
	return f.deleteErr
}

// --- staff ---

type fakeStaff struct {
	staff.Repository

	byID    map[string]*models.Staff
	created *models.Staff
	updated *models.Staff
}

func newFakeStaff(list ...*models.Staff) *fakeStaff {
	f := &fakeStaff{byID: map[string]*models.Staff{}}
	for _, s := range list {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeStaff) Create(ctx context.Context, s *models.Staff) (*models.Staff, error) {
	s.ID = "st-new"
	f.created = s
	return s, nil
}

func (f *fakeStaff) Get(ctx context.Context, salonID, id string) (*models.Staff, error) {
	s, ok := f.byID[id]
	if !ok || s.SalonID != salonID {
		return nil, errNotFound()
	}
	return s, nil
}

func (f *fakeStaff) List(ctx context.Context, salonID string, activeOnly bool) ([]*models.Staff, error) {
	out := make([]*models.Staff, 0)
	for _, s := range f.byID {
		if s.SalonID == salonID && (!activeOnly || s.Active) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStaff) Update(ctx context.Context, s *models.Staff) (*models.Staff, error) {
	f.updated = s
	return s, nil
}

func (f *fakeStaff) Delete(ctx context.Context, salonID, id string) error {
	delete(f.byID, id)
	return nil
}

// --- catalog ---

type fakeCatalog struct {
	catalog.Repository

	byID    map[string]*models.SalonService
	created *models.SalonService
	updated *models.SalonService
}

func newFakeCatalog(list ...*models.SalonService) *fakeCatalog {
	f := &fakeCatalog{byID: map[string]*models.SalonService{}}
	for _, s := range list {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeCatalog) Create(ctx context.Context, s *models.SalonService) (*models.SalonService, error) {
	s.ID = "sv-new"
	f.created = s
	return s, nil
}

func (f *fakeCatalog) Get(ctx context.Context, salonID, id string) (*models.SalonService, error) {
	s, ok := f.byID[id]
	if !ok || s.SalonID != salonID {
		return nil, errNotFound()
	}
	return s, nil
}

func (f *fakeCatalog) List(ctx context.Context, salonID string, activeOnly bool) ([]*models.SalonService, error) {
	out := make([]*models.SalonService, 0)
	for _, s := range f.byID {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalog) Update(ctx context.Context, s *models.SalonService) (*models.SalonService, error) {
	f.updated = s
	return s, nil
}

func (f *fakeCatalog) Delete(ctx context.Context, salonID, id string) error {
	delete(f.byID, id)
	return nil
}

// --- appointments ---

type fakeAppointments struct {
	appointments.Repository

	byID       map[string]*models.Appointment
	created    *models.Appointment
	overlap    bool
	lockCalls  int
	overlapArg struct {
		start, end time.Time
		exclude    string
	}
	statusSet  string
	resched    [2]time.Time
	countOut   int
	lastFilter models.AppointmentFilter
}

func newFakeAppointments(list ...*models.Appointment) *fakeAppointments {
	f := &fakeAppointments{byID: map[string]*models.Appointment{}}
	for _, a := range list {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeAppointments) Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	a.ID = "a-new"
	f.created = a
	return a, nil
}

func (f *fakeAppointments) Get(ctx context.Context, salonID, id string) (*models.Appointment, error) {
	a, ok := f.byID[id]
	if !ok || a.SalonID != salonID {
		return nil, errNotFound()
	}
	return a, nil
}

func (f *fakeAppointments) List(ctx context.Context, salonID string, af models.AppointmentFilter) ([]*models.Appointment, error) {
	f.lastFilter = af
	return []*models.Appointment{}, nil
}

func (f *fakeAppointments) LockStaff(ctx context.Context, salonID, staffID string) error {
	f.lockCalls++
	return nil
}

func (f *fakeAppointments) HasOverlap(ctx context.Context, salonID, staffID string, start, end time.Time, excludeID string) (bool, error) {
	f.overlapArg.start, f.overlapArg.end, f.overlapArg.exclude = start, end, excludeID
	return f.overlap, nil
}

func (f *fakeAppointments) Reschedule(ctx context.Context, salonID, id string, start, end time.Time) error {
	f.resched = [2]time.Time{start, end}
	return nil
}

func (f *fakeAppointments) SetStatus(ctx context.Context, salonID, id, status string) error {
	f.statusSet = status
	return nil
}

func (f *fakeAppointments) CountBetween(ctx context.Context, salonID string, from, to time.Time) (int, error) {
	return f.countOut, nil
}

// --- invoices ---

type fakeInvoices struct {
	invoices.Repository

	sent      *models.Invoice
	createErr error
	stored    *models.Invoice
	voided    string
	voidErr   error
	listOut   []*models.Invoice
}

func (f *fakeInvoices) CreateAtomic(ctx context.Context, inv *models.Invoice) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.sent = inv
	return "inv-1", nil
}

func (f *fakeInvoices) Get(ctx context.Context, salonID, id string) (*models.Invoice, error) {
	if f.stored != nil {
		return f.stored, nil
	}
	if f.sent == nil {
		return nil, errNotFound()
	}
	inv := *f.sent
	inv.ID = id
	inv.Number = 1
	inv.Status = models.InvoicePaid
	return &inv, nil
}

func (f *fakeInvoices) List(ctx context.Context, salonID string, from, to time.Time) ([]*models.Invoice, error) {
	return f.listOut, nil
}

func (f *fakeInvoices) Void(ctx context.Context, salonID, id, reason string) error {
	f.voided = reason
	return f.voidErr
}

// --- products ---

type fakeProducts struct {
	products.Repository

	byID      map[string]*models.Product
	created   *models.Product
	purchased struct {
		qty      int
		cost     decimal.Decimal
		supplier string
	}
	adjusted struct {
		delta  int
		reason string
	}
	adjustErr error
	lowCount  int
}

func newFakeProducts(list ...*models.Product) *fakeProducts {
	f := &fakeProducts{byID: map[string]*models.Product{}}
	for _, p := range list {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.ID = "p-new"
	f.created = p
	return p, nil
}

func (f *fakeProducts) Get(ctx context.Context, salonID, id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok || p.SalonID != salonID {
		return nil, errNotFound()
	}
	return p, nil
}

func (f *fakeProducts) List(ctx context.Context, salonID string) ([]*models.Product, error) {
	out := make([]*models.Product, 0)
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	return p, nil
}

func (f *fakeProducts) Purchase(ctx context.Context, salonID, productID string, qty int, cost decimal.Decimal, supplier string) (int, error) {
	f.purchased.qty, f.purchased.cost, f.purchased.supplier = qty, cost, supplier
	return qty, nil
}

func (f *fakeProducts) Adjust(ctx context.Context, salonID, productID string, delta int, reason string) (int, error) {
	if f.adjustErr != nil {
		return 0, f.adjustErr
	}
	f.adjusted.delta, f.adjusted.reason = delta, reason
	return 10 + delta, nil
}

func (f *fakeProducts) Movements(ctx context.Context, salonID, productID string, limit int) ([]*models.StockMovement, error) {
	return []*models.StockMovement{}, nil
}

func (f *fakeProducts) LowStock(ctx context.Context, salonID string) ([]*models.Product, error) {
	return []*models.Product{}, nil
}

func (f *fakeProducts) CountLowStock(ctx context.Context, salonID string) (int, error) {
	return f.lowCount, nil
}

// --- attendance ---

type fakeAttendance struct {
	attendance.Repository

	upserted *models.Attendance
	from, to time.Time
}

func (f *fakeAttendance) Upsert(ctx context.Context, a *models.Attendance) (*models.Attendance, error) {
	a.ID = "at-new"
	f.upserted = a
	return a, nil
}

func (f *fakeAttendance) List(ctx context.Context, salonID string, from, to time.Time) ([]*models.Attendance, error) {
	f.from, f.to = from, to
	return []*models.Attendance{}, nil
}

func (f *fakeAttendance) Summary(ctx context.Context, salonID string, from, to time.Time) ([]*models.AttendanceSummary, error) {
	f.from, f.to = from, to
	return []*models.AttendanceSummary{}, nil
}

// --- payments ---

type fakePayments struct {
	payments.Repository

	byOrder    map[string]*models.Payment
	created    *models.Payment
	paidCalls  int
	failCalls  int
	lockedRead bool
}

func newFakePayments(list ...*models.Payment) *fakePayments {
	f := &fakePayments{byOrder: map[string]*models.Payment{}}
	for _, p := range list {
		f.byOrder[p.GatewayOrderID] = p
	}
	return f
}

func (f *fakePayments) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	p.ID = "pay-new"
	f.created = p
	f.byOrder[p.GatewayOrderID] = p
	return p, nil
}

func (f *fakePayments) GetByOrderID(ctx context.Context, orderID string, forUpdate bool) (*models.Payment, error) {
	f.lockedRead = f.lockedRead || forUpdate
	p, ok := f.byOrder[orderID]
	if !ok {
		return nil, errNotFound()
	}
	return p, nil
}

func (f *fakePayments) MarkPaid(ctx context.Context, id, paymentID string, at time.Time) error {
	f.paidCalls++
	for _, p := range f.byOrder {
		if p.ID == id {
			p.Status = models.PaymentPaid
			p.GatewayPaymentID = paymentID
			p.PaidAt = &at
		}
	}
	return nil
}

func (f *fakePayments) MarkFailed(ctx context.Context, id, paymentID string) error {
	f.failCalls++
	for _, p := range f.byOrder {
		if p.ID == id {
			p.Status = models.PaymentFailed
		}
	}
	return nil
}

func (f *fakePayments) ListBySalon(ctx context.Context, salonID string) ([]*models.Payment, error) {
	return []*models.Payment{}, nil
}

// --- revenue ---

type fakeRevenue struct {
	revenue.Repository

	day, from, to time.Time
	liveCount     int
	liveTotal     decimal.Decimal
}

func (f *fakeRevenue) AggregateDay(ctx context.Context, day, from, to time.Time) (int64, error) {
	f.day, f.from, f.to = day, from, to
	return 2, nil
}

func (f *fakeRevenue) List(ctx context.Context, salonID string, from, to time.Time) ([]*models.DailyRevenue, error) {
	f.from, f.to = from, to
	return []*models.DailyRevenue{}, nil
}

func (f *fakeRevenue) Live(ctx context.Context, salonID string, from, to time.Time) (int, decimal.Decimal, error) {
	f.from, f.to = from, to
	return f.liveCount, f.liveTotal, nil
}

func errNotFound() error { return common.ErrorNotFound }
