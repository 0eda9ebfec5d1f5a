package repomanager

import (
	"context"
	"database/sql"

	"github.com/ansuman15/salon-software-sub002/internal/dbx"
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
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Salons(db dbx.DBTX) salons.Repository
	Customers(db dbx.DBTX) customers.Repository
	Staff(db dbx.DBTX) staff.Repository
	Catalog(db dbx.DBTX) catalog.Repository
	Appointments(db dbx.DBTX) appointments.Repository
	Invoices(db dbx.DBTX) invoices.Repository
	Products(db dbx.DBTX) products.Repository
	Attendance(db dbx.DBTX) attendance.Repository
	Payments(db dbx.DBTX) payments.Repository
	Revenue(db dbx.DBTX) revenue.Repository
}
