package revenue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestAggregateDay(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	loc := time.FixedZone("IST", 5*3600+1800)
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, loc)
	next := day.AddDate(0, 0, 1)

	mock.ExpectExec(`(?s)FROM\s+invoices.*status\s*=\s*'paid'.*INSERT\s+INTO\s+daily_revenue.*ON\s+CONFLICT\s+\(salon_id,\s*day\)\s+DO\s+UPDATE`).
		WithArgs(day, day, next).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.AggregateDay(context.Background(), day, day, next)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestAggregateDay_DropsDaysWithoutPaidInvoices(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	mock.ExpectExec(`(?s)DELETE\s+FROM\s+daily_revenue\s+d\s+WHERE\s+d\.day\s*=\s*\$1::date\s+AND\s+NOT\s+EXISTS\s+\(SELECT\s+1\s+FROM\s+totals`).
		WithArgs(day, day, next).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.AggregateDay(context.Background(), day, day, next)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregateDay_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`INSERT\s+INTO\s+daily_revenue`).WillReturnError(errors.New("conn reset"))

	_, err := repo.AggregateDay(context.Background(), time.Now(), time.Now(), time.Now())
	assert.ErrorContains(t, err, "db error")
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)FROM\s+daily_revenue.*ORDER\s+BY\s+day`).
		WithArgs("s-1", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"salon_id", "day", "invoice_count", "gross", "discount", "tax", "net", "cash", "card", "upi"}).
			AddRow("s-1", from, 4, "2000.00", "100.00", "342.00", "2242.00", "1000.00", "0.00", "1242.00").
			AddRow("s-1", to, 0, "0", "0", "0", "0", "0", "0", "0"))

	got, err := repo.List(context.Background(), "s-1", from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].InvoiceCount)
	assert.Equal(t, "1242", got[0].UPI.String())
}

func TestLive(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	from := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(`(?s)SELECT\s+count\(\*\),\s*COALESCE\(sum\(total\),\s*0\)\s+FROM\s+invoices`).
		WithArgs("s-1", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(2, "1500.50"))

	n, total, err := repo.Live(context.Background(), "s-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "1500.5", total.String())
}
