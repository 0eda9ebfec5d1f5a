package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/pgerr"
)

const customerColumns = `id, salon_id, name, phone, email, notes, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCustomer(row dbx.Scanner) (*models.Customer, error) {
	var c models.Customer
	if err := row.Scan(&c.ID, &c.SalonID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	query :=
		`INSERT INTO customers (salon_id, name, phone, email, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, c.SalonID, c.Name, c.Phone, c.Email, c.Notes).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return c, nil
}

func (r *PostgresRepository) Get(ctx context.Context, salonID, id string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE salon_id = $1 AND id = $2`

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, salonID, id))
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return c, nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List searches name and phone with a case-insensitive substring match when
// f.Query is set. A zero limit returns every row.
func (r *PostgresRepository) List(ctx context.Context, salonID string, f models.ListFilter) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		 WHERE salon_id = $1 AND ($2 = '' OR name ILIKE $5 ESCAPE '\' OR phone LIKE $5 ESCAPE '\')
		 ORDER BY name
		 LIMIT NULLIF($3, 0) OFFSET $4`

	pattern := "%" + likeEscaper.Replace(f.Query) + "%"
	rows, err := r.db.QueryContext(ctx, query, salonID, f.Query, f.Limit, f.Offset, pattern)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, pgerr.Map(err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	query :=
		`UPDATE customers
		 SET name = $3, phone = $4, email = $5, notes = $6, updated_at = now()
		 WHERE salon_id = $1 AND id = $2
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, c.SalonID, c.ID, c.Name, c.Phone, c.Email, c.Notes).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, salonID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE salon_id = $1 AND id = $2`, salonID, id)
	if err != nil {
		return pgerr.Map(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context, salonID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM customers WHERE salon_id = $1`, salonID).Scan(&n); err != nil {
		return 0, pgerr.Map(err)
	}
	return n, nil
}
