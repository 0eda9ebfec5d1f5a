package products

import (
	"context"

	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/pgerr"
	"github.com/shopspring/decimal"
)

const productColumns = `id, salon_id, name, sku, unit_price, stock, reorder_level, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProduct(row dbx.Scanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.SalonID, &p.Name, &p.SKU, &p.UnitPrice, &p.Stock, &p.ReorderLevel, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, pgerr.Map(err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query :=
		`INSERT INTO products (salon_id, name, sku, unit_price, reorder_level)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, stock, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, p.SalonID, p.Name, p.SKU, p.UnitPrice, p.ReorderLevel).
		Scan(&p.ID, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, salonID, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE salon_id = $1 AND id = $2`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, salonID, id))
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, salonID string) ([]*models.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products WHERE salon_id = $1 ORDER BY name`, salonID)
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	query :=
		`UPDATE products
		 SET name = $3, sku = $4, unit_price = $5, reorder_level = $6, updated_at = now()
		 WHERE salon_id = $1 AND id = $2
		 RETURNING stock, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, p.SalonID, p.ID, p.Name, p.SKU, p.UnitPrice, p.ReorderLevel).
		Scan(&p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return p, nil
}

// Purchase records received stock and returns the new stock level.
func (r *PostgresRepository) Purchase(ctx context.Context, salonID, productID string, qty int, unitCost decimal.Decimal, supplier string) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx, `SELECT add_stock_purchase($1, $2, $3, $4, $5)`,
		salonID, productID, qty, unitCost, supplier).Scan(&stock)
	if err != nil {
		return 0, pgerr.Map(err)
	}
	return stock, nil
}

// Adjust applies a signed correction and returns the new stock level.
func (r *PostgresRepository) Adjust(ctx context.Context, salonID, productID string, delta int, reason string) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx, `SELECT adjust_stock($1, $2, $3, $4)`,
		salonID, productID, delta, reason).Scan(&stock)
	if err != nil {
		return 0, pgerr.Map(err)
	}
	return stock, nil
}

func (r *PostgresRepository) Movements(ctx context.Context, salonID, productID string, limit int) ([]*models.StockMovement, error) {
	query :=
		`SELECT id, product_id, delta, kind, unit_cost, reference, note, created_at
		 FROM stock_movements
		 WHERE salon_id = $1 AND product_id = $2
		 ORDER BY created_at DESC, id DESC
		 LIMIT NULLIF($3, 0)`

	rows, err := r.db.QueryContext(ctx, query, salonID, productID, limit)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.StockMovement, 0)
	for rows.Next() {
		var (
			m    models.StockMovement
			cost decimal.NullDecimal
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Delta, &m.Kind, &cost, &m.Reference, &m.Note, &m.CreatedAt); err != nil {
			return nil, pgerr.Map(err)
		}
		m.UnitCost = cost
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
}

func (r *PostgresRepository) LowStock(ctx context.Context, salonID string) ([]*models.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE salon_id = $1 AND stock <= reorder_level
		 ORDER BY stock, name`, salonID)
}

func (r *PostgresRepository) CountLowStock(ctx context.Context, salonID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM products WHERE salon_id = $1 AND stock <= reorder_level`, salonID).Scan(&n)
	if err != nil {
		return 0, pgerr.Map(err)
	}
	return n, nil
}
