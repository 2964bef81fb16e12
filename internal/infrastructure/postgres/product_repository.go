package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, current_stock, safe_stock, unit_price, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate obtiene un producto tomando un lock de fila (FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// List obtiene una página de productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapError("list products", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListAll obtiene el catálogo completo. El catálogo de un punto de venta es
// acotado; la corrida del pipeline lo evalúa entero.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapError("list all products", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// IncrementStock suma delta al stock actual del producto.
func (r *ProductRepo) IncrementStock(ctx context.Context, id string, delta int) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := `UPDATE products SET current_stock = current_stock + $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, delta)
	if err != nil {
		return wrapError("increment stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountBelowSafeStock cuenta los productos con stock bajo el de seguridad.
func (r *ProductRepo) CountBelowSafeStock(ctx context.Context) (int, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM products WHERE current_stock < safe_stock`
	if err := r.q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, wrapError("count low stock", err)
	}
	return count, nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.CurrentStock, &p.SafeStock,
		&p.UnitPrice, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapError("get product", err)
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.CurrentStock, &p.SafeStock,
			&p.UnitPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, wrapError("scan product", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate products", err)
	}
	return out, nil
}
