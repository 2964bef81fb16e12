package repository

import (
	"context"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El catálogo se administra fuera de este servicio; aquí solo se lee y se
// ajusta el stock al ejecutar recomendaciones.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lee el producto tomando un lock de fila. Solo tiene
	// sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	// IncrementStock suma delta al stock actual del producto.
	IncrementStock(ctx context.Context, id string, delta int) error
	// CountBelowSafeStock cuenta los productos con stock bajo el de seguridad.
	CountBelowSafeStock(ctx context.Context) (int, error)
}
