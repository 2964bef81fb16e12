package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de la tienda.
// CurrentStock solo lo muta la ejecución de una recomendación (incremento) o
// las correcciones del colaborador de ingesta; nunca se elimina mientras
// exista historial que lo referencie.
type Product struct {
	ID           string
	Name         string // único en la tienda
	Category     string
	CurrentStock int             // >= 0
	SafeStock    int             // punto de reorden, >= 0
	UnitPrice    decimal.Decimal // > 0
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Shortfall devuelve el faltante frente al stock de seguridad: max(0, safe - current).
func (p *Product) Shortfall() int {
	if d := p.SafeStock - p.CurrentStock; d > 0 {
		return d
	}
	return 0
}
