package recommendation

import (
	"context"

	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las transiciones
// del ciclo de vida: o se aplica todo (estado, stock, historial) o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recRepo repository.RecommendationRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
