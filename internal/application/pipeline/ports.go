package pipeline

import (
	"context"

	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de recomendaciones atado a esa tx. La cabecera y sus renglones
// se insertan como una sola unidad.
type TxRunner interface {
	RunPipeline(ctx context.Context, fn func(recRepo repository.RecommendationRepository) error) error
}
