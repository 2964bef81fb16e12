package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// SalesRepository define el puerto de lectura del historial de ventas.
// Las ventas las registra el punto de venta; este servicio solo las consulta.
type SalesRepository interface {
	// ListSince devuelve las ventas con fecha igual o posterior a since,
	// ordenadas por fecha ascendente.
	ListSince(ctx context.Context, since time.Time) ([]*entity.SalesRecord, error)
}
