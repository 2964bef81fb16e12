package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord es un hecho de venta inmutable (append-only, escrito por el
// colaborador de ingesta; el núcleo solo lo lee).
type SalesRecord struct {
	ID           int64
	ProductID    string
	QuantitySold int // >= 0
	SalePrice    decimal.Decimal
	SaleDate     time.Time // solo fecha, sin hora
	CreatedAt    time.Time
}
