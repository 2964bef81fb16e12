package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

var ahora = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func prod(id, name, category string) *entity.Product {
	return &entity.Product{ID: id, Name: name, Category: category}
}

func venta(productID string, qty int, price int64, day time.Time) *entity.SalesRecord {
	return &entity.SalesRecord{
		ProductID:    productID,
		QuantitySold: qty,
		SalePrice:    decimal.NewFromInt(price),
		SaleDate:     day,
	}
}

func TestSummarize_AgregaYOrdenaPorCantidad(t *testing.T) {
	products := []*entity.Product{
		prod("p1", "Coca Cola", "bebidas"),
		prod("p2", "Papas", "snacks"),
	}
	records := []*entity.SalesRecord{
		venta("p1", 3, 2500, ahora),
		venta("p1", 2, 2500, ahora.AddDate(0, 0, -1)),
		venta("p2", 10, 1500, ahora.AddDate(0, 0, -2)),
	}

	s := Summarize(products, records, ahora, 7, 5)

	assert.Len(t, s.Totals, 2)
	assert.Equal(t, "p2", s.Totals[0].ProductID)
	assert.Equal(t, 10, s.Totals[0].QuantitySold)
	assert.Equal(t, "p1", s.Totals[1].ProductID)
	assert.Equal(t, 5, s.Totals[1].QuantitySold)
	assert.True(t, s.Totals[1].Revenue.Equal(decimal.NewFromInt(12500)))
}

func TestSummarize_TopNRecorta(t *testing.T) {
	products := []*entity.Product{
		prod("p1", "A", "x"), prod("p2", "B", "x"), prod("p3", "C", "x"),
	}
	records := []*entity.SalesRecord{
		venta("p1", 5, 100, ahora),
		venta("p2", 3, 100, ahora),
		venta("p3", 1, 100, ahora),
	}

	s := Summarize(products, records, ahora, 7, 2)

	assert.Len(t, s.Top, 2)
	assert.Equal(t, "p1", s.Top[0].ProductID)
	assert.Equal(t, "p2", s.Top[1].ProductID)
	assert.Len(t, s.Totals, 3)
}

func TestSummarize_DistribucionPorCategoriaSuma100(t *testing.T) {
	products := []*entity.Product{
		prod("p1", "Coca Cola", "bebidas"),
		prod("p2", "Papas", "snacks"),
	}
	records := []*entity.SalesRecord{
		venta("p1", 1, 7500, ahora), // bebidas: 7500 → 75%
		venta("p2", 1, 2500, ahora), // snacks:  2500 → 25%
	}

	s := Summarize(products, records, ahora, 7, 5)

	assert.Len(t, s.Categories, 2)
	assert.Equal(t, "bebidas", s.Categories[0].Category)
	assert.True(t, s.Categories[0].Percentage.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "snacks", s.Categories[1].Category)
	assert.True(t, s.Categories[1].Percentage.Equal(decimal.NewFromInt(25)))
}

func TestSummarize_VariacionDiaria(t *testing.T) {
	products := []*entity.Product{prod("p1", "A", "x")}
	records := []*entity.SalesRecord{
		venta("p1", 1, 1000, ahora.AddDate(0, 0, -1)), // ayer: 1000
		venta("p1", 1, 1500, ahora),                   // hoy: 1500 → +50%
	}

	s := Summarize(products, records, ahora, 7, 5)

	assert.True(t, s.DayOverDayPct.Equal(decimal.NewFromInt(50)),
		"esperaba +50%%, obtuve %s", s.DayOverDayPct)
}

func TestSummarize_VariacionDiariaSinVentasAyerEsCero(t *testing.T) {
	products := []*entity.Product{prod("p1", "A", "x")}
	records := []*entity.SalesRecord{
		venta("p1", 1, 1500, ahora), // solo hoy; ayer en cero
	}

	s := Summarize(products, records, ahora, 7, 5)

	assert.True(t, s.DayOverDayPct.IsZero())
}

func TestSummarize_TendenciaAlAlzaComparaVentanas(t *testing.T) {
	products := []*entity.Product{prod("p1", "A", "x"), prod("p2", "B", "x")}
	records := []*entity.SalesRecord{
		// p1: ventana actual 8, ventana anterior 3 → al alza
		venta("p1", 8, 100, ahora.AddDate(0, 0, -2)),
		venta("p1", 3, 100, ahora.AddDate(0, 0, -10)),
		// p2: ventana actual 2, ventana anterior 6 → no
		venta("p2", 2, 100, ahora.AddDate(0, 0, -1)),
		venta("p2", 6, 100, ahora.AddDate(0, 0, -9)),
	}

	s := Summarize(products, records, ahora, 7, 5)

	assert.True(t, s.Rising["p1"])
	assert.False(t, s.Rising["p2"])
}

func TestSummarize_VentaConCantidadCeroEsValidaYNoAporta(t *testing.T) {
	// El historial admite registros con cantidad cero (venta anulada por el
	// colaborador de ingesta); no deben aportar unidades ni ingreso.
	products := []*entity.Product{prod("p1", "A", "x")}
	records := []*entity.SalesRecord{
		venta("p1", 0, 1000, ahora),
		venta("p1", 2, 1000, ahora.AddDate(0, 0, -1)),
	}

	s := Summarize(products, records, ahora, 7, 5)

	assert.Len(t, s.Totals, 1)
	assert.Equal(t, 2, s.Totals[0].QuantitySold)
	assert.True(t, s.Totals[0].Revenue.Equal(decimal.NewFromInt(2000)))
}

func TestSummarize_IgnoraVentasFueraDeAmbasVentanas(t *testing.T) {
	products := []*entity.Product{prod("p1", "A", "x")}
	records := []*entity.SalesRecord{
		venta("p1", 100, 100, ahora.AddDate(0, 0, -30)),
	}

	s := Summarize(products, records, ahora, 7, 5)

	assert.Empty(t, s.Totals)
	assert.Empty(t, s.Rising)
}

func TestSummarize_SinVentasDevuelveResumenVacio(t *testing.T) {
	s := Summarize(nil, nil, ahora, 7, 5)

	assert.Empty(t, s.Totals)
	assert.Empty(t, s.Top)
	assert.Empty(t, s.Categories)
	assert.True(t, s.DayOverDayPct.IsZero())
}
