package edi

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

func TestBuild_GeneraPedidoCompleto(t *testing.T) {
	rec := &entity.Recommendation{
		ID:                 "rec-1",
		RecommendationDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		TotalItems:         1,
		TotalCost:          decimal.NewFromInt(20000),
		Status:             entity.RecommendationStatusPending,
		Items: []entity.RecommendationItem{
			{
				ProductID:         "pa",
				ProductName:       "Producto A",
				OrderQuantity:     20,
				UnitPriceSnapshot: decimal.NewFromInt(1000),
				TotalCost:         decimal.NewFromInt(20000),
				Priority:          entity.PriorityHigh,
			},
		},
	}

	out, err := NewOrderXMLBuilder().Build(rec)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("PedidoProveedor")
	require.NotNil(t, root)
	assert.Equal(t, "rec-1", root.FindElement("Cabecera/IdRecomendacion").Text())
	assert.Equal(t, "2025-06-15", root.FindElement("Cabecera/FechaPedido").Text())
	assert.Equal(t, "20000.00", root.FindElement("Cabecera/CostoTotal").Text())

	lineas := root.FindElements("Lineas/Linea")
	require.Len(t, lineas, 1)
	assert.Equal(t, "1", lineas[0].SelectAttrValue("numero", ""))
	assert.Equal(t, "Producto A", lineas[0].FindElement("NombreProducto").Text())
	assert.Equal(t, "20", lineas[0].FindElement("Cantidad").Text())
	assert.Equal(t, "high", lineas[0].FindElement("Prioridad").Text())
}

func TestBuild_RecomendacionNula(t *testing.T) {
	_, err := NewOrderXMLBuilder().Build(nil)
	assert.Error(t, err)
}
