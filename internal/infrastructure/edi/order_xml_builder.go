// Package edi construye el documento XML de pedido que se envía al proveedor.
// El formato es un pedido plano acordado con los distribuidores: cabecera con
// fecha y totales, un renglón <Linea> por producto.
package edi

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/jhoicas/Reposicion-api/internal/application/export"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

var _ export.OrderXMLBuilder = (*OrderXMLBuilder)(nil)

// OrderXMLBuilder implementa export.OrderXMLBuilder usando etree.
type OrderXMLBuilder struct{}

// NewOrderXMLBuilder construye el servicio.
func NewOrderXMLBuilder() *OrderXMLBuilder {
	return &OrderXMLBuilder{}
}

// Build genera el []byte del documento PedidoProveedor.
func (b *OrderXMLBuilder) Build(rec *entity.Recommendation) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("edi: recomendación vacía")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("PedidoProveedor")
	root.CreateAttr("version", "1.0")

	cab := root.CreateElement("Cabecera")
	cab.CreateElement("IdRecomendacion").SetText(rec.ID)
	cab.CreateElement("FechaPedido").SetText(rec.RecommendationDate.Format("2006-01-02"))
	cab.CreateElement("Estado").SetText(rec.Status)
	cab.CreateElement("TotalRenglones").SetText(fmt.Sprintf("%d", rec.TotalItems))
	cab.CreateElement("CostoTotal").SetText(rec.TotalCost.StringFixed(2))

	lineas := root.CreateElement("Lineas")
	for i, it := range rec.Items {
		linea := lineas.CreateElement("Linea")
		linea.CreateAttr("numero", fmt.Sprintf("%d", i+1))
		linea.CreateElement("IdProducto").SetText(it.ProductID)
		linea.CreateElement("NombreProducto").SetText(it.ProductName)
		linea.CreateElement("Cantidad").SetText(fmt.Sprintf("%d", it.OrderQuantity))
		linea.CreateElement("PrecioUnitario").SetText(it.UnitPriceSnapshot.StringFixed(2))
		linea.CreateElement("CostoLinea").SetText(it.TotalCost.StringFixed(2))
		linea.CreateElement("Prioridad").SetText(it.Priority)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("edi: serializar pedido: %w", err)
	}
	return out, nil
}
