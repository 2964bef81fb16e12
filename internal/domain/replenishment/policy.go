// Package replenishment contiene la aritmética pura de reposición: faltantes,
// cantidad de pedido por defecto (top-up al stock de seguridad), prioridades y
// la plantilla determinista del motivo. Sin efectos secundarios ni acceso a DB.
package replenishment

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// Assessment es el resultado de evaluar un producto frente a su stock de
// seguridad. Solo los productos con Shortfall > 0 quedan marcados.
type Assessment struct {
	Product   *entity.Product
	Shortfall int // max(0, safe - current); nunca negativo
}

// Assess evalúa todos los productos y devuelve únicamente los marcados,
// ordenados por faltante descendente con desempate por ID de producto
// ascendente (orden determinista y estable).
func Assess(products []*entity.Product) []Assessment {
	flagged := make([]Assessment, 0, len(products))
	for _, p := range products {
		if s := p.Shortfall(); s > 0 {
			flagged = append(flagged, Assessment{Product: p, Shortfall: s})
		}
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		if flagged[i].Shortfall != flagged[j].Shortfall {
			return flagged[i].Shortfall > flagged[j].Shortfall
		}
		return flagged[i].Product.ID < flagged[j].Product.ID
	})
	return flagged
}

// OrderQuantity es la política canónica de cantidad: completar hasta el stock
// de seguridad. Nunca devuelve menos que el faltante ni un valor negativo.
func OrderQuantity(currentStock, safeStock int) int {
	if q := safeStock - currentStock; q > 0 {
		return q
	}
	return 0
}

// PriorityFor asigna el nivel de urgencia del pedido:
//
//	high   — sin existencias (stock actual 0)
//	medium — el faltante es al menos el 50% del stock de seguridad
//	low    — el resto
func PriorityFor(currentStock, safeStock int) string {
	if currentStock == 0 {
		return entity.PriorityHigh
	}
	shortfall := safeStock - currentStock
	if shortfall*2 >= safeStock {
		return entity.PriorityMedium
	}
	return entity.PriorityLow
}

// BuildReason arma el motivo legible del renglón. Es una plantilla
// determinista: mismos datos, mismo texto. trending marca los productos con
// ventas al alza según el análisis de la corrida.
func BuildReason(currentStock, safeStock int, trending bool) string {
	var reason string
	if currentStock == 0 {
		reason = fmt.Sprintf("Sin existencias: stock actual 0 y stock de seguridad %d. Reposición inmediata.", safeStock)
	} else {
		reason = fmt.Sprintf("Bajo el punto de reorden: stock actual %d de %d (faltan %d unidades).",
			currentStock, safeStock, safeStock-currentStock)
	}
	if trending {
		reason += " Ventas al alza en la última semana."
	}
	return reason
}
