// Package analysis deriva estadísticas descriptivas del historial de ventas:
// agregados por producto, ranking top-N, distribución por categoría y la
// variación día a día. Funciones puras y deterministas sobre sus entradas.
package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// ProductTotal agrega las ventas de un producto dentro de la ventana.
type ProductTotal struct {
	ProductID    string
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// CategoryShare es la participación de una categoría en el ingreso de la ventana.
type CategoryShare struct {
	Category   string
	Revenue    decimal.Decimal
	Percentage decimal.Decimal // 0–100, redondeado a 2 decimales
}

// Summary es el resultado del análisis de una corrida.
type Summary struct {
	WindowDays int
	Totals     []ProductTotal  // todo producto con ventas en la ventana
	Top        []ProductTotal  // primeros N por cantidad vendida
	Categories []CategoryShare // orden por ingreso descendente
	// DayOverDayPct es la variación porcentual del ingreso del día más
	// reciente frente al día anterior. 0 si el día anterior no tuvo ventas
	// (evita la división por cero).
	DayOverDayPct decimal.Decimal
	// Rising marca los productos cuya cantidad vendida en la ventana supera
	// la de la ventana anterior de igual tamaño.
	Rising map[string]bool
}

var hundred = decimal.NewFromInt(100)

// Summarize calcula el resumen de ventas de la ventana que termina en now.
// records puede incluir historial anterior a la ventana; se usa para la
// comparación de tendencia con la ventana previa.
func Summarize(products []*entity.Product, records []*entity.SalesRecord, now time.Time, windowDays, topN int) Summary {
	if windowDays <= 0 {
		windowDays = 7
	}
	today := dateOf(now)
	windowStart := today.AddDate(0, 0, -(windowDays - 1))
	prevStart := windowStart.AddDate(0, 0, -windowDays)

	nameByID := make(map[string]string, len(products))
	categoryByID := make(map[string]string, len(products))
	for _, p := range products {
		nameByID[p.ID] = p.Name
		categoryByID[p.ID] = p.Category
	}

	qtyByID := make(map[string]int)
	revByID := make(map[string]decimal.Decimal)
	prevQtyByID := make(map[string]int)
	revByCategory := make(map[string]decimal.Decimal)
	revByDay := make(map[time.Time]decimal.Decimal)

	for _, r := range records {
		day := dateOf(r.SaleDate)
		revenue := r.SalePrice.Mul(decimal.NewFromInt(int64(r.QuantitySold)))

		switch {
		case !day.Before(windowStart) && !day.After(today):
			qtyByID[r.ProductID] += r.QuantitySold
			revByID[r.ProductID] = revByID[r.ProductID].Add(revenue)
			cat := categoryByID[r.ProductID]
			if cat == "" {
				cat = "otros"
			}
			revByCategory[cat] = revByCategory[cat].Add(revenue)
			revByDay[day] = revByDay[day].Add(revenue)
		case !day.Before(prevStart) && day.Before(windowStart):
			prevQtyByID[r.ProductID] += r.QuantitySold
		}
	}

	// Agregados por producto, orden: cantidad desc, ID asc (estable).
	totals := make([]ProductTotal, 0, len(qtyByID))
	for id, qty := range qtyByID {
		totals = append(totals, ProductTotal{
			ProductID:    id,
			ProductName:  nameByID[id],
			QuantitySold: qty,
			Revenue:      revByID[id],
		})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].QuantitySold != totals[j].QuantitySold {
			return totals[i].QuantitySold > totals[j].QuantitySold
		}
		return totals[i].ProductID < totals[j].ProductID
	})

	top := totals
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}

	// Distribución por categoría sobre el ingreso total de la ventana.
	var totalRevenue decimal.Decimal
	for _, rev := range revByCategory {
		totalRevenue = totalRevenue.Add(rev)
	}
	categories := make([]CategoryShare, 0, len(revByCategory))
	for cat, rev := range revByCategory {
		share := CategoryShare{Category: cat, Revenue: rev}
		if totalRevenue.GreaterThan(decimal.Zero) {
			share.Percentage = rev.Div(totalRevenue).Mul(hundred).Round(2)
		}
		categories = append(categories, share)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		if !categories[i].Revenue.Equal(categories[j].Revenue) {
			return categories[i].Revenue.GreaterThan(categories[j].Revenue)
		}
		return categories[i].Category < categories[j].Category
	})

	// Variación día a día: hoy vs ayer.
	var dayOverDay decimal.Decimal
	yesterday := today.AddDate(0, 0, -1)
	prevRev := revByDay[yesterday]
	if prevRev.GreaterThan(decimal.Zero) {
		dayOverDay = revByDay[today].Sub(prevRev).Div(prevRev).Mul(hundred).Round(2)
	}

	// Tendencia: cantidad de la ventana vs ventana anterior de igual tamaño.
	rising := make(map[string]bool, len(qtyByID))
	for id, qty := range qtyByID {
		if qty > prevQtyByID[id] {
			rising[id] = true
		}
	}

	return Summary{
		WindowDays:    windowDays,
		Totals:        totals,
		Top:           top,
		Categories:    categories,
		DayOverDayPct: dayOverDay,
		Rising:        rising,
	}
}

// DayPoint ventas agregadas de un día calendario.
type DayPoint struct {
	Day     time.Time
	Units   int
	Revenue decimal.Decimal
}

// DailySeries agrega las ventas por día de la ventana que termina en now.
// Devuelve un punto por cada día de la ventana, incluidos los días sin
// ventas (en cero), en orden cronológico.
func DailySeries(records []*entity.SalesRecord, now time.Time, windowDays int) []DayPoint {
	if windowDays <= 0 {
		windowDays = 7
	}
	today := dateOf(now)
	windowStart := today.AddDate(0, 0, -(windowDays - 1))

	unitsByDay := make(map[time.Time]int)
	revByDay := make(map[time.Time]decimal.Decimal)
	for _, r := range records {
		day := dateOf(r.SaleDate)
		if day.Before(windowStart) || day.After(today) {
			continue
		}
		unitsByDay[day] += r.QuantitySold
		revByDay[day] = revByDay[day].Add(r.SalePrice.Mul(decimal.NewFromInt(int64(r.QuantitySold))))
	}

	points := make([]DayPoint, 0, windowDays)
	for day := windowStart; !day.After(today); day = day.AddDate(0, 0, 1) {
		rev := revByDay[day]
		if rev.IsZero() {
			rev = decimal.Zero
		}
		points = append(points, DayPoint{Day: day, Units: unitsByDay[day], Revenue: rev})
	}
	return points
}

// dateOf trunca un instante a su fecha (medianoche local).
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
