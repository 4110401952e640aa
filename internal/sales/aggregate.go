// Package sales derives dashboard figures from cart records.
package sales

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
)

const (
	// WindowDays is the number of trailing calendar days covered by the chart.
	WindowDays = 7

	// LabelLayout formats day labels.
	LabelLayout = "2006-01-02"
)

// Aggregate buckets carts into the trailing WindowDays calendar days ending
// on now's day and returns per-day totals in ascending date order.
//
// Upstream carts carry no date. Each cart is placed by its position: the
// last cart lands on today, the one before on yesterday, cycling every
// WindowDays. The mapping is a display placeholder, not a business rule.
func Aggregate(carts []model.Cart, now time.Time) []model.SalesPoint {
	out := []model.SalesPoint{}
	if len(carts) == 0 {
		return out
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	n := len(carts)
	totals := make(map[string]decimal.Decimal, WindowDays)
	days := make(map[string]time.Time, WindowDays)
	for i, c := range carts {
		day := today.AddDate(0, 0, -((n - i - 1) % WindowDays))
		label := day.Format(LabelLayout)
		totals[label] = totals[label].Add(c.Total)
		days[label] = day
	}

	for label, total := range totals {
		out = append(out, model.SalesPoint{Label: label, Total: total})
	}
	slices.SortFunc(out, func(a, b model.SalesPoint) int {
		return days[a.Label].Compare(days[b.Label])
	})
	return out
}

// Summarize computes the KPI tiles: order count, revenue and the average
// order value rounded to cents. Display strings are left empty.
func Summarize(carts []model.Cart) model.KPIs {
	revenue := decimal.Zero
	for _, c := range carts {
		revenue = revenue.Add(c.Total)
	}
	orders := int64(len(carts))
	avg := decimal.Zero
	if orders > 0 {
		avg = revenue.DivRound(decimal.NewFromInt(orders), 2)
	}
	return model.KPIs{Orders: orders, Revenue: revenue, AvgOrder: avg}
}
