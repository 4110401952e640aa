// Package model defines domain types used by the service.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an item managed by the admin screen.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EntityID returns the product identifier.
func (p Product) EntityID() int64 { return p.ID }

// ProductCreate is the payload for creating a product.
type ProductCreate struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Description string          `json:"description,omitempty"`
}

// ProductUpdate is a partial payload; nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int64           `json:"stock,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// CartProduct is a line item of an upstream cart.
type CartProduct struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Price              decimal.Decimal `json:"price"`
	Quantity           int64           `json:"quantity"`
	Total              decimal.Decimal `json:"total"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	DiscountedTotal    decimal.Decimal `json:"discountedTotal"`
	Thumbnail          string          `json:"thumbnail,omitempty"`
}

// Cart is an order record read from the demo API. It is never mutated.
type Cart struct {
	ID              int64           `json:"id"`
	Products        []CartProduct   `json:"products"`
	Total           decimal.Decimal `json:"total"`
	DiscountedTotal decimal.Decimal `json:"discountedTotal"`
	UserID          int64           `json:"userId"`
	TotalProducts   int64           `json:"totalProducts"`
	TotalQuantity   int64           `json:"totalQuantity"`
}

// CartsPage is the body returned by GET /carts.
type CartsPage struct {
	Carts []Cart `json:"carts"`
	Total int64  `json:"total"`
	Skip  int64  `json:"skip"`
	Limit int64  `json:"limit"`
}

// SalesPoint is a calendar day paired with the summed cart totals.
type SalesPoint struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// KPIs are the headline dashboard figures.
type KPIs struct {
	Orders   int64           `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
	AvgOrder decimal.Decimal `json:"avg_order"`
	Display  KPIDisplay      `json:"display"`
}

// KPIDisplay holds the localized strings shown on the KPI tiles.
type KPIDisplay struct {
	Orders   string `json:"orders"`
	Revenue  string `json:"revenue"`
	AvgOrder string `json:"avg_order"`
}

// Overview combines the KPI tiles and the sales chart series.
type Overview struct {
	KPIs        KPIs         `json:"kpis"`
	Sales       []SalesPoint `json:"sales"`
	GeneratedAt time.Time    `json:"generated_at"`
}
