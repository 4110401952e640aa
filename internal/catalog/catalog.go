// Package catalog manages the product list edited on the admin screen.
package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
	"github.com/fairyhunter13/sales-dashboard-service/internal/store"
)

// DefaultSeed lists the example products loaded at startup.
var DefaultSeed = []model.ProductCreate{
	{
		Name:        "Sample Keyboard",
		Price:       decimal.RequireFromString("49.99"),
		Stock:       25,
		Description: "Compact mechanical keyboard",
	},
	{
		Name:        "Wireless Mouse",
		Price:       decimal.RequireFromString("24.99"),
		Stock:       40,
		Description: "Ergonomic wireless mouse",
	},
}

// Catalog is a validated product repository backed by an in-memory store.
type Catalog struct {
	st  *store.Store[int64, model.Product, model.ProductCreate, model.ProductUpdate]
	seq *store.Sequence
	now func() time.Time
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// New returns an empty Catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{seq: store.NewSequence(0), now: time.Now}
	for _, o := range opts {
		o(c)
	}
	c.st = store.New(c.seq.Next, c.build, c.apply)
	return c
}

func (c *Catalog) build(id int64, in model.ProductCreate) model.Product {
	now := c.now().UTC()
	return model.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *Catalog) apply(p model.Product, in model.ProductUpdate) model.Product {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	p.UpdatedAt = c.now().UTC()
	return p
}

// Seed creates the given products in order. They go through the regular
// construction path, so they consume the first identifiers.
func (c *Catalog) Seed(items []model.ProductCreate) []model.Product {
	out := make([]model.Product, 0, len(items))
	for _, in := range items {
		out = append(out, c.st.Create(in))
	}
	return out
}

// Create validates in and stores a new product.
func (c *Catalog) Create(in model.ProductCreate) (model.Product, error) {
	if err := ValidateCreate(in); err != nil {
		return model.Product{}, err
	}
	return c.st.Create(in), nil
}

// Get returns the product with the given id. ok is false when absent.
func (c *Catalog) Get(id int64) (model.Product, bool) {
	return c.st.Get(id)
}

// List returns all products in creation order.
func (c *Catalog) List() []model.Product {
	return c.st.List()
}

// Update validates in and merges it into the stored product. It returns an
// error wrapping store.ErrNotFound when id is unknown.
func (c *Catalog) Update(id int64, in model.ProductUpdate) (model.Product, error) {
	if err := ValidateUpdate(in); err != nil {
		return model.Product{}, err
	}
	return c.st.Update(id, in)
}

// Delete removes the product if present.
func (c *Catalog) Delete(id int64) {
	c.st.Delete(id)
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return c.st.Len()
}
