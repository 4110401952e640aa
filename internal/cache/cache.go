// Package cache stores snapshots of upstream cart listings.
package cache

import (
	"context"
	"errors"

	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
)

// ErrCacheMiss is returned by Get when no snapshot is stored.
var ErrCacheMiss = errors.New("cache miss")

// CartCache stores cart listings keyed by the requested page size.
type CartCache interface {
	Get(ctx context.Context, limit int) ([]model.Cart, error)
	Set(ctx context.Context, limit int, carts []model.Cart) error
	Delete(ctx context.Context, limit int) error
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, int) ([]model.Cart, error) { return nil, ErrCacheMiss }

func (Noop) Set(context.Context, int, []model.Cart) error { return nil }

func (Noop) Delete(context.Context, int) error { return nil }
