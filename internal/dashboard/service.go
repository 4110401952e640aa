// Package dashboard assembles the KPI tiles and sales chart data.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
	"github.com/fairyhunter13/sales-dashboard-service/internal/sales"
)

// CartSource provides the order records the dashboard is built from.
type CartSource interface {
	FetchCarts(ctx context.Context, limit int) ([]model.Cart, error)
}

// Service computes dashboard views from a CartSource.
type Service struct {
	source CartSource
	limit  int
	format *sales.Formatter
	now    func() time.Time
}

// New returns a Service fetching limit carts per view.
func New(source CartSource, limit int, format *sales.Formatter, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{source: source, limit: limit, format: format, now: now}
}

// Overview fetches carts once and returns both the KPIs and the sales series.
func (s *Service) Overview(ctx context.Context) (model.Overview, error) {
	carts, err := s.fetch(ctx)
	if err != nil {
		return model.Overview{}, err
	}
	now := s.now()
	return model.Overview{
		KPIs:        s.kpis(carts),
		Sales:       sales.Aggregate(carts, now),
		GeneratedAt: now.UTC(),
	}, nil
}

// KPIs returns the headline figures.
func (s *Service) KPIs(ctx context.Context) (model.KPIs, error) {
	carts, err := s.fetch(ctx)
	if err != nil {
		return model.KPIs{}, err
	}
	return s.kpis(carts), nil
}

// Sales returns the trailing seven day sales series.
func (s *Service) Sales(ctx context.Context) ([]model.SalesPoint, error) {
	carts, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return sales.Aggregate(carts, s.now()), nil
}

func (s *Service) fetch(ctx context.Context) ([]model.Cart, error) {
	carts, err := s.source.FetchCarts(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("fetch carts: %w", err)
	}
	return carts, nil
}

func (s *Service) kpis(carts []model.Cart) model.KPIs {
	k := sales.Summarize(carts)
	if s.format != nil {
		k = s.format.Display(k)
	}
	return k
}
