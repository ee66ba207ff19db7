package dao

import (
	"context"
	"fmt"
)

// Dashboard fetches the backend's aggregate counters. It is not a registered
// accessor since the dashboard endpoint serves a single summary document, not
// a collection.
type Dashboard struct {
	factory Factory
}

// NewDashboard returns a dashboard fetcher bound to the factory.
func NewDashboard(f Factory) *Dashboard {
	return &Dashboard{factory: f}
}

// Metrics returns the summary counters keyed by metric name.
func (d *Dashboard) Metrics(ctx context.Context) (map[string]any, error) {
	if d.factory == nil {
		return nil, fmt.Errorf("factory not initialized")
	}

	doc, err := d.factory.Client().Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard: %w", err)
	}
	return doc, nil
}
