package directions

import (
	"context"
	"sync"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// MockDirectionsProvider returns a fixed result and records the waypoints it
// was asked for.
type MockDirectionsProvider struct {
	mu     sync.Mutex
	result ports.DirectionsResult
	err    error
	calls  [][]domain.GeoPoint
}

func NewMockDirectionsProvider(result ports.DirectionsResult, err error) *MockDirectionsProvider {
	return &MockDirectionsProvider{result: result, err: err}
}

func (p *MockDirectionsProvider) GetDirections(ctx context.Context, waypoints []domain.GeoPoint) (ports.DirectionsResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, append([]domain.GeoPoint(nil), waypoints...))
	if p.err != nil {
		return ports.DirectionsResult{}, p.err
	}
	return p.result, nil
}

func (p *MockDirectionsProvider) Calls() [][]domain.GeoPoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]domain.GeoPoint(nil), p.calls...)
}
