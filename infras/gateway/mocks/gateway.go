package mocks

import (
	"context"
	"stay/infras/gateway"
	"sync"
)

// Gateway records every submission it receives so tests can assert on
// call counts and payloads.
type Gateway struct {
	mu       sync.Mutex
	Requests []gateway.CreateReservationRequest
	Keys     []string
	Response gateway.CreateReservationResponse
	Err      error
}

func NewGateway() *Gateway {
	return &Gateway{}
}

// CreateReservation implements gateway.Gateway.
func (g *Gateway) CreateReservation(_ context.Context, req gateway.CreateReservationRequest, idempotencyKey string) (gateway.CreateReservationResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Requests = append(g.Requests, req)
	g.Keys = append(g.Keys, idempotencyKey)

	if g.Err != nil {
		return gateway.CreateReservationResponse{}, g.Err
	}

	return g.Response, nil
}

// CallCount returns how many submissions were issued.
func (g *Gateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.Requests)
}
