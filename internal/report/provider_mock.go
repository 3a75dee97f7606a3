package report

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/you/go-hotel-rates/internal/providers"
	"github.com/you/go-hotel-rates/internal/rates"
)

// providerMock serves canned rates keyed by hotel name, with optional
// per-call delay, forced error and call counting.
type providerMock struct {
	name            string
	ratesByHotel    map[string][]rates.RoomRate
	delay           time.Duration
	errorOutMessage *string
	callCount       *int32
}

func (p *providerMock) Name() string {
	return p.name
}

func (p *providerMock) Rates(ctx context.Context, q providers.RateQuery) ([]rates.RoomRate, error) {
	if p.callCount != nil {
		atomic.AddInt32(p.callCount, 1)
	}
	if p.errorOutMessage != nil {
		return nil, errors.New(p.name + ": " + *p.errorOutMessage)
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.ratesByHotel[q.HotelName], nil
}
