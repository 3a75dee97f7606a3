package providers

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/you/go-hotel-rates/internal/rates"
)

var (
	// ErrMalformedResponse marks a provider payload that does not match the
	// expected shape (missing field, unexpected type).
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrMultiRoomListing marks a hotels.com listing that does not contain
	// exactly one primary room selection.
	ErrMultiRoomListing = errors.New("more than one room in listing")

	// ErrRequestFailed marks a request that failed after the retry budget
	// was exhausted.
	ErrRequestFailed = errors.New("provider request failed")
)

// RateQuery describes one hotel/stay lookup. Filter terms must already be
// lower-cased and trimmed (the config loader does this).
type RateQuery struct {
	HotelName    string
	HotelID      string
	CheckIn      time.Time
	CheckOut     time.Time
	RoomFilter   []string
	RoomPatterns []*regexp.Regexp
}

type RateProvider interface {
	Name() string
	Rates(ctx context.Context, q RateQuery) ([]rates.RoomRate, error)
}
